package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageLog delivery outcomes.
const (
	MessageStatusPending   = "pending"
	MessageStatusDelivered = "delivered"
	MessageStatusFailed    = "failed"
	MessageStatusBounced   = "bounced"
)

// MessageLog is the append-only audit trail: one row per actual send
// attempt, success or failure, with the rendered content as delivered.
type MessageLog struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key"`
	GarageID            uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID          *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID           *uuid.UUID `gorm:"type:uuid"`
	ScheduledReminderID *uuid.UUID `gorm:"type:uuid;index"`
	TemplateID          *uuid.UUID `gorm:"type:uuid"`

	Channel   string `gorm:"type:varchar(20);not null"`
	Recipient string `gorm:"not null"`
	Subject   *string
	Body      string `gorm:"type:text;not null"`

	Status            string `gorm:"type:varchar(20);default:'pending'"`
	ProviderMessageID string
	ErrorMessage      string `gorm:"type:text"`
	SentAt            time.Time
	DeliveredAt       *time.Time

	gorm.Model
}

func (m *MessageLog) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	return
}
