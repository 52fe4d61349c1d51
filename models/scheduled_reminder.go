package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduledReminder statuses. The pipeline only ever moves
// pending -> sending -> sent|failed; skipped and cancelled are set by
// staff actions. sent/failed/skipped/cancelled are terminal.
const (
	ReminderStatusPending   = "pending"
	ReminderStatusSending   = "sending"
	ReminderStatusSent      = "sent"
	ReminderStatusFailed    = "failed"
	ReminderStatusSkipped   = "skipped"
	ReminderStatusCancelled = "cancelled"
)

// ScheduledReminder is the pipeline's work item: one message owed to one
// vehicle for one run date. The unique index on
// (vehicle_id, reminder_type, scheduled_for) is the dedup key that makes
// repeated scheduler runs idempotent.
type ScheduledReminder struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	GarageID   uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	VehicleID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vehicle_type_date,priority:1"`

	ReminderType  string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_vehicle_type_date,priority:2"`
	Channel       string     `gorm:"type:varchar(20);not null"`
	TemplateID    *uuid.UUID `gorm:"type:uuid"`
	ScheduledFor  time.Time  `gorm:"type:date;not null;index;uniqueIndex:idx_vehicle_type_date,priority:3"`
	DaysBeforeDue int

	Status       string `gorm:"type:varchar(20);default:'pending';index"`
	SentAt       *time.Time
	ErrorMessage string `gorm:"type:text"`

	Garage   Garage           `gorm:"foreignKey:GarageID"`
	Customer Customer         `gorm:"foreignKey:CustomerID"`
	Vehicle  Vehicle          `gorm:"foreignKey:VehicleID"`
	Template *MessageTemplate `gorm:"foreignKey:TemplateID"`

	gorm.Model
}

func (r *ScheduledReminder) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
