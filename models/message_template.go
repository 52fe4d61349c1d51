package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageTemplate holds a message body with {token} placeholders, keyed by
// (reminder type, channel) within a garage. Subject applies to email only.
type MessageTemplate struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	GarageID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ReminderType string    `gorm:"type:varchar(20);not null"` // mot, service, tyre, repair
	Channel      string    `gorm:"type:varchar(20);not null"` // sms, whatsapp, email
	Name         string    `gorm:"not null"`
	Subject      *string
	Body         string `gorm:"type:text;not null"`
	IsDefault    bool   `gorm:"default:false"`

	gorm.Model
}

func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
