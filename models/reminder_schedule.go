package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderSchedule is a per-garage rule: send a <reminder_type> reminder
// <days_before> days ahead of the due date. A garage can hold several rules
// for the same type (e.g. a 30-day and a 7-day MOT reminder). DaysBefore may
// be zero or negative for on/after-due chasers.
type ReminderSchedule struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	GarageID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ReminderType string    `gorm:"type:varchar(20);not null"` // mot, service, tyre, repair
	DaysBefore   int       `gorm:"not null"`
	IsEnabled    bool      `gorm:"default:true"`

	gorm.Model
}

func (s *ReminderSchedule) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
