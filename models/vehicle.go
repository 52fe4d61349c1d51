package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder types — categories of due date tracked per vehicle.
const (
	ReminderTypeMOT     = "mot"
	ReminderTypeService = "service"
	ReminderTypeTyre    = "tyre"
	ReminderTypeRepair  = "repair"
)

var ErrUnknownReminderType = errors.New("unknown reminder type")

type Vehicle struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	GarageID   uuid.UUID `gorm:"type:uuid;index;not null"`

	Registration string `gorm:"not null"`
	Make         string
	VehicleModel string `gorm:"column:model"`
	Colour       string
	Year         *int
	Mileage      *int

	MOTDueDate          *time.Time `gorm:"type:date"`
	LastServiceDate     *time.Time `gorm:"type:date"`
	NextServiceDate     *time.Time `gorm:"type:date"`
	TyreCheckDueDate    *time.Time `gorm:"type:date"`
	RepairFollowupDate  *time.Time `gorm:"type:date"`
	RepairFollowupNotes string

	MOTReminderEnabled     bool `gorm:"default:true"`
	ServiceReminderEnabled bool `gorm:"default:true"`
	TyreReminderEnabled    bool `gorm:"default:false"`
	RepairReminderEnabled  bool `gorm:"default:false"`

	Customer Customer `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

// DueDateFor returns the due-date value tracked for the given reminder type.
func (v *Vehicle) DueDateFor(reminderType string) *time.Time {
	switch reminderType {
	case ReminderTypeMOT:
		return v.MOTDueDate
	case ReminderTypeService:
		return v.NextServiceDate
	case ReminderTypeTyre:
		return v.TyreCheckDueDate
	case ReminderTypeRepair:
		return v.RepairFollowupDate
	}
	return nil
}

// ReminderColumns maps a reminder type to the vehicle date column and the
// enable-flag column used by the due-date matcher.
func ReminderColumns(reminderType string) (dateColumn, enabledColumn string, err error) {
	switch reminderType {
	case ReminderTypeMOT:
		return "mot_due_date", "mot_reminder_enabled", nil
	case ReminderTypeService:
		return "next_service_date", "service_reminder_enabled", nil
	case ReminderTypeTyre:
		return "tyre_check_due_date", "tyre_reminder_enabled", nil
	case ReminderTypeRepair:
		return "repair_followup_date", "repair_reminder_enabled", nil
	}
	return "", "", ErrUnknownReminderType
}
