package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription statuses managed by the billing provider webhook.
// Only trialing/active garages are picked up by the reminder scheduler.
const (
	SubscriptionTrialing  = "trialing"
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionPastDue   = "past_due"
)

type Garage struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	AddressLine1 string
	AddressLine2 string
	City         string
	Postcode     string
	Phone        string
	Email        string
	Website      string

	DefaultSMSEnabled      bool `gorm:"default:true"`
	DefaultWhatsAppEnabled bool `gorm:"default:false"`
	DefaultEmailEnabled    bool `gorm:"default:true"`

	StripeCustomerID   string
	SubscriptionStatus string `gorm:"type:varchar(20);default:'trialing';index"`
	SubscriptionPlan   string
	TrialEndsAt        *time.Time

	Users             []User             `gorm:"foreignKey:GarageID"`
	Customers         []Customer         `gorm:"foreignKey:GarageID"`
	Vehicles          []Vehicle          `gorm:"foreignKey:GarageID"`
	ReminderSchedules []ReminderSchedule `gorm:"foreignKey:GarageID"`
	MessageTemplates  []MessageTemplate  `gorm:"foreignKey:GarageID"`

	gorm.Model
}
