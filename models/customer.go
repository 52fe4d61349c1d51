package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Delivery channels a customer can be reached on.
const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

// AllChannels is used by the unsubscribe flow, which opts a customer
// out of everything at once.
var AllChannels = []string{ChannelSMS, ChannelWhatsApp, ChannelEmail}

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	GarageID uuid.UUID `gorm:"type:uuid;index;not null"`

	FirstName        string `gorm:"not null"`
	LastName         string
	Phone            string `gorm:"index"`
	Email            string
	PreferredChannel string `gorm:"type:varchar(20);default:'sms'"` // sms, whatsapp, email
	Notes            string

	Vehicles       []Vehicle       `gorm:"foreignKey:CustomerID"`
	ConsentRecords []ConsentRecord `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
