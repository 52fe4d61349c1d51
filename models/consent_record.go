package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ConsentOptedIn  = "opted_in"
	ConsentOptedOut = "opted_out"
)

// How a consent record was collected.
const (
	ConsentMethodStopKeyword     = "stop_keyword"
	ConsentMethodUnsubscribeLink = "unsubscribe_link"
	ConsentMethodManual          = "manual"
)

// ConsentRecord is append-only. The current consent state for a
// (customer, channel) pair is the status of the newest record for that pair;
// past records are never mutated.
type ConsentRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index:idx_consent_customer_channel;not null"`
	Channel     string    `gorm:"type:varchar(20);index:idx_consent_customer_channel;not null"`
	Status      string    `gorm:"type:varchar(20);not null"` // opted_in, opted_out
	Method      string
	IPAddress   string
	Notes       string
	CollectedAt time.Time `gorm:"not null"`
}

func (r *ConsentRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CollectedAt.IsZero() {
		r.CollectedAt = time.Now()
	}
	return
}
