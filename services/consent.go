// services/consent.go
package services

import (
	"context"

	"garagealert-backend/models"

	"github.com/google/uuid"
)

// ConsentService decides whether a customer may be contacted on a channel
// and appends opt-out records. Consent history is never mutated: an opt-out
// or a re-opt-in is always a new row.
type ConsentService struct {
	store ReminderStore
}

func NewConsentService(store ReminderStore) *ConsentService {
	return &ConsentService{store: store}
}

// IsAllowed checks the newest consent record for (customer, channel).
// No record at all means allowed: opt-out is explicit, absence is not an
// opt-out. (Deliberate policy carried from the product, not a bug.)
func (s *ConsentService) IsAllowed(ctx context.Context, customerID uuid.UUID, channel string) (bool, error) {
	record, err := s.store.LatestConsent(ctx, customerID, channel)
	if err != nil {
		return false, err
	}
	if record == nil {
		return true, nil
	}
	return record.Status != models.ConsentOptedOut, nil
}

// OptOutChannel appends a channel-scoped opt-out (STOP keyword flow).
func (s *ConsentService) OptOutChannel(ctx context.Context, customerID uuid.UUID, channel, method string) error {
	return s.store.AppendConsent(ctx, &models.ConsentRecord{
		CustomerID: customerID,
		Channel:    channel,
		Status:     models.ConsentOptedOut,
		Method:     method,
	})
}

// OptOutAllChannels appends opt-outs for every channel (unsubscribe link).
func (s *ConsentService) OptOutAllChannels(ctx context.Context, customerID uuid.UUID, method string) error {
	for _, channel := range models.AllChannels {
		if err := s.OptOutChannel(ctx, customerID, channel, method); err != nil {
			return err
		}
	}
	return nil
}
