package services

import (
	"context"
	"testing"
	"time"

	"garagealert-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAllowedDefaultsToAllowed(t *testing.T) {
	store := newFakeStore()
	consent := NewConsentService(store)

	allowed, err := consent.IsAllowed(context.Background(), uuid.New(), models.ChannelSMS)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestIsAllowedLatestRecordWins(t *testing.T) {
	store := newFakeStore()
	consent := NewConsentService(store)
	customerID := uuid.New()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	store.consents = append(store.consents,
		models.ConsentRecord{CustomerID: customerID, Channel: models.ChannelSMS, Status: models.ConsentOptedIn, CollectedAt: base},
		models.ConsentRecord{CustomerID: customerID, Channel: models.ChannelSMS, Status: models.ConsentOptedOut, CollectedAt: base.AddDate(0, 0, 5)},
	)

	allowed, err := consent.IsAllowed(context.Background(), customerID, models.ChannelSMS)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Opt-out on one channel does not touch the others
	allowed, err = consent.IsAllowed(context.Background(), customerID, models.ChannelEmail)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestOptOutChannelAppendsRecord(t *testing.T) {
	store := newFakeStore()
	consent := NewConsentService(store)
	customerID := uuid.New()

	err := consent.OptOutChannel(context.Background(), customerID, models.ChannelWhatsApp, models.ConsentMethodStopKeyword)
	require.NoError(t, err)

	require.Len(t, store.consents, 1)
	record := store.consents[0]
	assert.Equal(t, models.ConsentOptedOut, record.Status)
	assert.Equal(t, models.ChannelWhatsApp, record.Channel)
	assert.Equal(t, models.ConsentMethodStopKeyword, record.Method)
	assert.False(t, record.CollectedAt.IsZero())
}

func TestOptOutAllChannels(t *testing.T) {
	store := newFakeStore()
	consent := NewConsentService(store)
	customerID := uuid.New()

	err := consent.OptOutAllChannels(context.Background(), customerID, models.ConsentMethodUnsubscribeLink)
	require.NoError(t, err)

	require.Len(t, store.consents, len(models.AllChannels))
	for _, channel := range models.AllChannels {
		allowed, err := consent.IsAllowed(context.Background(), customerID, channel)
		require.NoError(t, err)
		assert.False(t, allowed, "channel %s should be opted out", channel)
	}
}

func TestOptOutHistoryIsAppendOnly(t *testing.T) {
	store := newFakeStore()
	consent := NewConsentService(store)
	customerID := uuid.New()

	require.NoError(t, consent.OptOutChannel(context.Background(), customerID, models.ChannelSMS, models.ConsentMethodStopKeyword))
	require.NoError(t, consent.OptOutChannel(context.Background(), customerID, models.ChannelSMS, models.ConsentMethodManual))

	// Both opt-outs are retained as separate rows
	assert.Len(t, store.consents, 2)
}
