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

// seedPendingReminder builds a fully linked pending reminder on the fake
// store and returns it. Channel defaults to sms.
func seedPendingReminder(store *fakeStore, day time.Time, channel string) models.ScheduledReminder {
	garage := models.Garage{ID: uuid.New(), Name: "Smith Motors", Phone: "020 7946 0000", SubscriptionStatus: models.SubscriptionActive}
	customer := models.Customer{
		ID: uuid.New(), GarageID: garage.ID,
		FirstName: "Jane", LastName: "Doe",
		Phone: "07700 900000", Email: "jane@example.com",
		PreferredChannel: channel,
	}
	due := day.AddDate(0, 0, 30)
	vehicle := models.Vehicle{
		ID: uuid.New(), CustomerID: customer.ID, GarageID: garage.ID,
		Registration: "AB12CDE", MOTDueDate: &due, MOTReminderEnabled: true,
	}
	template := models.MessageTemplate{
		ID: uuid.New(), GarageID: garage.ID,
		ReminderType: models.ReminderTypeMOT, Channel: channel,
		Name: "MOT 30 day",
		Body: "Hi {first_name}, MOT for {vehicle_reg} is due {due_date}. {garage_name}",
	}

	store.garages = append(store.garages, garage)
	store.customers[customer.ID] = customer
	store.vehicles = append(store.vehicles, vehicle)
	store.templates = append(store.templates, template)

	reminder := models.ScheduledReminder{
		ID: uuid.New(), GarageID: garage.ID, CustomerID: customer.ID, VehicleID: vehicle.ID,
		ReminderType: models.ReminderTypeMOT, Channel: channel,
		TemplateID: &template.ID, ScheduledFor: day, DaysBeforeDue: 30,
		Status: models.ReminderStatusPending,
	}
	store.reminders = append(store.reminders, reminder)
	return reminder
}

func TestDispatchForDateSendsAndLogs(t *testing.T) {
	store := newFakeStore()
	day := date(2026, time.January, 13)
	seedPendingReminder(store, day, models.ChannelSMS)

	sender := &fakeSender{result: SendResult{Success: true, ProviderMessageID: "SM123"}}
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{models.ChannelSMS: sender}, nil, "https://app.example.com")

	summary, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{Sent: 1, Failed: 0, Total: 1}, summary)

	require.Len(t, sender.sends, 1)
	assert.Equal(t, "+447700900000", sender.sends[0].Recipient)
	assert.Equal(t, "Hi Jane, MOT for AB12CDE is due 12 Feb 2026. Smith Motors", sender.sends[0].Body)

	reminder := store.reminders[0]
	assert.Equal(t, models.ReminderStatusSent, reminder.Status)
	require.NotNil(t, reminder.SentAt)

	require.Len(t, store.logs, 1)
	entry := store.logs[0]
	assert.Equal(t, models.MessageStatusDelivered, entry.Status)
	assert.Equal(t, "SM123", entry.ProviderMessageID)
	assert.Equal(t, "+447700900000", entry.Recipient)
	assert.Equal(t, models.ChannelSMS, entry.Channel)
}

func TestDispatchForDateProviderFailure(t *testing.T) {
	store := newFakeStore()
	day := date(2026, time.January, 13)
	seedPendingReminder(store, day, models.ChannelSMS)

	sender := &fakeSender{result: SendResult{Success: false, Error: "unreachable carrier"}}
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{models.ChannelSMS: sender}, nil, "https://app.example.com")

	summary, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{Sent: 0, Failed: 1, Total: 1}, summary)

	reminder := store.reminders[0]
	assert.Equal(t, models.ReminderStatusFailed, reminder.Status)
	assert.Equal(t, "unreachable carrier", reminder.ErrorMessage)

	require.Len(t, store.logs, 1)
	assert.Equal(t, models.MessageStatusFailed, store.logs[0].Status)
	assert.Equal(t, "unreachable carrier", store.logs[0].ErrorMessage)
}

func TestDispatchForDateMissingTemplateFailsRow(t *testing.T) {
	store := newFakeStore()
	day := date(2026, time.January, 13)
	seedPendingReminder(store, day, models.ChannelSMS)
	store.reminders[0].TemplateID = nil
	store.templates = nil

	sender := &fakeSender{result: SendResult{Success: true}}
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{models.ChannelSMS: sender}, nil, "https://app.example.com")

	summary, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{Sent: 0, Failed: 1, Total: 1}, summary)

	// Nothing is handed to the provider for a template-less row
	assert.Empty(t, sender.sends)
	assert.Equal(t, models.ReminderStatusFailed, store.reminders[0].Status)

	require.Len(t, store.logs, 1)
	assert.Equal(t, models.MessageStatusFailed, store.logs[0].Status)
}

func TestDispatchForDateSkipsNonPendingRows(t *testing.T) {
	store := newFakeStore()
	day := date(2026, time.January, 13)
	seedPendingReminder(store, day, models.ChannelSMS)
	store.reminders[0].Status = models.ReminderStatusSent

	sender := &fakeSender{result: SendResult{Success: true}}
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{models.ChannelSMS: sender}, nil, "https://app.example.com")

	summary, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{}, summary)
	assert.Empty(t, sender.sends)
	assert.Empty(t, store.logs)
}

func TestDispatchForDateSecondRunSendsNothing(t *testing.T) {
	store := newFakeStore()
	day := date(2026, time.January, 13)
	seedPendingReminder(store, day, models.ChannelSMS)

	sender := &fakeSender{result: SendResult{Success: true}}
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{models.ChannelSMS: sender}, nil, "https://app.example.com")

	_, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)
	summary, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, DispatchSummary{}, summary)
	assert.Len(t, sender.sends, 1)
}

func TestDispatchForDateEmailDefaultSubject(t *testing.T) {
	store := newFakeStore()
	day := date(2026, time.January, 13)
	seedPendingReminder(store, day, models.ChannelEmail)

	sender := &fakeSender{result: SendResult{Success: true}}
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{models.ChannelEmail: sender}, nil, "https://app.example.com")

	_, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)

	require.Len(t, sender.sends, 1)
	assert.Equal(t, "jane@example.com", sender.sends[0].Recipient)
	assert.Equal(t, "Reminder from Smith Motors", sender.sends[0].Subject)
}

func TestDispatchForDateEmailTemplateSubjectRendered(t *testing.T) {
	store := newFakeStore()
	day := date(2026, time.January, 13)
	seedPendingReminder(store, day, models.ChannelEmail)
	subject := "{vehicle_reg} MOT reminder"
	store.templates[0].Subject = &subject

	sender := &fakeSender{result: SendResult{Success: true}}
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{models.ChannelEmail: sender}, nil, "https://app.example.com")

	_, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)

	require.Len(t, sender.sends, 1)
	assert.Equal(t, "AB12CDE MOT reminder", sender.sends[0].Subject)
}

func TestDispatchForDateUnknownChannelFailsRow(t *testing.T) {
	store := newFakeStore()
	day := date(2026, time.January, 13)
	seedPendingReminder(store, day, models.ChannelWhatsApp)

	// No WhatsApp sender configured
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{}, nil, "https://app.example.com")

	summary, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{Failed: 1, Total: 1}, summary)
	assert.Equal(t, models.ReminderStatusFailed, store.reminders[0].Status)
}

func TestDispatchForDateMissingPhoneFailsRow(t *testing.T) {
	store := newFakeStore()
	day := date(2026, time.January, 13)
	reminder := seedPendingReminder(store, day, models.ChannelSMS)

	customer := store.customers[reminder.CustomerID]
	customer.Phone = ""
	store.customers[reminder.CustomerID] = customer

	sender := &fakeSender{result: SendResult{Success: true}}
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{models.ChannelSMS: sender}, nil, "https://app.example.com")

	summary, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{Failed: 1, Total: 1}, summary)
	assert.Empty(t, sender.sends)
	assert.Equal(t, "customer has no phone number", store.reminders[0].ErrorMessage)
}

func TestDispatchForDateFallbackUnsubscribeLink(t *testing.T) {
	store := newFakeStore()
	day := date(2026, time.January, 13)
	reminder := seedPendingReminder(store, day, models.ChannelSMS)
	store.templates[0].Body = "Opt out: {unsubscribe_link}"

	sender := &fakeSender{result: SendResult{Success: true}}
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{models.ChannelSMS: sender}, nil, "https://app.example.com")

	_, err := dispatcher.DispatchForDate(context.Background(), day)
	require.NoError(t, err)

	// Without a token store the link carries the customer id
	require.Len(t, sender.sends, 1)
	assert.Equal(t, "Opt out: https://app.example.com/unsubscribe/"+reminder.CustomerID.String(), sender.sends[0].Body)
}

func TestGenerateThenDispatchEndToEnd(t *testing.T) {
	store := newFakeStore()
	today := date(2026, time.January, 13)
	seedGarage(store, date(2026, time.February, 12))

	scheduler := NewReminderScheduler(store, NewConsentService(store))
	created, err := scheduler.GenerateForDate(context.Background(), today)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	sender := &fakeSender{result: SendResult{Success: true, ProviderMessageID: "SM900"}}
	dispatcher := NewReminderDispatcher(store, map[string]ChannelSender{models.ChannelSMS: sender}, nil, "https://app.example.com")

	summary, err := dispatcher.DispatchForDate(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{Sent: 1, Failed: 0, Total: 1}, summary)
	assert.Equal(t, models.ReminderStatusSent, store.reminders[0].Status)
	require.Len(t, store.logs, 1)

	// Re-running both stages produces no new work
	created, err = scheduler.GenerateForDate(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	summary, err = dispatcher.DispatchForDate(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{}, summary)
	assert.Len(t, sender.sends, 1)
}
