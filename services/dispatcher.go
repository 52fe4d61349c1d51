// services/dispatcher.go
package services

import (
	"context"
	"log"
	"time"

	"garagealert-backend/models"
	"garagealert-backend/utils"

	"github.com/google/uuid"
)

// Batch cap per run. The trigger environment imposes an execution ceiling,
// so a run never takes on more than this many sends.
const dispatchBatchSize = 500

// Rows stuck in 'sending' longer than this were abandoned by an
// interrupted run and go back to pending before the batch is read.
const staleSendingAfter = time.Hour

// DispatchSummary is the run report returned to the cron trigger.
type DispatchSummary struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// ReminderDispatcher walks the day's pending reminders, renders each
// template, sends through the channel's provider, and records the outcome
// on the reminder plus an audit row in the message log. Repeated runs are
// safe: only status=pending rows are ever selected.
type ReminderDispatcher struct {
	store   ReminderStore
	senders map[string]ChannelSender
	tokens  *UnsubscribeTokens
	appURL  string
}

func NewReminderDispatcher(store ReminderStore, senders map[string]ChannelSender, tokens *UnsubscribeTokens, appURL string) *ReminderDispatcher {
	return &ReminderDispatcher{store: store, senders: senders, tokens: tokens, appURL: appURL}
}

func (d *ReminderDispatcher) DispatchForDate(ctx context.Context, today time.Time) (DispatchSummary, error) {
	today = utils.BeginningOfDay(today)

	if reclaimed, err := d.store.ReclaimStuckSending(ctx, time.Now().Add(-staleSendingAfter)); err != nil {
		log.Printf("Stuck-reminder sweep failed: %v", err)
	} else if reclaimed > 0 {
		log.Printf("Reclaimed %d stuck reminders back to pending", reclaimed)
	}

	reminders, err := d.store.PendingReminders(ctx, today, dispatchBatchSize)
	if err != nil {
		return DispatchSummary{}, err
	}

	summary := DispatchSummary{Total: len(reminders)}
	for i := range reminders {
		if d.dispatchOne(ctx, &reminders[i]) {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}

	log.Printf("Dispatch for %s: %d sent, %d failed, %d total",
		utils.DateString(today), summary.Sent, summary.Failed, summary.Total)
	return summary, nil
}

// dispatchOne resolves one reminder to a send attempt. A bad row fails
// that row only, never the batch.
func (d *ReminderDispatcher) dispatchOne(ctx context.Context, reminder *models.ScheduledReminder) bool {
	garage := reminder.Garage
	customer := reminder.Customer
	vehicle := reminder.Vehicle

	if reminder.Template == nil {
		return d.fail(ctx, reminder, "no message template for this reminder type and channel")
	}
	if customer.ID == uuid.Nil || garage.ID == uuid.Nil {
		return d.fail(ctx, reminder, "missing linked customer or garage")
	}

	recipient, errMsg := d.recipientFor(reminder.Channel, &customer)
	if errMsg != "" {
		return d.fail(ctx, reminder, errMsg)
	}

	sender, ok := d.senders[reminder.Channel]
	if !ok {
		return d.fail(ctx, reminder, "unknown channel: "+reminder.Channel)
	}

	tokens := d.buildTokens(ctx, &garage, &customer, &vehicle, reminder.ReminderType)
	body := utils.RenderTemplate(reminder.Template.Body, tokens)

	var subject string
	if reminder.Channel == models.ChannelEmail {
		if reminder.Template.Subject != nil && *reminder.Template.Subject != "" {
			subject = utils.RenderTemplate(*reminder.Template.Subject, tokens)
		} else {
			subject = "Reminder from " + garage.Name
		}
	}

	if err := d.store.MarkSending(ctx, reminder.ID); err != nil {
		log.Printf("Reminder %s: failed to mark sending: %v", reminder.ID, err)
	}

	result := sender.Send(ctx, recipient, subject, body)

	// The send is the truth; the audit log is secondary. Record the
	// outcome on the reminder first so an interrupted log write can
	// never cause a double-send on retry.
	if result.Success {
		if err := d.store.MarkSent(ctx, reminder.ID, time.Now()); err != nil {
			log.Printf("Reminder %s: sent but status update failed: %v", reminder.ID, err)
		}
	} else {
		if err := d.store.MarkFailed(ctx, reminder.ID, result.Error); err != nil {
			log.Printf("Reminder %s: status update failed: %v", reminder.ID, err)
		}
	}

	d.appendLog(ctx, reminder, recipient, subject, body, result)
	return result.Success
}

func (d *ReminderDispatcher) fail(ctx context.Context, reminder *models.ScheduledReminder, errMsg string) bool {
	if err := d.store.MarkFailed(ctx, reminder.ID, errMsg); err != nil {
		log.Printf("Reminder %s: status update failed: %v", reminder.ID, err)
	}
	d.appendLog(ctx, reminder, "", "", "", SendResult{Success: false, Error: errMsg})
	return false
}

func (d *ReminderDispatcher) appendLog(ctx context.Context, reminder *models.ScheduledReminder, recipient, subject, body string, result SendResult) {
	status := models.MessageStatusDelivered
	if !result.Success {
		status = models.MessageStatusFailed
	}

	entry := &models.MessageLog{
		GarageID:            reminder.GarageID,
		CustomerID:          &reminder.CustomerID,
		VehicleID:           &reminder.VehicleID,
		ScheduledReminderID: &reminder.ID,
		TemplateID:          reminder.TemplateID,
		Channel:             reminder.Channel,
		Recipient:           recipient,
		Body:                body,
		Status:              status,
		ProviderMessageID:   result.ProviderMessageID,
		ErrorMessage:        result.Error,
	}
	if subject != "" {
		entry.Subject = &subject
	}

	if err := d.store.AppendMessageLog(ctx, entry); err != nil {
		log.Printf("Reminder %s: message log write failed: %v", reminder.ID, err)
	}
}

func (d *ReminderDispatcher) recipientFor(channel string, customer *models.Customer) (string, string) {
	switch channel {
	case models.ChannelSMS, models.ChannelWhatsApp:
		if customer.Phone == "" {
			return "", "customer has no phone number"
		}
		return utils.FormatUKPhone(customer.Phone), ""
	case models.ChannelEmail:
		if customer.Email == "" {
			return "", "customer has no email address"
		}
		return customer.Email, ""
	}
	return "", "unknown channel: " + channel
}

func (d *ReminderDispatcher) buildTokens(ctx context.Context, garage *models.Garage, customer *models.Customer, vehicle *models.Vehicle, reminderType string) map[string]string {
	return map[string]string{
		utils.TokenFirstName:       customer.FirstName,
		utils.TokenLastName:        customer.LastName,
		utils.TokenVehicleReg:      vehicle.Registration,
		utils.TokenDueDate:         utils.FormatDateUK(vehicle.DueDateFor(reminderType)),
		utils.TokenGarageName:      garage.Name,
		utils.TokenGaragePhone:     garage.Phone,
		utils.TokenUnsubscribeLink: d.unsubscribeLink(ctx, customer),
	}
}

// unsubscribeLink mints a one-time token when Redis is wired, falling back
// to a customer-id link otherwise.
func (d *ReminderDispatcher) unsubscribeLink(ctx context.Context, customer *models.Customer) string {
	token := customer.ID.String()
	if d.tokens != nil {
		if minted, err := d.tokens.Mint(ctx, customer.ID); err == nil {
			token = minted
		} else {
			log.Printf("Customer %s: unsubscribe token mint failed: %v", customer.ID, err)
		}
	}
	return d.appURL + "/unsubscribe/" + token
}
