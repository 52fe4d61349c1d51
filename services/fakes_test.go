package services

import (
	"context"
	"sort"
	"time"

	"garagealert-backend/models"
	"garagealert-backend/utils"

	"github.com/google/uuid"
)

// fakeStore is an in-memory ReminderStore for pipeline tests.
type fakeStore struct {
	garages   []models.Garage
	schedules []models.ReminderSchedule
	vehicles  []models.Vehicle
	customers map[uuid.UUID]models.Customer
	consents  []models.ConsentRecord
	templates []models.MessageTemplate
	reminders []models.ScheduledReminder
	logs      []models.MessageLog

	failEnabledSchedules map[uuid.UUID]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{customers: map[uuid.UUID]models.Customer{}}
}

func (f *fakeStore) EligibleGarages(ctx context.Context) ([]models.Garage, error) {
	var out []models.Garage
	for _, g := range f.garages {
		if g.SubscriptionStatus == models.SubscriptionTrialing || g.SubscriptionStatus == models.SubscriptionActive {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) EnabledSchedules(ctx context.Context, garageID uuid.UUID) ([]models.ReminderSchedule, error) {
	if err := f.failEnabledSchedules[garageID]; err != nil {
		return nil, err
	}
	var out []models.ReminderSchedule
	for _, s := range f.schedules {
		if s.GarageID == garageID && s.IsEnabled {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) DueVehicles(ctx context.Context, garageID uuid.UUID, reminderType string, targetDate time.Time) ([]models.Vehicle, error) {
	if _, _, err := models.ReminderColumns(reminderType); err != nil {
		return nil, err
	}
	var out []models.Vehicle
	for _, v := range f.vehicles {
		if v.GarageID != garageID {
			continue
		}
		enabled := map[string]bool{
			models.ReminderTypeMOT:     v.MOTReminderEnabled,
			models.ReminderTypeService: v.ServiceReminderEnabled,
			models.ReminderTypeTyre:    v.TyreReminderEnabled,
			models.ReminderTypeRepair:  v.RepairReminderEnabled,
		}[reminderType]
		due := v.DueDateFor(reminderType)
		if !enabled || due == nil {
			continue
		}
		if utils.DateString(*due) != utils.DateString(targetDate) {
			continue
		}
		v.Customer = f.customers[v.CustomerID]
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeStore) LatestConsent(ctx context.Context, customerID uuid.UUID, channel string) (*models.ConsentRecord, error) {
	var matches []models.ConsentRecord
	for _, r := range f.consents {
		if r.CustomerID == customerID && r.Channel == channel {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CollectedAt.After(matches[j].CollectedAt)
	})
	return &matches[0], nil
}

func (f *fakeStore) AppendConsent(ctx context.Context, record *models.ConsentRecord) error {
	if record.CollectedAt.IsZero() {
		record.CollectedAt = time.Now()
	}
	f.consents = append(f.consents, *record)
	return nil
}

func (f *fakeStore) FindTemplateID(ctx context.Context, garageID uuid.UUID, reminderType, channel string) (*uuid.UUID, error) {
	for _, t := range f.templates {
		if t.GarageID == garageID && t.ReminderType == reminderType && t.Channel == channel {
			id := t.ID
			return &id, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateScheduledReminder(ctx context.Context, reminder *models.ScheduledReminder) (bool, error) {
	for _, r := range f.reminders {
		if r.VehicleID == reminder.VehicleID &&
			r.ReminderType == reminder.ReminderType &&
			utils.DateString(r.ScheduledFor) == utils.DateString(reminder.ScheduledFor) {
			return false, nil
		}
	}
	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}
	f.reminders = append(f.reminders, *reminder)
	return true, nil
}

func (f *fakeStore) PendingReminders(ctx context.Context, day time.Time, limit int) ([]models.ScheduledReminder, error) {
	var out []models.ScheduledReminder
	for _, r := range f.reminders {
		if r.Status != models.ReminderStatusPending {
			continue
		}
		if utils.DateString(r.ScheduledFor) != utils.DateString(day) {
			continue
		}
		r.Customer = f.customers[r.CustomerID]
		for _, g := range f.garages {
			if g.ID == r.GarageID {
				r.Garage = g
			}
		}
		for _, v := range f.vehicles {
			if v.ID == r.VehicleID {
				r.Vehicle = v
			}
		}
		if r.TemplateID != nil {
			for i := range f.templates {
				if f.templates[i].ID == *r.TemplateID {
					r.Template = &f.templates[i]
				}
			}
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) setStatus(id uuid.UUID, mutate func(*models.ScheduledReminder)) {
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			mutate(&f.reminders[i])
		}
	}
}

func (f *fakeStore) MarkSending(ctx context.Context, reminderID uuid.UUID) error {
	f.setStatus(reminderID, func(r *models.ScheduledReminder) {
		if r.Status == models.ReminderStatusPending {
			r.Status = models.ReminderStatusSending
		}
	})
	return nil
}

func (f *fakeStore) MarkSent(ctx context.Context, reminderID uuid.UUID, sentAt time.Time) error {
	f.setStatus(reminderID, func(r *models.ScheduledReminder) {
		r.Status = models.ReminderStatusSent
		r.SentAt = &sentAt
	})
	return nil
}

func (f *fakeStore) MarkFailed(ctx context.Context, reminderID uuid.UUID, errMsg string) error {
	f.setStatus(reminderID, func(r *models.ScheduledReminder) {
		r.Status = models.ReminderStatusFailed
		r.ErrorMessage = errMsg
	})
	return nil
}

func (f *fakeStore) ReclaimStuckSending(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeStore) AppendMessageLog(ctx context.Context, entry *models.MessageLog) error {
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeStore) CustomersByPhone(ctx context.Context, phone string) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range f.customers {
		if c.Phone == phone {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeSender records sends and returns a scripted result.
type fakeSender struct {
	result SendResult
	sends  []fakeSend
}

type fakeSend struct {
	Recipient string
	Subject   string
	Body      string
}

func (s *fakeSender) Send(ctx context.Context, recipient, subject, body string) SendResult {
	s.sends = append(s.sends, fakeSend{Recipient: recipient, Subject: subject, Body: body})
	return s.result
}
