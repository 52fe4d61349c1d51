// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"garagealert-backend/models"
	"garagealert-backend/utils"
)

// ReminderScheduler materializes pending ScheduledReminder rows for a run
// date: for every eligible garage and every enabled schedule it finds the
// vehicles becoming due on today+days_before, gates them on consent, and
// inserts work items for the dispatcher. Duplicate runs are safe — the
// (vehicle, type, date) unique key turns re-inserts into no-ops.
type ReminderScheduler struct {
	store   ReminderStore
	consent *ConsentService
}

func NewReminderScheduler(store ReminderStore, consent *ConsentService) *ReminderScheduler {
	return &ReminderScheduler{store: store, consent: consent}
}

// GenerateForDate returns the number of newly created reminders. The count
// is for observability only; a failure in one garage is logged and does not
// abort the others.
func (s *ReminderScheduler) GenerateForDate(ctx context.Context, today time.Time) (int, error) {
	today = utils.BeginningOfDay(today)

	garages, err := s.store.EligibleGarages(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, garage := range garages {
		n, err := s.generateForGarage(ctx, garage, today)
		if err != nil {
			log.Printf("Garage %s: reminder generation failed: %v", garage.ID, err)
			continue
		}
		created += n
	}

	log.Printf("Reminder generation for %s created %d rows", utils.DateString(today), created)
	return created, nil
}

func (s *ReminderScheduler) generateForGarage(ctx context.Context, garage models.Garage, today time.Time) (int, error) {
	schedules, err := s.store.EnabledSchedules(ctx, garage.ID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, schedule := range schedules {
		targetDate := utils.AddDays(today, schedule.DaysBefore)

		vehicles, err := s.store.DueVehicles(ctx, garage.ID, schedule.ReminderType, targetDate)
		if err != nil {
			log.Printf("Garage %s: due-vehicle lookup failed for %s: %v", garage.ID, schedule.ReminderType, err)
			continue
		}

		for _, vehicle := range vehicles {
			customer := vehicle.Customer

			allowed, err := s.consent.IsAllowed(ctx, customer.ID, customer.PreferredChannel)
			if err != nil {
				log.Printf("Garage %s: consent lookup failed for customer %s: %v", garage.ID, customer.ID, err)
				continue
			}
			if !allowed {
				continue
			}

			// A missing template still creates the row; the dispatcher
			// fails it later so the gap shows up in the Reminders view
			// instead of vanishing.
			templateID, err := s.store.FindTemplateID(ctx, garage.ID, schedule.ReminderType, customer.PreferredChannel)
			if err != nil {
				log.Printf("Garage %s: template lookup failed: %v", garage.ID, err)
				continue
			}

			inserted, err := s.store.CreateScheduledReminder(ctx, &models.ScheduledReminder{
				GarageID:      garage.ID,
				CustomerID:    customer.ID,
				VehicleID:     vehicle.ID,
				ReminderType:  schedule.ReminderType,
				Channel:       customer.PreferredChannel,
				TemplateID:    templateID,
				ScheduledFor:  today,
				DaysBeforeDue: schedule.DaysBefore,
				Status:        models.ReminderStatusPending,
			})
			if err != nil {
				log.Printf("Garage %s: reminder insert failed for vehicle %s: %v", garage.ID, vehicle.ID, err)
				continue
			}
			if inserted {
				created++
			}
		}
	}

	return created, nil
}
