// services/cron.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartReminderJobs runs the two pipeline stages in-process on a daily
// schedule: generation in the early morning, dispatch mid-morning.
// Deployments that trigger the stages over HTTP instead leave this off.
func StartReminderJobs(scheduler *ReminderScheduler, dispatcher *ReminderDispatcher) *cron.Cron {
	c := cron.New()

	c.AddFunc("0 6 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := scheduler.GenerateForDate(ctx, time.Now()); err != nil {
			log.Printf("Daily reminder generation failed: %v", err)
		}
	})

	c.AddFunc("0 9 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := dispatcher.DispatchForDate(ctx, time.Now()); err != nil {
			log.Printf("Daily reminder dispatch failed: %v", err)
		}
	})

	c.Start()
	log.Println("Reminder scheduler started")
	return c
}
