// controllers/cron.go
package controllers

import (
	"net/http"
	"time"

	"garagealert-backend/services"
	"garagealert-backend/utils"

	"github.com/gin-gonic/gin"
)

// CronController exposes the two pipeline stages to the external time-based
// trigger. Both endpoints sit behind CronAuthMiddleware, so a bad secret is
// rejected before any work begins.
type CronController struct {
	Scheduler  *services.ReminderScheduler
	Dispatcher *services.ReminderDispatcher
}

// GenerateReminders materializes pending reminders for today.
func (cc *CronController) GenerateReminders(c *gin.Context) {
	today := time.Now()

	created, err := cc.Scheduler.GenerateForDate(c.Request.Context(), today)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Reminder generation failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"date":    utils.DateString(today),
	})
}

// SendReminders dispatches today's pending reminders.
func (cc *CronController) SendReminders(c *gin.Context) {
	today := time.Now()

	summary, err := cc.Dispatcher.DispatchForDate(c.Request.Context(), today)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Reminder dispatch failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sent":   summary.Sent,
		"failed": summary.Failed,
		"total":  summary.Total,
		"date":   utils.DateString(today),
	})
}
