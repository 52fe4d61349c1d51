package controllers

import (
	"net/http"
	"time"

	"garagealert-backend/config"
	"garagealert-backend/models"
	"garagealert-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetDashboardOverview returns the headline numbers for the garage:
// customer/vehicle counts, MOTs due in the next 30 days, and this month's
// send outcomes.
func GetDashboardOverview(c *gin.Context) {
	garageID, exists := c.Get("garageId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Garage ID not found in context")
		return
	}

	garageUUID, err := uuid.Parse(garageID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid garage ID format")
		return
	}

	var customerCount, vehicleCount int64
	config.DB.Model(&models.Customer{}).Where("garage_id = ?", garageUUID).Count(&customerCount)
	config.DB.Model(&models.Vehicle{}).Where("garage_id = ?", garageUUID).Count(&vehicleCount)

	today := utils.BeginningOfDay(time.Now())
	in30Days := utils.AddDays(today, 30)

	var motsDueSoon int64
	config.DB.Model(&models.Vehicle{}).
		Where("garage_id = ? AND mot_due_date >= ? AND mot_due_date <= ?",
			garageUUID, utils.DateString(today), utils.DateString(in30Days)).
		Count(&motsDueSoon)

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	var sentThisMonth, failedThisMonth int64
	config.DB.Model(&models.MessageLog{}).
		Where("garage_id = ? AND sent_at >= ? AND status = ?",
			garageUUID, monthStart, models.MessageStatusDelivered).
		Count(&sentThisMonth)
	config.DB.Model(&models.MessageLog{}).
		Where("garage_id = ? AND sent_at >= ? AND status = ?",
			garageUUID, monthStart, models.MessageStatusFailed).
		Count(&failedThisMonth)

	var pendingReminders int64
	config.DB.Model(&models.ScheduledReminder{}).
		Where("garage_id = ? AND status = ?", garageUUID, models.ReminderStatusPending).
		Count(&pendingReminders)

	var recentMessages []models.MessageLog
	config.DB.Where("garage_id = ?", garageUUID).
		Order("sent_at DESC").Limit(10).Find(&recentMessages)

	c.JSON(http.StatusOK, gin.H{
		"customers":        customerCount,
		"vehicles":         vehicleCount,
		"motsDueSoon":      motsDueSoon,
		"sentThisMonth":    sentThisMonth,
		"failedThisMonth":  failedThisMonth,
		"pendingReminders": pendingReminders,
		"recentMessages":   recentMessages,
	})
}
