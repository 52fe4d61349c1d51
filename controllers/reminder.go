// controllers/reminder.go
package controllers

import (
	"errors"
	"net/http"

	"garagealert-backend/config"
	"garagealert-backend/models"
	"garagealert-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetReminders lists the garage's scheduled reminders, newest first,
// optionally filtered by status. Failed sends show up here with their
// error message — nothing is swallowed.
func GetReminders(c *gin.Context) {
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

	query := config.DB.Preload("Customer").Preload("Vehicle").
		Where("garage_id = ?", garageUUID).
		Order("scheduled_for DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reminders []models.ScheduledReminder
	if err := query.Limit(200).Find(&reminders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminders")
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// CancelReminder marks a pending reminder cancelled. Reminders already in a
// terminal state (sent, failed, skipped, cancelled) stay as they are.
func CancelReminder(c *gin.Context) {
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

	reminderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reminder ID format")
		return
	}

	var reminder models.ScheduledReminder
	if err := config.DB.Where("garage_id = ? AND id = ?", garageUUID, reminderUUID).
		First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reminder not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if reminder.Status != models.ReminderStatusPending {
		utils.RespondWithError(c, http.StatusConflict, "Only pending reminders can be cancelled")
		return
	}

	if err := config.DB.Model(&reminder).
		Update("status", models.ReminderStatusCancelled).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel reminder")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder cancelled"})
}
