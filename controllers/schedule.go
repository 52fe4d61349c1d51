// controllers/schedule.go
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

type CreateScheduleInput struct {
	ReminderType string `json:"reminderType" binding:"required,oneof=mot service tyre repair"`
	DaysBefore   *int   `json:"daysBefore" binding:"required"`
	IsEnabled    *bool  `json:"isEnabled"`
}

type UpdateScheduleInput struct {
	DaysBefore *int  `json:"daysBefore"`
	IsEnabled  *bool `json:"isEnabled"`
}

// CreateSchedule adds a reminder rule. A garage may keep several rules for
// the same type (e.g. 30-day and 7-day MOT reminders); days-before may be
// zero or negative for chasers on or after the due date.
func CreateSchedule(c *gin.Context) {
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

	var input CreateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	schedule := models.ReminderSchedule{
		ID:           uuid.New(),
		GarageID:     garageUUID,
		ReminderType: input.ReminderType,
		DaysBefore:   *input.DaysBefore,
		IsEnabled:    true,
	}
	if input.IsEnabled != nil {
		schedule.IsEnabled = *input.IsEnabled
	}

	if err := config.DB.Create(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create schedule")
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// GetSchedules retrieves all reminder schedules for the garage
func GetSchedules(c *gin.Context) {
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

	var schedules []models.ReminderSchedule
	if err := config.DB.Where("garage_id = ?", garageUUID).
		Order("reminder_type, days_before DESC").
		Find(&schedules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// UpdateSchedule updates days-before or toggles a rule
func UpdateSchedule(c *gin.Context) {
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

	scheduleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid schedule ID format")
		return
	}

	var input UpdateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var schedule models.ReminderSchedule
	if err := config.DB.Where("garage_id = ? AND id = ?", garageUUID, scheduleUUID).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.DaysBefore != nil {
		schedule.DaysBefore = *input.DaysBefore
	}
	if input.IsEnabled != nil {
		schedule.IsEnabled = *input.IsEnabled
	}

	if err := config.DB.Save(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule removes a reminder rule
func DeleteSchedule(c *gin.Context) {
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

	scheduleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid schedule ID format")
		return
	}

	result := config.DB.Where("garage_id = ? AND id = ?", garageUUID, scheduleUUID).
		Delete(&models.ReminderSchedule{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete schedule")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
