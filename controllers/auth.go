package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"garagealert-backend/config"
	"garagealert-backend/models"
	"garagealert-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	GarageName   string `json:"garageName" binding:"required"`
	GaragePhone  string `json:"garagePhone"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	Postcode     string `json:"postcode"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

// Register creates the garage (tenant) and its owner account in one step.
// New garages start on a trial; billing flips the status later.
func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existingUser models.User
	result := config.DB.Where("email = ? OR phone = ?", input.Email, input.Phone).First(&existingUser)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	trialEndsAt := time.Now().AddDate(0, 0, 14)
	garage := models.Garage{
		ID:                 uuid.New(),
		Name:               input.GarageName,
		Phone:              input.GaragePhone,
		Email:              input.Email,
		AddressLine1:       input.AddressLine1,
		City:               input.City,
		Postcode:           input.Postcode,
		SubscriptionStatus: models.SubscriptionTrialing,
		TrialEndsAt:        &trialEndsAt,
	}

	newUser := models.User{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // Hashed in BeforeCreate hook
		Role:     "owner",
		GarageID: garage.ID,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&garage).Error; err != nil {
			return err
		}
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		return createDefaultSchedules(tx, garage.ID)
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), garage.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":         newUser.ID,
			"email":      newUser.Email,
			"phone":      newUser.Phone,
			"garageName": garage.Name,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	var user models.User
	result := config.DB.Where("email = ? OR phone = ?", identifier, identifier).First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.GarageID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"phone":    user.Phone,
			"garageId": user.GarageID,
		},
	})
}

// Every new garage starts with a 30-day and a 7-day MOT rule plus a
// 14-day service rule, the defaults most garages keep.
func createDefaultSchedules(tx *gorm.DB, garageID uuid.UUID) error {
	defaults := []models.ReminderSchedule{
		{GarageID: garageID, ReminderType: models.ReminderTypeMOT, DaysBefore: 30, IsEnabled: true},
		{GarageID: garageID, ReminderType: models.ReminderTypeMOT, DaysBefore: 7, IsEnabled: true},
		{GarageID: garageID, ReminderType: models.ReminderTypeService, DaysBefore: 14, IsEnabled: true},
	}

	for _, schedule := range defaults {
		schedule.ID = uuid.New()
		if err := tx.Create(&schedule).Error; err != nil {
			return err
		}
	}
	return nil
}

func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.Preload("Garage").First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"name":       user.Name,
			"garageId":   user.GarageID,
			"garageName": user.Garage.Name,
		},
	})
}
