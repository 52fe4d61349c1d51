package controllers

import (
	"net/http"

	"garagealert-backend/config"
	"garagealert-backend/models"
	"garagealert-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UpdateGarageInput struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	Postcode     string `json:"postcode"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Website      string `json:"website"`
}

func garageFromContext(c *gin.Context) (*models.Garage, bool) {
	garageID, exists := c.Get("garageId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Garage ID not found in context")
		return nil, false
	}

	garageUUID, err := uuid.Parse(garageID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid garage ID format")
		return nil, false
	}

	var garage models.Garage
	if err := config.DB.First(&garage, "id = ?", garageUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Garage not found")
		return nil, false
	}
	return &garage, true
}

func GetProfile(c *gin.Context) {
	garage, ok := garageFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                   garage.Name,
		"addressLine1":           garage.AddressLine1,
		"addressLine2":           garage.AddressLine2,
		"city":                   garage.City,
		"postcode":               garage.Postcode,
		"phone":                  garage.Phone,
		"email":                  garage.Email,
		"website":                garage.Website,
		"subscriptionStatus":     garage.SubscriptionStatus,
		"subscriptionPlan":       garage.SubscriptionPlan,
		"trialEndsAt":            garage.TrialEndsAt,
		"defaultSmsEnabled":      garage.DefaultSMSEnabled,
		"defaultWhatsappEnabled": garage.DefaultWhatsAppEnabled,
		"defaultEmailEnabled":    garage.DefaultEmailEnabled,
	})
}

func UpdateGarageProfile(c *gin.Context) {
	garage, ok := garageFromContext(c)
	if !ok {
		return
	}

	var input UpdateGarageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	garage.Name = input.Name
	garage.AddressLine1 = input.AddressLine1
	garage.AddressLine2 = input.AddressLine2
	garage.City = input.City
	garage.Postcode = input.Postcode
	garage.Phone = input.Phone
	garage.Email = input.Email
	garage.Website = input.Website

	if err := config.DB.Save(garage).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateNotificationDefaults(c *gin.Context) {
	garage, ok := garageFromContext(c)
	if !ok {
		return
	}

	var input struct {
		DefaultSMSEnabled      bool `json:"defaultSmsEnabled"`
		DefaultWhatsAppEnabled bool `json:"defaultWhatsappEnabled"`
		DefaultEmailEnabled    bool `json:"defaultEmailEnabled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(garage).Updates(map[string]interface{}{
		"default_sms_enabled":       input.DefaultSMSEnabled,
		"default_whats_app_enabled": input.DefaultWhatsAppEnabled,
		"default_email_enabled":     input.DefaultEmailEnabled,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
