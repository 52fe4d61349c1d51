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

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	FirstName        string  `json:"firstName" binding:"required"`
	LastName         string  `json:"lastName"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	PreferredChannel string  `json:"preferredChannel" binding:"required,oneof=sms whatsapp email"`
	Notes            string  `json:"notes"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	PreferredChannel *string `json:"preferredChannel" binding:"omitempty,oneof=sms whatsapp email"`
	Notes            *string `json:"notes"`
}

// contactForChannel checks the invariant that a customer carries contact
// info for the channel they will actually be messaged on.
func contactForChannel(channel string, phone, email *string) string {
	switch channel {
	case models.ChannelSMS, models.ChannelWhatsApp:
		if phone == nil || *phone == "" {
			return "Phone number required for " + channel + " reminders"
		}
		if !utils.IsValidUKMobile(*phone) {
			return "Invalid UK mobile number"
		}
	case models.ChannelEmail:
		if email == nil || *email == "" {
			return "Email address required for email reminders"
		}
		if !utils.ValidateEmail(*email) {
			return "Invalid email address"
		}
	}
	return ""
}

// CreateCustomer creates a new customer for the garage
func CreateCustomer(c *gin.Context) {
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

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if msg := contactForChannel(input.PreferredChannel, input.Phone, input.Email); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	customer := models.Customer{
		ID:               uuid.New(),
		GarageID:         garageUUID,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		PreferredChannel: input.PreferredChannel,
		Notes:            input.Notes,
	}
	if input.Phone != nil {
		customer.Phone = utils.FormatUKPhone(*input.Phone)
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers for the garage
func GetCustomers(c *gin.Context) {
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

	var customers []models.Customer
	if err := config.DB.Where("garage_id = ?", garageUUID).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID, with their vehicles
func GetCustomer(c *gin.Context) {
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

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("Vehicles").
		Where("garage_id = ? AND id = ?", garageUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
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

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("garage_id = ? AND id = ?", garageUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.IsValidUKMobile(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid UK mobile number")
			return
		}
		customer.Phone = utils.FormatUKPhone(*input.Phone)
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.PreferredChannel != nil {
		phone, email := customer.Phone, customer.Email
		if msg := contactForChannel(*input.PreferredChannel, &phone, &email); msg != "" {
			utils.RespondWithError(c, http.StatusBadRequest, msg)
			return
		}
		customer.PreferredChannel = *input.PreferredChannel
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer
func DeleteCustomer(c *gin.Context) {
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

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	result := config.DB.Where("garage_id = ? AND id = ?", garageUUID, customerUUID).
		Delete(&models.Customer{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
