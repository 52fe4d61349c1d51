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

type CreateVehicleInput struct {
	CustomerID             string     `json:"customerId" binding:"required,uuid"`
	Registration           string     `json:"registration" binding:"required"`
	Make                   string     `json:"make"`
	Model                  string     `json:"model"`
	Colour                 string     `json:"colour"`
	Year                   *int       `json:"year"`
	Mileage                *int       `json:"mileage"`
	MOTDueDate             *time.Time `json:"motDueDate"`
	LastServiceDate        *time.Time `json:"lastServiceDate"`
	NextServiceDate        *time.Time `json:"nextServiceDate"`
	TyreCheckDueDate       *time.Time `json:"tyreCheckDueDate"`
	RepairFollowupDate     *time.Time `json:"repairFollowupDate"`
	RepairFollowupNotes    string     `json:"repairFollowupNotes"`
	MOTReminderEnabled     *bool      `json:"motReminderEnabled"`
	ServiceReminderEnabled *bool      `json:"serviceReminderEnabled"`
	TyreReminderEnabled    *bool      `json:"tyreReminderEnabled"`
	RepairReminderEnabled  *bool      `json:"repairReminderEnabled"`
}

type UpdateVehicleInput struct {
	Registration           *string    `json:"registration"`
	Make                   *string    `json:"make"`
	Model                  *string    `json:"model"`
	Colour                 *string    `json:"colour"`
	Year                   *int       `json:"year"`
	Mileage                *int       `json:"mileage"`
	MOTDueDate             *time.Time `json:"motDueDate"`
	LastServiceDate        *time.Time `json:"lastServiceDate"`
	NextServiceDate        *time.Time `json:"nextServiceDate"`
	TyreCheckDueDate       *time.Time `json:"tyreCheckDueDate"`
	RepairFollowupDate     *time.Time `json:"repairFollowupDate"`
	RepairFollowupNotes    *string    `json:"repairFollowupNotes"`
	MOTReminderEnabled     *bool      `json:"motReminderEnabled"`
	ServiceReminderEnabled *bool      `json:"serviceReminderEnabled"`
	TyreReminderEnabled    *bool      `json:"tyreReminderEnabled"`
	RepairReminderEnabled  *bool      `json:"repairReminderEnabled"`
}

// CreateVehicle registers a vehicle against one of the garage's customers.
// A vehicle always belongs to the same garage as its customer.
func CreateVehicle(c *gin.Context) {
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

	var input CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID := uuid.MustParse(input.CustomerID)

	// The customer must belong to this garage
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

	vehicle := models.Vehicle{
		ID:                     uuid.New(),
		CustomerID:             customer.ID,
		GarageID:               garageUUID,
		Registration:           strings.ToUpper(strings.ReplaceAll(input.Registration, " ", "")),
		Make:                   input.Make,
		VehicleModel:           input.Model,
		Colour:                 input.Colour,
		Year:                   input.Year,
		Mileage:                input.Mileage,
		MOTDueDate:             input.MOTDueDate,
		LastServiceDate:        input.LastServiceDate,
		NextServiceDate:        input.NextServiceDate,
		TyreCheckDueDate:       input.TyreCheckDueDate,
		RepairFollowupDate:     input.RepairFollowupDate,
		RepairFollowupNotes:    input.RepairFollowupNotes,
		MOTReminderEnabled:     true,
		ServiceReminderEnabled: true,
	}
	if input.MOTReminderEnabled != nil {
		vehicle.MOTReminderEnabled = *input.MOTReminderEnabled
	}
	if input.ServiceReminderEnabled != nil {
		vehicle.ServiceReminderEnabled = *input.ServiceReminderEnabled
	}
	if input.TyreReminderEnabled != nil {
		vehicle.TyreReminderEnabled = *input.TyreReminderEnabled
	}
	if input.RepairReminderEnabled != nil {
		vehicle.RepairReminderEnabled = *input.RepairReminderEnabled
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicles retrieves the garage's vehicles, optionally for one customer
func GetVehicles(c *gin.Context) {
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

	query := config.DB.Preload("Customer").Where("garage_id = ?", garageUUID)
	if customerID := c.Query("customerId"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		query = query.Where("customer_id = ?", customerUUID)
	}

	var vehicles []models.Vehicle
	if err := query.Find(&vehicles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vehicles")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle retrieves a specific vehicle by ID
func GetVehicle(c *gin.Context) {
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

	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.Preload("Customer").
		Where("garage_id = ? AND id = ?", garageUUID, vehicleUUID).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle updates an existing vehicle
func UpdateVehicle(c *gin.Context) {
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

	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var input UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.Where("garage_id = ? AND id = ?", garageUUID, vehicleUUID).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Registration != nil {
		vehicle.Registration = strings.ToUpper(strings.ReplaceAll(*input.Registration, " ", ""))
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.VehicleModel = *input.Model
	}
	if input.Colour != nil {
		vehicle.Colour = *input.Colour
	}
	if input.Year != nil {
		vehicle.Year = input.Year
	}
	if input.Mileage != nil {
		vehicle.Mileage = input.Mileage
	}
	if input.MOTDueDate != nil {
		vehicle.MOTDueDate = input.MOTDueDate
	}
	if input.LastServiceDate != nil {
		vehicle.LastServiceDate = input.LastServiceDate
	}
	if input.NextServiceDate != nil {
		vehicle.NextServiceDate = input.NextServiceDate
	}
	if input.TyreCheckDueDate != nil {
		vehicle.TyreCheckDueDate = input.TyreCheckDueDate
	}
	if input.RepairFollowupDate != nil {
		vehicle.RepairFollowupDate = input.RepairFollowupDate
	}
	if input.RepairFollowupNotes != nil {
		vehicle.RepairFollowupNotes = *input.RepairFollowupNotes
	}
	if input.MOTReminderEnabled != nil {
		vehicle.MOTReminderEnabled = *input.MOTReminderEnabled
	}
	if input.ServiceReminderEnabled != nil {
		vehicle.ServiceReminderEnabled = *input.ServiceReminderEnabled
	}
	if input.TyreReminderEnabled != nil {
		vehicle.TyreReminderEnabled = *input.TyreReminderEnabled
	}
	if input.RepairReminderEnabled != nil {
		vehicle.RepairReminderEnabled = *input.RepairReminderEnabled
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle soft deletes a vehicle
func DeleteVehicle(c *gin.Context) {
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

	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	result := config.DB.Where("garage_id = ? AND id = ?", garageUUID, vehicleUUID).
		Delete(&models.Vehicle{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
