// controllers/message.go
package controllers

import (
	"errors"
	"net/http"

	"garagealert-backend/config"
	"garagealert-backend/models"
	"garagealert-backend/services"
	"garagealert-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMessages lists the garage's message log, newest first. Every attempted
// send shows up here, including failures.
func GetMessages(c *gin.Context) {
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

	query := config.DB.Where("garage_id = ?", garageUUID).Order("sent_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if channel := c.Query("channel"); channel != "" {
		query = query.Where("channel = ?", channel)
	}

	var messages []models.MessageLog
	if err := query.Limit(200).Find(&messages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// MessageController carries the channel senders for ad hoc sends from the
// customer screen, outside the daily pipeline.
type MessageController struct {
	Senders map[string]services.ChannelSender
}

type SendMessageInput struct {
	CustomerID string            `json:"customerId" binding:"required,uuid"`
	Channel    string            `json:"channel" binding:"required,oneof=sms whatsapp email"`
	Subject    string            `json:"subject"`
	Body       string            `json:"body" binding:"required"`
	Tokens     map[string]string `json:"tokens"`
}

// SendMessage renders and sends a one-off message to a customer and logs it.
func (mc *MessageController) SendMessage(c *gin.Context) {
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

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID := uuid.MustParse(input.CustomerID)

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

	var garage models.Garage
	if err := config.DB.First(&garage, "id = ?", garageUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	tokens := map[string]string{
		utils.TokenFirstName:   customer.FirstName,
		utils.TokenLastName:    customer.LastName,
		utils.TokenGarageName:  garage.Name,
		utils.TokenGaragePhone: garage.Phone,
	}
	for key, value := range input.Tokens {
		tokens[key] = value
	}
	body := utils.RenderTemplate(input.Body, tokens)

	var recipient string
	switch input.Channel {
	case models.ChannelEmail:
		recipient = customer.Email
	default:
		recipient = utils.FormatUKPhone(customer.Phone)
	}
	if recipient == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer has no contact info for this channel")
		return
	}

	subject := input.Subject
	if input.Channel == models.ChannelEmail && subject == "" {
		subject = "Reminder from " + garage.Name
	}

	sender, ok := mc.Senders[input.Channel]
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown channel")
		return
	}

	result := sender.Send(c.Request.Context(), recipient, subject, body)

	status := models.MessageStatusDelivered
	if !result.Success {
		status = models.MessageStatusFailed
	}
	entry := models.MessageLog{
		GarageID:          garageUUID,
		CustomerID:        &customer.ID,
		Channel:           input.Channel,
		Recipient:         recipient,
		Body:              body,
		Status:            status,
		ProviderMessageID: result.ProviderMessageID,
		ErrorMessage:      result.Error,
	}
	if subject != "" {
		entry.Subject = &subject
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to log message")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           result.Success,
		"providerMessageId": result.ProviderMessageID,
		"error":             result.Error,
	})
}
