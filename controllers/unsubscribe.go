// controllers/unsubscribe.go
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
)

// UnsubscribeController handles the customer-facing unsubscribe action
// linked from every outbound message. Consuming the one-time token opts the
// customer out of all channels at once.
type UnsubscribeController struct {
	Consent *services.ConsentService
	Tokens  *services.UnsubscribeTokens
}

func (uc *UnsubscribeController) Unsubscribe(c *gin.Context) {
	token := c.Param("token")

	var customerID uuid.UUID
	if uc.Tokens != nil {
		id, err := uc.Tokens.Consume(c.Request.Context(), token)
		if errors.Is(err, services.ErrTokenNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "This unsubscribe link has expired or was already used")
			return
		}
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process unsubscribe")
			return
		}
		customerID = id
	} else {
		// Without Redis the link carries the customer id directly
		id, err := uuid.Parse(token)
		if err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Invalid unsubscribe link")
			return
		}
		customerID = id
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	if err := uc.Consent.OptOutAllChannels(c.Request.Context(), customer.ID, models.ConsentMethodUnsubscribeLink); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record opt-out")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "You have been unsubscribed from reminder messages",
	})
}
