// controllers/webhook.go
package controllers

import (
	"log"
	"net/http"
	"strings"

	"garagealert-backend/config"
	"garagealert-backend/models"
	"garagealert-backend/services"

	"github.com/gin-gonic/gin"
)

var stopKeywords = map[string]bool{
	"STOP":        true,
	"UNSUBSCRIBE": true,
	"CANCEL":      true,
	"QUIT":        true,
}

// WebhookController handles inbound provider callbacks.
type WebhookController struct {
	Consent *services.ConsentService
}

// TwilioInbound receives SMS/WhatsApp replies. A STOP keyword appends an
// opt-out consent record scoped to the channel the message arrived on, for
// every customer holding that phone number. Always replies empty TwiML so
// Twilio doesn't auto-respond.
func (wc *WebhookController) TwilioInbound(c *gin.Context) {
	from := c.PostForm("From")
	body := strings.ToUpper(strings.TrimSpace(c.PostForm("Body")))

	if stopKeywords[body] && from != "" {
		channel := models.ChannelSMS
		phone := from
		if strings.HasPrefix(from, "whatsapp:") {
			channel = models.ChannelWhatsApp
			phone = strings.TrimPrefix(from, "whatsapp:")
		}

		var customers []models.Customer
		if err := config.DB.Where("phone = ?", phone).Find(&customers).Error; err != nil {
			log.Printf("STOP webhook: customer lookup failed: %v", err)
		}

		for _, customer := range customers {
			if err := wc.Consent.OptOutChannel(c.Request.Context(), customer.ID, channel, models.ConsentMethodStopKeyword); err != nil {
				log.Printf("STOP webhook: opt-out failed for customer %s: %v", customer.ID, err)
			}
		}
	}

	c.Data(http.StatusOK, "text/xml",
		[]byte(`<?xml version="1.0" encoding="UTF-8"?><Response></Response>`))
}
