package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"garagealert-backend/config"
	"garagealert-backend/controllers"
	"garagealert-backend/models"
	"garagealert-backend/routes"
	"garagealert-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Garage{},
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.ConsentRecord{},
		&models.ReminderSchedule{},
		&models.MessageTemplate{},
		&models.ScheduledReminder{},
		&models.MessageLog{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	store := services.NewGormStore(config.DB)
	consent := services.NewConsentService(store)

	twilioClient := services.NewTwilioClient()
	senders := map[string]services.ChannelSender{
		models.ChannelSMS:      services.NewTwilioSMSSender(twilioClient, os.Getenv("TWILIO_PHONE_NUMBER")),
		models.ChannelWhatsApp: services.NewTwilioWhatsAppSender(twilioClient, os.Getenv("TWILIO_WHATSAPP_NUMBER")),
	}
	emailSender, err := services.NewSESEmailSender(context.Background())
	if err != nil {
		log.Printf("Email sender unavailable: %v", err)
	} else {
		senders[models.ChannelEmail] = emailSender
	}

	var tokens *services.UnsubscribeTokens
	if redisClient := config.ConnectRedis(); redisClient != nil {
		tokens = services.NewUnsubscribeTokens(redisClient)
	}

	scheduler := services.NewReminderScheduler(store, consent)
	dispatcher := services.NewReminderDispatcher(store, senders, tokens, os.Getenv("APP_URL"))

	// In-process daily jobs; deployments using the HTTP cron trigger leave
	// this unset.
	if os.Getenv("ENABLE_CRON") == "true" {
		services.StartReminderJobs(scheduler, dispatcher)
	}

	r := routes.SetupRouter(routes.Deps{
		Cron:        &controllers.CronController{Scheduler: scheduler, Dispatcher: dispatcher},
		Messages:    &controllers.MessageController{Senders: senders},
		Webhooks:    &controllers.WebhookController{Consent: consent},
		Unsubscribe: &controllers.UnsubscribeController{Consent: consent, Tokens: tokens},
	})
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
