package routes

import (
	"os"

	"garagealert-backend/config"
	"garagealert-backend/controllers"
	"garagealert-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries the controllers that need injected services; everything else
// is a plain handler over config.DB.
type Deps struct {
	Cron        *controllers.CronController
	Messages    *controllers.MessageController
	Webhooks    *controllers.WebhookController
	Unsubscribe *controllers.UnsubscribeController
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	allowedOrigin := os.Getenv("APP_URL")
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			allowedOrigin,
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Customer-facing consent surfaces — no auth, reachable from message links
	r.POST("/unsubscribe/:token", deps.Unsubscribe.Unsubscribe)
	r.POST("/webhooks/twilio", deps.Webhooks.TwilioInbound)

	// External daily trigger, shared-secret guarded
	cron := r.Group("/api/cron", utils.CronAuthMiddleware())
	{
		cron.GET("/generate-reminders", deps.Cron.GenerateReminders)
		cron.GET("/send-reminders", deps.Cron.SendReminders)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		vehicles := api.Group("/vehicles")
		{
			vehicles.POST("", controllers.CreateVehicle)
			vehicles.GET("", controllers.GetVehicles)
			vehicles.GET("/:id", controllers.GetVehicle)
			vehicles.PUT("/:id", controllers.UpdateVehicle)
			vehicles.DELETE("/:id", controllers.DeleteVehicle)
		}

		schedules := api.Group("/schedules")
		{
			schedules.POST("", controllers.CreateSchedule)
			schedules.GET("", controllers.GetSchedules)
			schedules.PUT("/:id", controllers.UpdateSchedule)
			schedules.DELETE("/:id", controllers.DeleteSchedule)
		}

		templates := api.Group("/templates")
		{
			templates.POST("", controllers.CreateTemplate)
			templates.GET("", controllers.GetTemplates)
			templates.PUT("/:id", controllers.UpdateTemplate)
			templates.DELETE("/:id", controllers.DeleteTemplate)
		}

		reminders := api.Group("/reminders")
		{
			reminders.GET("", controllers.GetReminders)
			reminders.POST("/:id/cancel", controllers.CancelReminder)
		}

		messages := api.Group("/messages")
		{
			messages.GET("", controllers.GetMessages)
			messages.POST("/send", deps.Messages.SendMessage)
		}

		api.GET("/dashboard", controllers.GetDashboardOverview)

		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateGarageProfile)
			profile.PUT("/notifications", controllers.UpdateNotificationDefaults)
		}
	}

	return r
}
