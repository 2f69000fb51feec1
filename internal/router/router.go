package router

import (
	"os"
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/handlers"
	"github.com/outreachdesk/outreach-campaign-backend/internal/middleware"
	"github.com/outreachdesk/outreach-campaign-backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all campaign routes
func SetupRouter(
	db *gorm.DB,
	notifier services.Notifier,
	dialer services.VoiceDialer,
	smsSender services.SmsSender,
	emailSender services.EmailSender,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create a new router
	r := gin.New()

	// Use middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	exportsDir := os.Getenv("EXPORTS_DIR")
	if exportsDir == "" {
		exportsDir = "exports"
	}

	// Create handlers with services
	callCampaignHandler := handlers.NewCallCampaignHandler(db, notifier)
	smsCampaignHandler := handlers.NewSmsCampaignHandler(db)
	emailCampaignHandler := handlers.NewEmailCampaignHandler(db)
	dncHandler := handlers.NewDNCHandler(db)
	exportHandler := handlers.NewExportHandler(db, exportsDir)
	webhookHandler := handlers.NewWebhookHandler(db, notifier)
	notificationHandler := handlers.NewNotificationHandler(db, emailSender)
	triggerHandler := handlers.NewTriggerHandler(db, dialer, smsSender, emailSender, notifier)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Call campaign routes
		callCampaigns := api.Group("/call-campaigns")
		{
			callCampaigns.POST("", callCampaignHandler.CreateCampaign)
			callCampaigns.GET("", callCampaignHandler.GetCampaigns)
			callCampaigns.GET("/:id", callCampaignHandler.GetCampaignByID)
			callCampaigns.PUT("/:id", callCampaignHandler.UpdateCampaign)
			callCampaigns.DELETE("/:id", callCampaignHandler.DeleteCampaign)
			callCampaigns.POST("/:id/contacts", callCampaignHandler.UploadContacts)
			callCampaigns.GET("/:id/calls", callCampaignHandler.GetScheduledCalls)
			callCampaigns.POST("/:id/reactivate", callCampaignHandler.ReactivatePhone)
			callCampaigns.GET("/:id/export", exportHandler.ExportCampaign)
		}

		// SMS campaign routes
		smsCampaigns := api.Group("/sms-campaigns")
		{
			smsCampaigns.POST("", smsCampaignHandler.CreateCampaign)
			smsCampaigns.GET("", smsCampaignHandler.GetCampaigns)
			smsCampaigns.GET("/:id", smsCampaignHandler.GetCampaignByID)
			smsCampaigns.PUT("/:id", smsCampaignHandler.UpdateCampaign)
			smsCampaigns.DELETE("/:id", smsCampaignHandler.DeleteCampaign)
			smsCampaigns.POST("/:id/contacts", smsCampaignHandler.UploadContacts)
		}

		// Email campaign routes
		emailCampaigns := api.Group("/email-campaigns")
		{
			emailCampaigns.POST("", emailCampaignHandler.CreateCampaign)
			emailCampaigns.GET("", emailCampaignHandler.GetCampaigns)
			emailCampaigns.GET("/:id", emailCampaignHandler.GetCampaignByID)
			emailCampaigns.PUT("/:id", emailCampaignHandler.UpdateCampaign)
			emailCampaigns.DELETE("/:id", emailCampaignHandler.DeleteCampaign)
			emailCampaigns.POST("/:id/contacts", emailCampaignHandler.UploadContacts)
		}

		// Do-not-call routes
		dnc := api.Group("/dnc")
		{
			dnc.POST("", dncHandler.CreateEntry)
			dnc.GET("", dncHandler.GetEntries)
			dnc.DELETE("/:id", dncHandler.DeleteEntry)
		}

		// Notification resend (operator surface)
		notifications := api.Group("/notifications")
		{
			notifications.POST("/:conversation_id/resend", notificationHandler.ResendNotification)
		}

		// Provider callbacks and scheduler triggers share the API key guard
		webhooks := api.Group("/webhooks")
		webhooks.Use(middleware.APIKeyAuth())
		{
			webhooks.POST("/call-events", webhookHandler.HandleCallEvent)
		}

		triggers := api.Group("/triggers")
		triggers.Use(middleware.APIKeyAuth())
		{
			triggers.POST("/dispatch-calls", triggerHandler.DispatchCalls)
			triggers.POST("/reclaim-calls", triggerHandler.ReclaimCalls)
			triggers.POST("/dispatch-sms", triggerHandler.DispatchSms)
			triggers.POST("/dispatch-emails", triggerHandler.DispatchEmails)
			triggers.POST("/reconcile-calls", triggerHandler.ReconcileCalls)
		}
	}

	return r
}
