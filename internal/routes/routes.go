package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/audit"
	"github.com/trimconnect/salon-booking-api/internal/cache"
	"github.com/trimconnect/salon-booking-api/internal/config"
	"github.com/trimconnect/salon-booking-api/internal/handlers"
	infraRepo "github.com/trimconnect/salon-booking-api/internal/infra/repository"
	"github.com/trimconnect/salon-booking-api/internal/middleware"
	"github.com/trimconnect/salon-booking-api/internal/models"
	"github.com/trimconnect/salon-booking-api/internal/notification"
	"github.com/trimconnect/salon-booking-api/internal/settings"
	"github.com/trimconnect/salon-booking-api/internal/storage"
	ucAppointment "github.com/trimconnect/salon-booking-api/internal/usecase/appointment"
	ucPayment "github.com/trimconnect/salon-booking-api/internal/usecase/payment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)

	var settingsCache cache.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		settingsCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	settingsSvc := settings.NewService(db, settingsCache, cfg.SettingsTTL)

	var smsSender notification.Sender = notification.NewNoop()
	if gw := notification.NewGatewayClient(cfg.SMSGatewayURL, cfg.SMSGatewayKey, cfg.SMSSenderID); gw != nil {
		smsSender = gw
	}
	smsDispatcher := notification.NewDispatcher(smsSender)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	uploader := storage.NewUploader(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		smsDispatcher,
		settingsSvc,
		auditDispatcher,
		cfg.ExclusiveSlots,
	)

	listUserAppointmentsUC := ucAppointment.NewListUserAppointments(appointmentRepo)
	listSalonAppointmentsUC := ucAppointment.NewListSalonAppointments(appointmentRepo)

	changeStatusUC := ucAppointment.NewChangeStatus(
		appointmentRepo,
		smsDispatcher,
		settingsSvc,
		auditDispatcher,
	)

	recordPaymentUC := ucPayment.NewRecordPayment(paymentRepo, appointmentRepo, auditDispatcher)
	verifyPaymentUC := ucPayment.NewVerifyPayment(paymentRepo, appointmentRepo, auditDispatcher)
	getPaymentUC := ucPayment.NewGetAppointmentPayment(paymentRepo, appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db, settingsSvc, uploader)
	serviceHandler := handlers.NewServiceHandler(db)
	adminHandler := handlers.NewAdminHandler(db, settingsSvc)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		listUserAppointmentsUC,
		listSalonAppointmentsUC,
		changeStatusUC,
	)

	paymentHandler := handlers.NewPaymentHandler(recordPaymentUC, verifyPaymentUC, getPaymentUC)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/salons", salonHandler.Search)
			public.GET("/salons/:id", salonHandler.GetByID)
		}

		// gateway webhook, authenticated by transaction id knowledge
		api.POST("/payments/verify", paymentHandler.Verify)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListMine)
			secured.GET("/salons/:id/appointments", appointmentHandler.ListForSalon)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

			// ------------------------------
			// PAYMENTS
			// ------------------------------
			secured.POST("/payments", paymentHandler.Record)
			secured.GET("/appointments/:id/payment", paymentHandler.GetForAppointment)

			// ------------------------------
			// SALON OWNER
			// ------------------------------
			owner := secured.Group("/me/salon")
			owner.Use(middleware.RequireRole(models.RoleSalonOwner))
			{
				owner.POST("", salonHandler.Create)
				owner.GET("", salonHandler.GetMine)
				owner.PATCH("", salonHandler.UpdateMine)
				owner.POST("/images/:kind", salonHandler.UploadImage)

				owner.GET("/services", serviceHandler.List)
				owner.POST("/services", serviceHandler.Create)
				owner.PATCH("/services/:id", serviceHandler.Update)

				owner.GET("/audit-logs", auditLogsHandler.List)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/salons", adminHandler.ListSalons)
				admin.PATCH("/salons/:id/verify", adminHandler.VerifySalon)
				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/settings", adminHandler.ListSettings)
				admin.PUT("/settings", adminHandler.UpdateSetting)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
