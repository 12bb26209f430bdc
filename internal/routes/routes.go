package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-assist/internal/clock"
	"github.com/BruksfildServices01/barber-assist/internal/config"
	"github.com/BruksfildServices01/barber-assist/internal/handlers"
	"github.com/BruksfildServices01/barber-assist/internal/middleware"
	"github.com/BruksfildServices01/barber-assist/internal/notify"
	"github.com/BruksfildServices01/barber-assist/internal/store"
	"github.com/BruksfildServices01/barber-assist/internal/voice"
)

type Deps struct {
	Store    *store.Store
	Notifier *notify.Notifier
	Voice    *voice.Controller
	Clock    clock.Clock
	Config   *config.Config
	Logger   *zap.Logger
}

func RegisterRoutes(r *gin.Engine, deps Deps) error {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler, err := handlers.NewAuthHandler(deps.Config)
	if err != nil {
		return err
	}

	dashboardHandler := handlers.NewDashboardHandler(deps.Store, deps.Clock)
	clientHandler := handlers.NewClientHandler(deps.Store)
	barberHandler := handlers.NewBarberHandler(deps.Store)
	appointmentHandler := handlers.NewAppointmentHandler(deps.Store, deps.Clock)
	notificationHandler := handlers.NewNotificationHandler(deps.Notifier)
	voiceHandler := handlers.NewVoiceHandler(deps.Voice)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(deps.Config))
		{
			secured.GET("/dashboard", dashboardHandler.Get)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)

			secured.GET("/barbers", barberHandler.List)
			secured.POST("/barbers", barberHandler.Create)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/notifications", notificationHandler.List)
			secured.POST("/notifications/:id/confirm", notificationHandler.Confirm)
			secured.POST("/notifications/:id/snooze", notificationHandler.Snooze)
			secured.POST("/notifications/:id/dismiss", notificationHandler.Dismiss)

			// ------------------------------
			// VOICE ASSISTANT
			// ------------------------------
			secured.POST("/voice/start", voiceHandler.Start)
			secured.POST("/voice/stop", voiceHandler.Stop)
			secured.GET("/voice/status", voiceHandler.Status)
		}
	}

	return nil
}
