package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	"github.com/BruksfildServices01/petspa-booking/internal/config"
	"github.com/BruksfildServices01/petspa-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/petspa-booking/internal/infra/repository"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/vnpay"
	"github.com/BruksfildServices01/petspa-booking/internal/metrics"
	"github.com/BruksfildServices01/petspa-booking/internal/middleware"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
	"github.com/BruksfildServices01/petspa-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/petspa-booking/internal/usecase/appointment"
	ucPayment "github.com/BruksfildServices01/petspa-booking/internal/usecase/payment"
	ucTimeSlot "github.com/BruksfildServices01/petspa-booking/internal/usecase/timeslot"
)

// Dependencies are the process singletons the routes are built from.
// Guard, Notifier and Metrics may be nil.
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Clock    timezone.Clock
	Log      zerolog.Logger
	Audit    audit.Auditor
	Notifier notification.Notifier
	Metrics  *metrics.Metrics
	Gateway  *vnpay.Client
	Guard    ucPayment.CallbackGuard
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestLogger(d.Log),
		middleware.Recovery(),
		middleware.CORS(d.Config.CORSOrigins...),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	paymentRepo := infraRepo.NewPaymentGormRepository(d.DB)
	timeSlotRepo := infraRepo.NewTimeSlotGormRepository(d.DB)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(ucAppointment.Deps{
		Repo:     appointmentRepo,
		Audit:    d.Audit,
		Notifier: d.Notifier,
		Metrics:  d.Metrics,
		Clock:    d.Clock,
		Log:      d.Log,
	})

	paymentHandler := handlers.NewPaymentHandler(ucPayment.Deps{
		Repo:     paymentRepo,
		Gateway:  d.Gateway,
		Guard:    d.Guard,
		Audit:    d.Audit,
		Notifier: d.Notifier,
		Metrics:  d.Metrics,
		Clock:    d.Clock,
		Log:      d.Log,
	})

	timeSlotHandler := handlers.NewTimeSlotHandler(
		ucTimeSlot.NewRegistry(timeSlotRepo, d.Audit, d.Clock),
	)

	publicHandler := handlers.NewPublicHandler(appointmentRepo)
	spaServiceHandler := handlers.NewSpaServiceHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB), d.Clock)

	limiter := middleware.NewIPRateLimiter(d.Config.PublicRatePerMinute).Middleware()

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api")

	// ======================================================
	// PUBLIC
	// ======================================================
	api.GET("/time-slots", timeSlotHandler.ListActive)
	api.GET("/time-slots/availability", publicHandler.Availability)
	api.GET("/services", spaServiceHandler.List)

	api.POST("/appointments", limiter, appointmentHandler.Create)
	api.GET("/appointments/search", limiter, appointmentHandler.Search)
	api.GET("/appointments/:id", appointmentHandler.Get)

	payments := api.Group("/payments")
	{
		payments.POST("/appointments/:id/payments", limiter, paymentHandler.Create)
		payments.PUT("/appointments/:id/method", limiter, paymentHandler.ChangeMethod)
		payments.GET("/appointments/:id/payments", paymentHandler.List)
		payments.POST("/appointments/:id/vnpay-url", limiter, paymentHandler.GatewayURL)

		// gateway IPN and browser return
		payments.POST("/payment-callback", limiter, paymentHandler.Callback)
		payments.GET("/payment-callback", limiter, paymentHandler.Callback)
		payments.GET("/callback", limiter, paymentHandler.Callback)
	}

	// ======================================================
	// ADMIN
	// ======================================================
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(d.Config.JWTSecret))
	{
		admin.GET("/time-slots", timeSlotHandler.List)
		admin.POST("/time-slots", timeSlotHandler.Create)
		admin.GET("/time-slots/:id", timeSlotHandler.Get)
		admin.PUT("/time-slots/:id", timeSlotHandler.Update)
		admin.DELETE("/time-slots/:id", timeSlotHandler.Delete)

		admin.POST("/services", spaServiceHandler.Create)

		admin.GET("/appointments", appointmentHandler.List)
		admin.PUT("/appointments/:id", appointmentHandler.Update)
		admin.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)
		admin.PUT("/appointments/:id/payment-status", appointmentHandler.UpdatePaymentStatus)
		admin.PUT("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		admin.PUT("/appointments/:id/restore", appointmentHandler.Restore)
		admin.DELETE("/appointments/:id", appointmentHandler.Delete)

		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}
