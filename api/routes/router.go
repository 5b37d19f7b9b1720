package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelier/internal/auth"
	"atelier/internal/bookings"
	"atelier/internal/notifications"
	"atelier/internal/payments"
	"atelier/internal/shared/config"
	"atelier/internal/shared/database"
	"atelier/internal/timeslots"
	"atelier/internal/workshops"
	"atelier/pkg/cache"
	"atelier/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config          *config.Config
	db              *database.DB
	log             *logger.Logger
	notificationSvc *notifications.Service

	// shared across modules once built
	timeSlotService timeslots.Service
	paymentService  payments.Service
}

// NewRouter creates a new router instance. notificationSvc may be nil when
// the Kafka pipeline is disabled.
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger, notificationSvc *notifications.Service) *Router {
	return &Router{
		config:          cfg,
		db:              db,
		log:             log,
		notificationSvc: notificationSvc,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupWorkshopRoutes(api)
		r.setupTimeSlotRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "atelier-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "atelier-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())

	var mailer auth.ResetMailer
	if r.notificationSvc != nil {
		mailer = r.notificationSvc
	}

	authService := auth.NewService(authRepo, r.config, mailer)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

func (r *Router) setupWorkshopRoutes(rg *gin.RouterGroup) {
	workshopRepo := workshops.NewRepository(r.db.GetPostgreSQL())
	workshopService := workshops.NewService(workshopRepo)
	workshopController := workshops.NewController(workshopService)

	workshops.SetupWorkshopRoutes(rg, workshopController)
}

func (r *Router) setupTimeSlotRoutes(rg *gin.RouterGroup) {
	slotRepo := timeslots.NewRepository(r.db.GetPostgreSQL())
	cacheService := cache.NewService(r.db.GetRedisClient())
	slotService := timeslots.NewService(slotRepo, cacheService, r.config, r.log)
	slotController := timeslots.NewController(slotService)

	r.timeSlotService = slotService

	timeslots.SetupTimeSlotRoutes(rg, slotController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	paymentService := payments.NewService(paymentRepo, payments.NewMockGateway())
	r.paymentService = paymentService

	var publisher bookings.EventPublisher
	if r.notificationSvc != nil {
		publisher = r.notificationSvc
	}

	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.timeSlotService, paymentService, publisher, r.log)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}
