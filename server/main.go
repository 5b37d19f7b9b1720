package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"atelier/api/routes"
	"atelier/internal/notifications"
	"atelier/internal/shared/config"
	"atelier/internal/shared/database"
	"atelier/internal/timeslots"
	"atelier/pkg/logger"
	"atelier/pkg/ratelimit"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" {
			slog.Info("No .env file found, using system environment variables")
		} else {
			slog.Warn("Could not load .env file", "error", err.Error())
		}
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	appLogger := logger.New()
	logger.SetDefault(appLogger)

	db, err := database.InitDB(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	rateLimiter := ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
		Enabled:         cfg.RateLimit.Enabled,
		WindowDuration:  cfg.RateLimit.WindowDuration,
		DefaultRequests: cfg.RateLimit.DefaultRequests,
		PublicRequests:  cfg.RateLimit.PublicRequests,
		AuthRequests:    cfg.RateLimit.AuthRequests,
		BookingRequests: cfg.RateLimit.BookingRequests,
		AdminRequests:   cfg.RateLimit.AdminRequests,
		HealthRequests:  cfg.RateLimit.HealthRequests,
		WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
	})

	notificationSvc, notificationConsumer := initNotifications(cfg, appLogger)
	if notificationSvc != nil {
		defer notificationSvc.Close()
	}

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if notificationConsumer != nil {
		notificationConsumer.Start(consumerCtx)
		defer notificationConsumer.Close()
	}

	engine := setupRouter(cfg, db, appLogger, rateLimiter, notificationSvc)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			"address", cfg.GetServerAddress(),
			"mode", cfg.GinMode,
			"api_base", cfg.GetAPIBasePath(),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err.Error())
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err.Error())
		os.Exit(1)
	}

	appLogger.Info("Server exited")
}

// initNotifications wires the Kafka producer and consumer when the pipeline is
// enabled. Startup failures are logged and the server continues without it.
func initNotifications(cfg *config.Config, log *logger.Logger) (*notifications.Service, *notifications.Consumer) {
	if !cfg.Kafka.Enabled {
		log.Info("Kafka disabled, notifications will not be published")
		return nil, nil
	}

	producer, err := notifications.NewKafkaProducer(cfg.Kafka, log)
	if err != nil {
		log.Warn("Failed to create Kafka producer, continuing without notification service", "error", err.Error())
		return nil, nil
	}

	consumer, err := notifications.NewConsumer(cfg.Kafka, notifications.NewLogSender(log), log)
	if err != nil {
		log.Warn("Failed to create Kafka consumer, notifications will be published but not delivered", "error", err.Error())
		return notifications.NewService(producer), nil
	}

	return notifications.NewService(producer), consumer
}

func setupRouter(cfg *config.Config, db *database.DB, appLogger *logger.Logger, rateLimiter *ratelimit.RateLimiter, notificationSvc *notifications.Service) *gin.Engine {
	timeslots.RegisterBindingValidators()

	engine := gin.New()

	engine.Use(RequestLoggerMiddleware(appLogger))
	engine.Use(gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(ratelimit.Middleware(rateLimiter))

	router := routes.NewRouter(cfg, db, appLogger, notificationSvc)
	router.SetupRoutes(engine)

	return engine
}

// RequestLoggerMiddleware logs every request with timing information
func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
