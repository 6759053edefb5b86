package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mpalashb/secureprime-digital-agency/config"
	_ "github.com/mpalashb/secureprime-digital-agency/docs" // Important for Swagger
	v1 "github.com/mpalashb/secureprime-digital-agency/internal/delivery/http/v1"
	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/internal/repository/postgres"
	"github.com/mpalashb/secureprime-digital-agency/internal/usecase"
	"github.com/mpalashb/secureprime-digital-agency/pkg/database"
	"github.com/mpalashb/secureprime-digital-agency/pkg/email"
	"github.com/mpalashb/secureprime-digital-agency/pkg/logger"
	"github.com/mpalashb/secureprime-digital-agency/pkg/redis"
	"github.com/mpalashb/secureprime-digital-agency/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           SecurePrimedex Lead Intake API
// @version         1.0
// @description     Contact, consultation and project inquiry forms for the SecurePrimedex site.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting lead intake API", "port", cfg.Port, "brand", cfg.BrandName)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, enables Idempotency-Key)
	var idempotency domain.IdempotencyStore
	var redisCheck usecase.HealthCheck
	if cfg.UpstashRedisURL != "" {
		redisClient, err := redis.NewClient(ctx, redis.Config{
			URL:      cfg.UpstashRedisURL,
			Password: cfg.UpstashRedisPassword,
		})
		if err != nil {
			logger.Log.Warn("Redis unavailable, idempotency keys disabled", "error", err)
		} else {
			defer redisClient.Close()
			idempotency = redis.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL, cfg.IdempotencyPending)
			redisCheck = pingRedis(redisClient)
		}
	}

	// 5. Setup Repositories
	contactRepo := postgres.NewContactRepository(dbPool)
	consultationRepo := postgres.NewConsultationRepository(dbPool)

	// 6. Setup Email Service
	sender := email.NewSender(cfg)
	if !email.IsConfigured(sender) {
		logger.Log.Warn("Email service not configured - thank-you emails will be logged as failures")
	}
	dispatcher := email.NewDispatcher(sender, cfg.NotifyTimeout)

	// 7. Setup UseCases
	deps := usecase.IntakeDeps{
		Validate:    validation.New(),
		Notifier:    dispatcher,
		Idempotency: idempotency,
		Brand:       cfg.BrandName,
		StaffEmail:  cfg.ContactEmailTo,
	}
	contactUC := usecase.NewContactUsecase(contactRepo, deps)
	consultationUC := usecase.NewConsultationUsecase(consultationRepo, deps)
	healthUC := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"database": dbPool.Ping,
		"redis":    redisCheck,
	})

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:      contactUC,
		ConsultationUC: consultationUC,
		HealthUC:       healthUC,
		Release:        cfg.GinMode == gin.ReleaseMode,
		RequestTimeout: cfg.IdempotencyPending,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Thank-you emails already queued still go out
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		logger.Log.Warn("Pending notifications abandoned", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func pingRedis(client *goredis.Client) usecase.HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
