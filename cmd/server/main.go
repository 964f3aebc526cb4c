package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/nexahub/nexahub-backend/configs"
	"github.com/nexahub/nexahub-backend/internal/application/services"
	"github.com/nexahub/nexahub-backend/internal/core/ports"
	"github.com/nexahub/nexahub-backend/internal/infrastructure/email"
	"github.com/nexahub/nexahub-backend/internal/infrastructure/health"
	"github.com/nexahub/nexahub-backend/internal/infrastructure/httpserver"
	"github.com/nexahub/nexahub-backend/internal/infrastructure/provider"
	redisinfra "github.com/nexahub/nexahub-backend/internal/infrastructure/redis"
	"github.com/nexahub/nexahub-backend/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting NexaHub backend...")

	// Initialize the verification record store
	var verificationRepo ports.VerificationRepository
	var healthCheckers []ports.HealthChecker

	switch cfg.Verification.Store {
	case "redis":
		redisClient, err := redisinfra.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()

		logger.Info("Connected to Redis successfully")

		verificationRepo = repositories.NewVerificationRedisRepository(redisClient, cfg.Verification.CodeTTL, logger)
		healthCheckers = append(healthCheckers, health.NewRedisHealthChecker(redisClient))
	default:
		memRepo := repositories.NewVerificationMemoryRepository(logger)
		memRepo.StartSweeper(cfg.Verification.SweepInterval, cfg.Verification.CodeTTL)
		defer memRepo.Close()

		verificationRepo = memRepo
	}

	// Initialize the email delivery collaborator
	emailConfig := &email.EmailConfig{
		SendGridAPIKey:    cfg.Email.SendGridAPIKey,
		FromEmail:         cfg.Email.FromEmail,
		FromName:          cfg.Email.FromName,
		CompanyName:       cfg.Email.CompanyName,
		CodeExpiryMinutes: int(cfg.Verification.CodeTTL.Minutes()),
	}
	emailService, err := email.NewEmailService(emailConfig, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	// Initialize the downstream text provider client
	providerClient := provider.NewDeepAIClient(&provider.DeepAIConfig{
		APIKey:  cfg.Provider.APIKey,
		BaseURL: cfg.Provider.BaseURL,
		Timeout: cfg.Provider.Timeout,
	}, logger)

	// Wire services
	verificationService := services.NewVerificationService(verificationRepo, emailService, &services.VerificationConfig{
		CodeTTL:     cfg.Verification.CodeTTL,
		MaxAttempts: cfg.Verification.MaxAttempts,
	}, logger)
	operationService := services.NewOperationService(providerClient, logger)

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	deps := httpserver.ServerDeps{
		VerificationService: verificationService,
		OperationService:    operationService,
		HealthCheckers:      healthCheckers,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
