package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "talentdesk-backend/internal/api/http"
	"talentdesk-backend/internal/config"
	"talentdesk-backend/internal/logger"
	"talentdesk-backend/internal/repository/postgres"
	"talentdesk-backend/internal/security"
	"talentdesk-backend/internal/service"
	"talentdesk-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting TalentDesk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Document Store
	docs, err := storage.NewFilesystemStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize document store", "error", err)
		log.Fatalf("Failed to initialize document store: %v", err)
	}
	logger.Info("Using filesystem document store", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Event Sink
	var sink service.EventSink
	if cfg.SendGrid.APIKey != "" {
		sink = service.NewSendGridSink(cfg.SendGrid.APIKey, cfg.SendGrid.From, cfg.SendGrid.FromName, cfg.SendGrid.HRInbox)
		logger.Info("Using SendGrid event sink", "from", cfg.SendGrid.From)
	} else {
		sink = service.NewLogSink()
		logger.Warn("No SendGrid API key configured, pipeline events will only be logged")
	}

	// Initialize Services
	jobSvc := service.NewJobCatalogService(store.Jobs)
	referralSvc := service.NewReferralService(store.Referrals, store.Jobs, docs)
	interviewSvc := service.NewInterviewService(
		store,
		store.Referrals,
		store.Jobs,
		store.Rounds,
		store.Interviews,
		store.History,
	)
	offerSvc := service.NewOfferService(
		store,
		store.Offers,
		store.Referrals,
		store.Jobs,
		docs,
		sink,
		cfg.Offers.PublicBaseURL,
	)
	onboardingSvc := service.NewOnboardingService(store, store.Jobs, sink)

	// Initialize HTTP API
	handlers := httpapi.NewHandlers(jobSvc, referralSvc, interviewSvc, offerSvc, onboardingSvc, cfg.Storage.MaxFileSize)
	router := httpapi.NewRouter(handlers, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
