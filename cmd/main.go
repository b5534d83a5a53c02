package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/askhat/football-analysis/config"
	"github.com/askhat/football-analysis/db"
	"github.com/askhat/football-analysis/handlers"
	"github.com/askhat/football-analysis/live"
	"github.com/askhat/football-analysis/repositories"
	api "github.com/askhat/football-analysis/routes"
	"github.com/askhat/football-analysis/services"
	"github.com/askhat/football-analysis/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	leagueRepo := repositories.NewPostgresLeagueRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	catalogService := services.NewCatalogService(dbConn, leagueRepo, teamRepo, playerRepo, logger)
	sessionService := services.NewSessionService(sessionRepo, teamRepo, playerRepo, cloudflareUploader, wsHub)
	lineupService := services.NewLineupService(sessionRepo)
	taggingService := services.NewTaggingService(sessionRepo, eventRepo, wsHub)
	eventLogService := services.NewEventLogService(sessionRepo, eventRepo, wsHub)
	exportService := services.NewExportService(sessionRepo, eventRepo)
	logger.Info("services initialized")

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogService.SeedIfEmpty(seedCtx); err != nil {
		cancelSeed()
		logger.Error("failed to seed catalog", slog.Any("error", err))
		os.Exit(1)
	}
	cancelSeed()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	lineupHandler := handlers.NewLineupHandler(lineupService)
	taggingHandler := handlers.NewTaggingHandler(taggingService)
	eventHandler := handlers.NewEventHandler(eventLogService)
	exportHandler := handlers.NewExportHandler(exportService)
	videoHandler := handlers.NewVideoHandler(sessionService, cloudflareUploader)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, sessionService, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		catalogHandler,
		sessionHandler,
		lineupHandler,
		taggingHandler,
		eventHandler,
		exportHandler,
		videoHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
