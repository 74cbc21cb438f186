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

	"github.com/muqabla/sportshub/config"
	"github.com/muqabla/sportshub/db"
	"github.com/muqabla/sportshub/handlers"
	"github.com/muqabla/sportshub/live"
	"github.com/muqabla/sportshub/repositories"
	"github.com/muqabla/sportshub/routes"
	"github.com/muqabla/sportshub/services"
	"github.com/muqabla/sportshub/storage"
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
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
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
	} else {
		logger.Warn("R2 storage not configured, media uploads disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live feed hub started")

	sportRepo := repositories.NewPostgresSportRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	scorecardRepo := repositories.NewPostgresScorecardRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)

	sportService := services.NewSportService(sportRepo, eventRepo, teamRepo)
	userService := services.NewUserService(userRepo, uploader)
	teamService := services.NewTeamService(dbConn, teamRepo, registrationRepo, matchRepo, sportRepo, uploader)
	standingService := services.NewStandingService(dbConn, standingRepo, matchRepo, eventRepo, registrationRepo, hub)
	eventService := services.NewEventService(eventRepo, sportRepo, userRepo, registrationRepo, matchRepo, standingRepo, teamRepo, uploader, logger)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo, teamRepo)
	matchService := services.NewMatchService(matchRepo, scorecardRepo, teamRepo, eventRepo, userRepo, standingService, hub, logger)

	go runEventStatusScheduler(eventService, cfg.EventStatusInterval, logger)

	router := routes.InitRoutes(routes.Handlers{
		Sport:        handlers.NewSportHandler(sportService, logger),
		User:         handlers.NewUserHandler(userService, logger),
		Team:         handlers.NewTeamHandler(teamService, logger),
		Event:        handlers.NewEventHandler(eventService, standingService, logger),
		Registration: handlers.NewRegistrationHandler(registrationService, logger),
		Match:        handlers.NewMatchHandler(matchService, logger),
		WebSocket:    handlers.NewWebSocketHandler(hub, logger),
	})

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
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}

// runEventStatusScheduler advances event statuses on a fixed interval, once
// immediately at startup and then on every tick.
func runEventStatusScheduler(eventService services.EventService, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("event status scheduler started", slog.Duration("interval", interval))

	if err := eventService.AutoUpdateEventStatusesByDates(context.Background()); err != nil {
		logger.Error("event status scheduler: initial run failed", slog.Any("error", err))
	}
	for range ticker.C {
		if err := eventService.AutoUpdateEventStatusesByDates(context.Background()); err != nil {
			logger.Error("event status scheduler: periodic run failed", slog.Any("error", err))
		}
	}
}
