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

	"github.com/Dosada05/fantasy-league/config"
	"github.com/Dosada05/fantasy-league/db"
	"github.com/Dosada05/fantasy-league/handlers"
	"github.com/Dosada05/fantasy-league/league"
	"github.com/Dosada05/fantasy-league/live"
	"github.com/Dosada05/fantasy-league/repositories"
	api "github.com/Dosada05/fantasy-league/routes"
	"github.com/Dosada05/fantasy-league/services"
	"github.com/Dosada05/fantasy-league/storage"
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

	// Standings archive (optional)
	var uploader storage.FileUploader
	if cfg.ArchiveEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
		logger.Info("Cloudflare R2 standings archive enabled")
	} else {
		logger.Info("standings archive disabled (R2 not configured)")
	}

	// Live event feed
	feedHub := live.NewHub(logger)
	go feedHub.Run()
	logger.Info("event feed hub started")

	// Repositories
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	treasury := repositories.NewPostgresTreasury(dbConn)
	logger.Info("repositories initialized")

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelBootstrap()

	if err := treasury.EnsureReserve(bootstrapCtx, cfg.TreasuryInitialBalance); err != nil {
		logger.Error("failed to seed treasury reserve", slog.Any("error", err))
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(userRepo)

	admin, err := authService.EnsureAdmin(bootstrapCtx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Error("failed to ensure admin account", slog.Any("error", err))
		os.Exit(1)
	}

	rosterNames := cfg.RosterNames
	if len(rosterNames) == 0 {
		rosterNames = league.DefaultRosterNames
	}

	leagueService := services.NewLeagueService(
		rosterNames,
		treasury,
		eventRepo,
		feedHub,
		uploader,
		logger,
	)
	if err := leagueService.Initialize(admin.ID); err != nil {
		logger.Error("failed to initialize league", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("league initialized",
		slog.Int("admin_id", admin.ID),
		slog.Int("roster_size", len(rosterNames)),
	)

	// HTTP handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	leagueHandler := handlers.NewLeagueHandler(leagueService)
	webSocketHandler := handlers.NewWebSocketHandler(feedHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		leagueHandler,
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
		} else {
			logger.Info("server stopped gracefully")
		}
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
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
