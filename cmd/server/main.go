package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tuition-center/center-service/internal/cache"
	"github.com/tuition-center/center-service/internal/config"
	"github.com/tuition-center/center-service/internal/handlers"
	"github.com/tuition-center/center-service/internal/repositories/postgres"
	"github.com/tuition-center/center-service/internal/services"
	"github.com/tuition-center/center-service/internal/utils"
	"github.com/tuition-center/center-service/internal/validator"
	"github.com/tuition-center/center-service/pkg"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	logger.Info("Starting center service", "environment", cfg.Environment, "port", cfg.Port)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if cfg.AutoMigrate {
		if err := postgres.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
		logger.Info("Database schema migrated")
	}

	var leaderboard cache.LeaderboardCache
	if cfg.RedisURL != "" {
		client, err := pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Warn("Redis unavailable, leaderboard served from database", "error", err)
		} else {
			defer client.Close()
			leaderboard = cache.NewLeaderboardCache(client, logger.Slog())
		}
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger.Slog())
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	serviceManager := services.NewServiceManager(repo, leaderboard, publisher, logger.Slog(), validator.New())

	if cfg.Events.ConsumesActivity() {
		subscriber, err := cfg.Events.CreateActivitySubscriber(logger.Slog(), serviceManager.Achievement().RefreshAfterActivity)
		if err != nil {
			return fmt.Errorf("failed to create activity subscriber: %w", err)
		}
		defer subscriber.Close()

		go func() {
			if err := subscriber.Run(ctx); err != nil {
				logger.LogError(err, "Activity subscriber stopped")
			}
		}()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger))
	handlers.NewHandlerManager(serviceManager, logger, cfg.EnforceCapabilities).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
