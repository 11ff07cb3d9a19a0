package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/eaglebank/user-registry/internal/command"
	"github.com/eaglebank/user-registry/internal/config"
	"github.com/eaglebank/user-registry/internal/handler"
	"github.com/eaglebank/user-registry/internal/query"
	"github.com/eaglebank/user-registry/internal/repository"
	"github.com/eaglebank/user-registry/shared/events"
	redisClient "github.com/eaglebank/user-registry/shared/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := config.NewLogger(cfg, os.Stdout)
	if err := run(cfg, logger); err != nil {
		logger.Error("user registry stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Dialect, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db, cfg.Dialect); err != nil {
		return err
	}

	// Redis is optional; without it no lifecycle events are published.
	var publisher command.EventPublisher
	if cfg.RedisAddr != "" {
		redis, err := redisClient.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer redis.Close()
		publisher = events.NewPublisher(redis.Client, cfg.EventStreamLen)
	} else {
		logger.Info("REDIS_ADDR not set, user events disabled")
	}

	writeRepo := repository.NewUserWriteRepository(db, cfg.Dialect)
	readRepo := repository.NewUserReadRepository(db, cfg.Dialect)

	commandSvc := command.NewUserCommandService(writeRepo, publisher, logger)
	querySvc := query.NewUserQueryService(readRepo)

	userHandler := handler.NewUserHandler(commandSvc, querySvc)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(userHandler, handler.RouterConfig{
		BasePath:   cfg.BasePath,
		JWTSecret:  []byte(cfg.JWTSecret),
		Production: cfg.IsProduction(),
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("user registry starting",
			slog.String("port", cfg.Port),
			slog.String("driver", string(cfg.Dialect)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
