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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/project-tracker-api/internal/auth"
	"github.com/yukikurage/project-tracker-api/internal/cache"
	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/logging"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/router"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

const shutdownTimeout = 15 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg, log); err != nil {
		return err
	}

	// Run migrations
	if err := database.Migrate(log); err != nil {
		return err
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	revocation, closeCache, err := setupRevocation(cmd.Context(), cfg, tokens.TTL(), log)
	if err != nil {
		return err
	}
	defer closeCache()

	// Initialize services
	db := database.GetDB()
	users := services.NewUserService(
		repository.NewUserRepository(db),
		auth.NewBcryptHasher(cfg.BcryptCost),
		tokens,
		revocation,
		log,
	)
	projects := services.NewProjectService(repository.NewProjectRepository(db))
	tasks := services.NewTaskService(repository.NewTaskRepository(db))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := router.New(router.Deps{
		Users:    users,
		Projects: projects,
		Tasks:    tasks,
		Gate:     middleware.NewGate(tokens, revocation, log),
		Metrics:  middleware.NewMetrics(registry),
		Log:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

// setupRevocation connects to redis when REDIS_ADDR is set. Without redis the
// server runs with no revocation store. Entries live as long as the tokens they revoke.
func setupRevocation(ctx context.Context, cfg *config.Config, tokenTTL time.Duration, log *logrus.Logger) (auth.RevocationStore, func(), error) {
	if !cfg.RevocationEnabled() {
		log.Info("REDIS_ADDR not set, token revocation disabled")
		return nil, func() {}, nil
	}

	client := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.WithField("addr", cfg.RedisAddr).Info("Token revocation enabled")

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("Failed to close redis client")
		}
	}
	return auth.NewRedisRevocationStore(client, tokenTTL), closeFn, nil
}
