package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	favoriteworkflows "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/workflows"
	favoriteports "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	platformobservability "github.com/AndyCHK/giphy-api-app/internal/platform/observability"
)

const serviceName = "giphy-api"

// Run boots the HTTP API with observability, stores, services and workflows
// wired, and serves until ctx is cancelled or the process is interrupted.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, closeStores := OpenStores(ctx, cfg, logger)
	defer closeStores()
	services, err := NewServices(cfg, stores, instruments)
	if err != nil {
		return err
	}

	var workflows favoriteports.WorkflowOrchestrator = favoriteworkflows.NewInlineFavoriteWorkflows(services.Favorites)
	if temporalClient, err := ConnectTemporal(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, saving favorites inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		workflows = favoriteworkflows.NewTemporalFavoriteWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(RouterDeps{
		ServiceName: serviceName,
		Services:    services,
		Workflows:   workflows,
		Registry:    instruments.Registry,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("GIPHY API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("GIPHY API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down GIPHY API")
	return server.Shutdown(shutdownCtx)
}
