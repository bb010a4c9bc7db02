package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/AndyCHK/giphy-api-app/internal/app/api"
	favoriteworkflows "github.com/AndyCHK/giphy-api-app/internal/durable/temporal/workflows/favorites"
	platformobservability "github.com/AndyCHK/giphy-api-app/internal/platform/observability"
	favoriteactivities "github.com/AndyCHK/giphy-api-app/internal/platform/temporal/activities/favorites"
)

func main() {
	ctx := context.Background()
	const serviceName = "giphy-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, closeStores := api.OpenStores(ctx, cfg, logger)
	defer closeStores()
	giphyClient, err := api.NewGiphyClient(cfg, stores.KV, instruments)
	if err != nil {
		logger.Error("failed to configure GIPHY client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	catalog := api.NewGifCatalog(api.NewGifService(giphyClient, instruments))
	activities := favoriteactivities.NewActivities(catalog, api.NewFavoriteService(stores.DB, nil, instruments))

	temporalClient, err := api.ConnectTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, favoriteworkflows.SaveFavoriteTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(favoriteworkflows.SaveFavoriteWorkflow, workflow.RegisterOptions{Name: favoriteworkflows.SaveFavoriteWorkflowName})
	w.RegisterActivityWithOptions(activities.ResolveGif, activity.RegisterOptions{Name: favoriteactivities.ResolveGifActivityName})
	w.RegisterActivityWithOptions(activities.PersistFavorite, activity.RegisterOptions{Name: favoriteactivities.PersistFavoriteActivityName})

	logger.Info("worker listening", slog.String("taskQueue", favoriteworkflows.SaveFavoriteTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
