package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AndyCHK/giphy-api-app/internal/app/api"
	platformobservability "github.com/AndyCHK/giphy-api-app/internal/platform/observability"
	platformpostgres "github.com/AndyCHK/giphy-api-app/internal/platform/postgres"
)

func main() {
	var loop bool
	cmd := &cobra.Command{
		Use:          "token-purger",
		Short:        "Delete expired and revoked bearer tokens",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(loop)
		},
	}
	cmd.Flags().BoolVar(&loop, "loop", false, "keep running and purge every TOKEN_PURGE_INTERVAL_MINUTES")
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(loop bool) error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := platformobservability.NewLogger("info")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	store := api.UserTokenStore(db)
	if store == nil {
		return errors.New("POSTGRES_DSN not set or connection failed; cannot purge tokens")
	}

	purge := func() {
		purgeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		purged, err := store.PurgeExpired(purgeCtx, time.Now().UTC())
		if err != nil {
			logger.Error("token purge failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("token purge completed", slog.Int64("purged", purged))
	}

	purge()
	if !loop {
		return nil
	}
	ticker := time.NewTicker(cfg.TokenPurgeEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			purge()
		}
	}
}
