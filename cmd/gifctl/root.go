package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndyCHK/giphy-api-app/internal/app/api"
	"github.com/AndyCHK/giphy-api-app/internal/clients/http/giphy"
	"github.com/AndyCHK/giphy-api-app/internal/platform/kvstore"
	platformobservability "github.com/AndyCHK/giphy-api-app/internal/platform/observability"
)

// clientFactory opens the GIPHY client plus a cleanup for the stores behind it.
type clientFactory func(ctx context.Context) (*giphy.Client, func(), error)

// openClient uses the API configuration so the CLI shares its cache and
// breaker state.
func openClient(ctx context.Context) (*giphy.Client, func(), error) {
	cfg, err := api.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := platformobservability.NewLogger("warn")
	kv, cleanup := kvstore.Open(ctx, cfg.RedisURL, logger)
	client, err := api.NewGiphyClient(cfg, kv, &platformobservability.Instruments{Logger: logger})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return client, cleanup, nil
}

func newRootCmd(open clientFactory) *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:           "gifctl",
		Short:         "Query GIPHY through the API's cache and circuit breaker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				return os.Setenv("CONFIG_FILE", configFile)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (overrides CONFIG_FILE)")

	root.AddCommand(
		newSearchCmd(open),
		newGetCmd(open),
		newTrendingCmd(open),
		newBreakerCmd(open),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := newRootCmd(openClient).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func withClient(cmd *cobra.Command, open clientFactory, fn func(ctx context.Context, client *giphy.Client) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, cleanup, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open giphy client: %w", err)
	}
	defer cleanup()
	result, err := fn(ctx, client)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
