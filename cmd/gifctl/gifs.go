package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AndyCHK/giphy-api-app/internal/clients/http/giphy"
)

func newSearchCmd(open clientFactory) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search GIFs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, open, func(ctx context.Context, client *giphy.Client) (any, error) {
				return client.Search(ctx, args[0], limit, offset)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 25, "results per page")
	cmd.Flags().IntVar(&offset, "offset", 0, "results to skip")
	return cmd
}

func newGetCmd(open clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one GIF by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, open, func(ctx context.Context, client *giphy.Client) (any, error) {
				return client.GetByID(ctx, args[0])
			})
		},
	}
}

func newTrendingCmd(open clientFactory) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "List trending GIFs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, open, func(ctx context.Context, client *giphy.Client) (any, error) {
				return client.Trending(ctx, limit, offset)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 25, "results per page")
	cmd.Flags().IntVar(&offset, "offset", 0, "results to skip")
	return cmd
}

func newBreakerCmd(open clientFactory) *cobra.Command {
	breaker := &cobra.Command{
		Use:   "breaker",
		Short: "Inspect the GIPHY circuit breaker",
	}
	breaker.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the persisted breaker state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, open, func(ctx context.Context, client *giphy.Client) (any, error) {
				return client.Breaker().Snapshot(ctx), nil
			})
		},
	})
	return breaker
}
