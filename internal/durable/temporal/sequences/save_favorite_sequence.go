package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	favoriteactivities "github.com/AndyCHK/giphy-api-app/internal/platform/temporal/activities/favorites"
)

// RunSaveFavoriteSequence resolves the GIF in the catalog and then persists
// the favorite, each step under its own retry policy.
func RunSaveFavoriteSequence(ctx workflow.Context, input ports.AddFavoriteInput) (*domain.Favorite, error) {
	logger := workflow.GetLogger(ctx)
	resolveOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        30 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{favoriteactivities.ErrTypeGifNotFound},
		},
	}
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{favoriteactivities.ErrTypeInvalidInput},
		},
	}

	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, resolveOptions), favoriteactivities.ResolveGifActivityName, input.GifID).Get(ctx, nil)
	if err != nil {
		logger.Error("save favorite sequence could not resolve gif", "gifId", input.GifID, "error", err)
		return nil, err
	}

	var favorite domain.Favorite
	err = workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), favoriteactivities.PersistFavoriteActivityName, input).Get(ctx, &favorite)
	if err != nil {
		logger.Error("save favorite sequence failed", "gifId", input.GifID, "error", err)
		return nil, err
	}
	logger.Info("save favorite sequence completed", "favoriteId", favorite.ID.String())
	return &favorite, nil
}
