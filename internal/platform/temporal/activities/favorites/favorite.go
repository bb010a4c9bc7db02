package favorites

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
)

const (
	// ResolveGifActivityName confirms the GIF exists in the catalog.
	ResolveGifActivityName = "favorites.activities.ResolveGif"
	// PersistFavoriteActivityName upserts the favorite without consulting the catalog.
	PersistFavoriteActivityName = "favorites.activities.PersistFavorite"

	// ErrTypeGifNotFound and ErrTypeInvalidInput are non-retryable failure types.
	ErrTypeGifNotFound  = "GifNotFound"
	ErrTypeInvalidInput = "InvalidFavoriteInput"
)

// Activities groups activities that operate on the favorites bounded context.
type Activities struct {
	catalog        ports.GifCatalog
	persistService ports.Service
}

// NewActivities wires the collaborators. persistService should be built
// without a catalog so PersistFavorite does not resolve the GIF a second time.
func NewActivities(catalog ports.GifCatalog, persistService ports.Service) *Activities {
	return &Activities{catalog: catalog, persistService: persistService}
}

// ResolveGif fails with a non-retryable error when the GIF does not exist.
// Catalog outages are returned as-is so Temporal retries them.
func (a *Activities) ResolveGif(ctx context.Context, gifID string) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.catalog == nil {
		logger.Error("resolve gif activity not initialized", "gifId", gifID)
		return errors.New("resolve gif activity not initialized")
	}
	if err := a.catalog.Resolve(ctx, gifID); err != nil {
		if errors.Is(err, ports.ErrGifNotFound) {
			logger.Info("ResolveGif: gif does not exist", "gifId", gifID)
			return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeGifNotFound, err)
		}
		logger.Warn("ResolveGif failed", "gifId", gifID, "error", err)
		return err
	}
	return nil
}

// PersistFavorite stores the favorite and returns the stored record.
func (a *Activities) PersistFavorite(ctx context.Context, input ports.AddFavoriteInput) (*domain.Favorite, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.persistService == nil {
		logger.Error("persist favorite activity not initialized", "gifId", input.GifID)
		return nil, errors.New("persist favorite activity not initialized")
	}
	favorite, err := a.persistService.Add(ctx, input)
	if err != nil {
		if isInvalidInput(err) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
		}
		logger.Error("PersistFavorite failed", "gifId", input.GifID, "error", err)
		return nil, err
	}
	logger.Info("PersistFavorite completed", "favoriteId", favorite.ID.String(), "gifId", favorite.GifID)
	return favorite, nil
}

func isInvalidInput(err error) bool {
	return errors.Is(err, domain.ErrMissingUser) ||
		errors.Is(err, domain.ErrEmptyGifID) ||
		errors.Is(err, domain.ErrEmptyAlias) ||
		errors.Is(err, domain.ErrAliasTooLong)
}
