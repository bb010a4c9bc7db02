package ports

import (
	"context"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
)

// WorkflowOrchestrator runs the save-favorite flow, durably when a workflow
// engine is available.
type WorkflowOrchestrator interface {
	AddFavorite(ctx context.Context, input AddFavoriteInput) (*domain.Favorite, error)
}
