package favorites

import (
	"go.temporal.io/sdk/workflow"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	"github.com/AndyCHK/giphy-api-app/internal/durable/temporal/sequences"
)

const (
	// SaveFavoriteWorkflowName is the public identifier for registering the workflow.
	SaveFavoriteWorkflowName = "favorites.workflows.SaveFavorite"
	// SaveFavoriteTaskQueue is the queue consumed by the favorites worker.
	SaveFavoriteTaskQueue = "FAVORITES"
)

// SaveFavoriteWorkflowInput carries the save command and the caller's trace id.
type SaveFavoriteWorkflowInput struct {
	Command ports.AddFavoriteInput
	TraceID string
}

// SaveFavoriteWorkflow orchestrates the activities that save a favorite.
func SaveFavoriteWorkflow(ctx workflow.Context, input SaveFavoriteWorkflowInput) (*domain.Favorite, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("SaveFavoriteWorkflow started", withTraceID(input.TraceID, "gifId", input.Command.GifID)...)
	favorite, err := sequences.RunSaveFavoriteSequence(ctx, input.Command)
	if err != nil {
		logger.Error("SaveFavoriteWorkflow failed", withTraceID(input.TraceID, "gifId", input.Command.GifID, "error", err)...)
		return nil, err
	}
	logger.Info("SaveFavoriteWorkflow completed", withTraceID(input.TraceID, "favoriteId", favorite.ID.String())...)
	return favorite, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
