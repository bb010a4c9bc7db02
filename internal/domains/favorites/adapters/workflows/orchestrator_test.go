package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/memory"
	favoriteapp "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/application"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	favoriteactivities "github.com/AndyCHK/giphy-api-app/internal/platform/temporal/activities/favorites"
)

func TestInlineFavoriteWorkflows_DelegatesToService(t *testing.T) {
	service := favoriteapp.NewService(memory.NewRepository(), nil)
	orchestrator := NewInlineFavoriteWorkflows(service)
	userID := uuid.New()

	favorite, err := orchestrator.AddFavorite(context.Background(), ports.AddFavoriteInput{UserID: userID, GifID: "abc", Alias: "wave"})
	require.NoError(t, err)
	assert.Equal(t, "wave", favorite.Alias)

	_, err = NewInlineFavoriteWorkflows(nil).AddFavorite(context.Background(), ports.AddFavoriteInput{})
	require.Error(t, err)
}

func TestBuildSaveFavoriteWorkflowID_IsStablePerUserAndGif(t *testing.T) {
	userID := uuid.New()
	a := buildSaveFavoriteWorkflowID(ports.AddFavoriteInput{UserID: userID, GifID: "abc", Alias: "one"})
	b := buildSaveFavoriteWorkflowID(ports.AddFavoriteInput{UserID: userID, GifID: "abc", Alias: "two"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, buildSaveFavoriteWorkflowID(ports.AddFavoriteInput{UserID: userID, GifID: "xyz"}))
}

func TestTranslateWorkflowError(t *testing.T) {
	notFound := temporal.NewNonRetryableApplicationError("gif does not exist", favoriteactivities.ErrTypeGifNotFound, nil)
	require.ErrorIs(t, translateWorkflowError(notFound), ports.ErrGifNotFound)

	invalid := temporal.NewNonRetryableApplicationError("alias is required", favoriteactivities.ErrTypeInvalidInput, nil)
	require.ErrorIs(t, translateWorkflowError(invalid), favoriteapp.ErrInvalidInput)

	other := errors.New("boom")
	require.Equal(t, other, translateWorkflowError(other))
}

func TestTemporalFavoriteWorkflows_RequiresClient(t *testing.T) {
	_, err := (&TemporalFavoriteWorkflows{}).AddFavorite(context.Background(), ports.AddFavoriteInput{})
	require.Error(t, err)
}
