package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/memory"
	favoriteapp "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/application"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	favoriteactivities "github.com/AndyCHK/giphy-api-app/internal/platform/temporal/activities/favorites"
)

type stubCatalog struct{ known map[string]bool }

func (s stubCatalog) Resolve(_ context.Context, gifID string) error {
	if !s.known[gifID] {
		return ports.ErrGifNotFound
	}
	return nil
}

func newEnv(t *testing.T, repo ports.Repository) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	acts := favoriteactivities.NewActivities(
		stubCatalog{known: map[string]bool{"abc": true}},
		favoriteapp.NewService(repo, nil),
	)
	env.RegisterActivityWithOptions(acts.ResolveGif, activity.RegisterOptions{Name: favoriteactivities.ResolveGifActivityName})
	env.RegisterActivityWithOptions(acts.PersistFavorite, activity.RegisterOptions{Name: favoriteactivities.PersistFavoriteActivityName})
	return env
}

func TestSaveFavoriteWorkflow_PersistsResolvedGif(t *testing.T) {
	repo := memory.NewRepository()
	env := newEnv(t, repo)
	userID := uuid.New()

	env.ExecuteWorkflow(SaveFavoriteWorkflow, SaveFavoriteWorkflowInput{
		Command: ports.AddFavoriteInput{UserID: userID, GifID: "abc", Alias: "wave"},
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var favorite domain.Favorite
	require.NoError(t, env.GetWorkflowResult(&favorite))
	assert.Equal(t, "abc", favorite.GifID)

	exists, err := repo.Exists(context.Background(), userID, "abc")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSaveFavoriteWorkflow_UnknownGifFailsWithoutPersisting(t *testing.T) {
	repo := memory.NewRepository()
	env := newEnv(t, repo)
	userID := uuid.New()

	env.ExecuteWorkflow(SaveFavoriteWorkflow, SaveFavoriteWorkflowInput{
		Command: ports.AddFavoriteInput{UserID: userID, GifID: "missing", Alias: "wave"},
	})
	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, favoriteactivities.ErrTypeGifNotFound, appErr.Type())

	exists, err := repo.Exists(context.Background(), userID, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}
