//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/domain"
	"github.com/AndyCHK/giphy-api-app/internal/platform/migrations"
)

func setupInteractionsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("giphy_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			_ = sqlDB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestRepository_SaveAndRecent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupInteractionsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	anonymous := &domain.Interaction{
		ID: uuid.New(), Service: "login", RequestBody: `{"email":"a@example.com"}`,
		ResponseCode: 401, ResponseBody: `{}`, IPAddress: "10.0.0.1", CreatedAt: base,
	}
	authed := &domain.Interaction{
		ID: uuid.New(), UserID: &userID, Service: "favorites", RequestBody: `{}`,
		ResponseCode: 201, ResponseBody: `{"data":{}}`, IPAddress: "2001:db8::1", CreatedAt: base.Add(time.Minute),
	}
	require.NoError(t, repo.Save(ctx, anonymous))
	require.NoError(t, repo.Save(ctx, authed))

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, authed.ID, recent[0].ID)
	require.NotNil(t, recent[0].UserID)
	assert.Equal(t, userID, *recent[0].UserID)
	assert.Nil(t, recent[1].UserID)
	assert.Equal(t, 401, recent[1].ResponseCode)
}
