//go:build integration

package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := Connect(ctx, endpoint)
	require.NoError(t, err)

	cleanup := func() {
		_ = client.Close()
		_ = container.Terminate(ctx)
	}
	return client, cleanup
}

func TestRedisStore_RoundTripAndExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	store := NewRedisStore(client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "giphy_gif_abc", []byte(`{"id":"abc"}`), time.Minute))
	value, found, err := store.Get(ctx, "giphy_gif_abc")
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `{"id":"abc"}`, string(value))

	ttl, err := client.TTL(ctx, "giphy_gif_abc").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, "giphy_gif_abc"))
	_, found, err = store.Get(ctx, "giphy_gif_abc")
	require.NoError(t, err)
	require.False(t, found)
}

func TestOpen_UsesRedisWhenReachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	store, closeStore := Open(context.Background(), client.Options().Addr, nil)
	defer closeStore()
	require.IsType(t, &RedisStore{}, store)
}
