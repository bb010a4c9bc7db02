package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("v"), value)

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))
	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStore_ExpiresEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	store := NewMemoryStore()
	store.WithClock(func() time.Time { return now })

	require.NoError(t, store.Set(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, store.Set(ctx, "forever", []byte("2"), 0))

	now = now.Add(time.Second)
	_, found, err := store.Get(ctx, "short")
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, 1, store.Len())

	now = now.Add(365 * 24 * time.Hour)
	_, found, err = store.Get(ctx, "forever")
	require.NoError(t, err)
	require.True(t, found)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	input := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", input, 0))
	input[0] = 'x'

	value, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	value[1] = 'y'

	again, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), again)
}

func TestOpen_FallsBackToMemoryWithoutURL(t *testing.T) {
	store, cleanup := Open(context.Background(), "", nil)
	defer cleanup()
	require.IsType(t, &MemoryStore{}, store)
}

func TestRedisStore_RequiresClient(t *testing.T) {
	var store *RedisStore
	_, _, err := store.Get(context.Background(), "k")
	require.ErrorIs(t, err, ErrNotConfigured)
	require.ErrorIs(t, NewRedisStore(nil).Set(context.Background(), "k", nil, 0), ErrNotConfigured)
}
