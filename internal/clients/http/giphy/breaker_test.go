package giphy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AndyCHK/giphy-api-app/internal/platform/kvstore"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestBreaker(threshold int) (*CircuitBreaker, *kvstore.MemoryStore, *testClock) {
	kv := kvstore.NewMemoryStore()
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	breaker := NewCircuitBreaker(NewKVBreakerStore(kv), threshold, 60*time.Second, WithBreakerClock(clock.Now))
	return breaker, kv, clock
}

func TestCircuitBreaker_OpensAtThreshold(t *testing.T) {
	ctx := context.Background()
	breaker, _, _ := newTestBreaker(3)

	breaker.RecordFailure(ctx, "first")
	breaker.RecordFailure(ctx, "second")
	require.True(t, breaker.CanMakeRequest(ctx))
	require.Equal(t, StateClosed, breaker.Snapshot(ctx).State)

	breaker.RecordFailure(ctx, "third")
	snapshot := breaker.Snapshot(ctx)
	require.Equal(t, StateOpen, snapshot.State)
	require.Equal(t, 3, snapshot.ErrorCount)
	require.False(t, breaker.CanMakeRequest(ctx))
}

func TestCircuitBreaker_HalfOpensOnlyAfterTimeoutStrictlyElapsed(t *testing.T) {
	ctx := context.Background()
	breaker, _, clock := newTestBreaker(1)

	breaker.RecordFailure(ctx, "boom")
	require.Equal(t, clock.now.Unix(), breaker.Snapshot(ctx).LastErrorAt)

	clock.now = clock.now.Add(60 * time.Second)
	require.False(t, breaker.CanMakeRequest(ctx))
	require.Equal(t, StateOpen, breaker.Snapshot(ctx).State)

	clock.now = clock.now.Add(time.Second)
	require.True(t, breaker.CanMakeRequest(ctx))
	require.Equal(t, StateHalfOpen, breaker.Snapshot(ctx).State)
	require.True(t, breaker.CanMakeRequest(ctx))
}

func TestCircuitBreaker_FailedProbeReopensBelowThreshold(t *testing.T) {
	ctx := context.Background()
	breaker, kv, _ := newTestBreaker(10)
	require.NoError(t, kv.Set(ctx, breakerStateKey, []byte(StateHalfOpen), time.Hour))

	breaker.RecordFailure(ctx, "probe failed")

	snapshot := breaker.Snapshot(ctx)
	require.Equal(t, StateOpen, snapshot.State)
	require.Equal(t, 1, snapshot.ErrorCount)
}

func TestCircuitBreaker_SuccessfulProbeCloses(t *testing.T) {
	ctx := context.Background()
	breaker, _, clock := newTestBreaker(2)
	breaker.RecordFailure(ctx, "a")
	breaker.RecordFailure(ctx, "b")
	clock.now = clock.now.Add(2 * time.Minute)
	require.True(t, breaker.CanMakeRequest(ctx))

	breaker.RecordSuccess(ctx)

	snapshot := breaker.Snapshot(ctx)
	require.Equal(t, StateClosed, snapshot.State)
	require.Zero(t, snapshot.ErrorCount)
}

func TestCircuitBreaker_RecordSuccessIsIdempotentWhenClosed(t *testing.T) {
	ctx := context.Background()
	breaker, _, _ := newTestBreaker(5)
	breaker.RecordFailure(ctx, "a")

	breaker.RecordSuccess(ctx)
	first := breaker.Snapshot(ctx)
	breaker.RecordSuccess(ctx)
	second := breaker.Snapshot(ctx)

	require.Equal(t, first, second)
	require.Equal(t, StateClosed, second.State)
	require.Zero(t, second.ErrorCount)
}

func TestCircuitBreaker_RecordSuccessLeavesOpenBreakerAlone(t *testing.T) {
	ctx := context.Background()
	breaker, _, _ := newTestBreaker(1)
	breaker.RecordFailure(ctx, "a")

	breaker.RecordSuccess(ctx)

	snapshot := breaker.Snapshot(ctx)
	require.Equal(t, StateOpen, snapshot.State)
	require.Equal(t, 1, snapshot.ErrorCount)
}

func TestCircuitBreaker_UnknownStateReadsClosed(t *testing.T) {
	ctx := context.Background()
	breaker, kv, _ := newTestBreaker(5)
	require.NoError(t, kv.Set(ctx, breakerStateKey, []byte("sideways"), time.Hour))
	require.NoError(t, kv.Set(ctx, breakerErrorCountKey, []byte("not-a-number"), time.Hour))

	require.True(t, breaker.CanMakeRequest(ctx))
	snapshot := breaker.Snapshot(ctx)
	require.Equal(t, StateClosed, snapshot.State)
	require.Zero(t, snapshot.ErrorCount)
}

func TestCircuitBreaker_PersistsKeysWithExpiry(t *testing.T) {
	ctx := context.Background()
	breaker, kv, _ := newTestBreaker(1)
	breaker.RecordFailure(ctx, "a")

	for _, key := range []string{breakerStateKey, breakerErrorCountKey, breakerLastErrorKey} {
		_, found, err := kv.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, found, key)
	}

	now := time.Now()
	kv.WithClock(func() time.Time { return now.Add(BreakerKeyTTL + time.Minute) })
	require.Equal(t, StateClosed, breaker.Snapshot(ctx).State)
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}

func (failingKV) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

func (failingKV) Delete(context.Context, string) error { return errors.New("store down") }

func TestCircuitBreaker_StoreErrorsFailOpen(t *testing.T) {
	ctx := context.Background()
	breaker := NewCircuitBreaker(NewKVBreakerStore(failingKV{}), 1, time.Minute)

	breaker.RecordFailure(ctx, "boom")
	breaker.RecordSuccess(ctx)

	require.True(t, breaker.CanMakeRequest(ctx))
	require.Equal(t, BreakerSnapshot{State: StateClosed, Threshold: 1}, breaker.Snapshot(ctx))
}
