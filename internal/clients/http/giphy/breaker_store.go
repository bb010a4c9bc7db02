package giphy

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/AndyCHK/giphy-api-app/internal/platform/kvstore"
)

// Persisted breaker keys.
const (
	breakerStateKey      = "giphy_circuit_breaker_state"
	breakerErrorCountKey = "giphy_circuit_breaker_error_count"
	breakerLastErrorKey  = "giphy_circuit_breaker_last_error_time"
)

// BreakerStore persists the three breaker fields independently.
type BreakerStore interface {
	State(ctx context.Context) (State, error)
	SetState(ctx context.Context, state State) error
	ErrorCount(ctx context.Context) (int, error)
	SetErrorCount(ctx context.Context, count int) error
	// LastErrorAt returns unix seconds of the most recent failure, 0 when unknown.
	LastErrorAt(ctx context.Context) (int64, error)
	SetLastErrorAt(ctx context.Context, unix int64) error
}

var _ BreakerStore = (*KVBreakerStore)(nil)

// KVBreakerStore keeps breaker fields in a kvstore.Store with a fixed expiry.
type KVBreakerStore struct {
	kv  kvstore.Store
	ttl time.Duration
}

// NewKVBreakerStore persists breaker fields in kv with BreakerKeyTTL expiry.
func NewKVBreakerStore(kv kvstore.Store) *KVBreakerStore {
	return &KVBreakerStore{kv: kv, ttl: BreakerKeyTTL}
}

func (s *KVBreakerStore) State(ctx context.Context) (State, error) {
	raw, found, err := s.kv.Get(ctx, breakerStateKey)
	if err != nil || !found {
		return StateClosed, err
	}
	return ParseState(string(raw)), nil
}

func (s *KVBreakerStore) SetState(ctx context.Context, state State) error {
	return s.kv.Set(ctx, breakerStateKey, []byte(state), s.ttl)
}

func (s *KVBreakerStore) ErrorCount(ctx context.Context) (int, error) {
	n, err := s.readInt(ctx, breakerErrorCountKey)
	return int(n), err
}

func (s *KVBreakerStore) SetErrorCount(ctx context.Context, count int) error {
	return s.kv.Set(ctx, breakerErrorCountKey, []byte(strconv.Itoa(count)), s.ttl)
}

func (s *KVBreakerStore) LastErrorAt(ctx context.Context) (int64, error) {
	return s.readInt(ctx, breakerLastErrorKey)
}

func (s *KVBreakerStore) SetLastErrorAt(ctx context.Context, unix int64) error {
	return s.kv.Set(ctx, breakerLastErrorKey, []byte(strconv.FormatInt(unix, 10)), s.ttl)
}

func (s *KVBreakerStore) readInt(ctx context.Context, key string) (int64, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil || !found {
		return 0, err
	}
	n, convErr := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if convErr != nil {
		return 0, nil
	}
	return n, nil
}
