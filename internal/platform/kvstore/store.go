// Package kvstore provides the shared key/value store with TTL semantics used
// for GIF result caching and circuit breaker state.
package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured is returned by adapters built without a backing client.
var ErrNotConfigured = errors.New("kv store not configured")

// Store is a minimal key/value store. Each call is a single atomic operation;
// no multi-key transactions are offered.
type Store interface {
	// Get returns the value for key. found is false when the key is absent or expired.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set stores value under key. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
