package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore persists keys in Redis so every API process shares one view of
// cached results and breaker state.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client. Caller owns the client lifecycle.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Connect initializes a Redis client from URL or host:port input and verifies connectivity.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	redisURL = strings.TrimSpace(redisURL)
	if redisURL == "" {
		return nil, errors.New("redis URL is empty")
	}
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Open returns a Redis-backed store when redisURL is reachable and an
// in-memory store otherwise, plus a cleanup function.
func Open(ctx context.Context, redisURL string, logger *slog.Logger) (Store, func()) {
	if strings.TrimSpace(redisURL) == "" {
		if logger != nil {
			logger.Warn("REDIS_URL not set, falling back to in-memory kv store")
		}
		return NewMemoryStore(), func() {}
	}
	client, err := Connect(ctx, redisURL)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to redis, falling back to in-memory kv store", slog.String("error", err.Error()))
		}
		return NewMemoryStore(), func() {}
	}
	if logger != nil {
		logger.Info("kv store configured with redis")
	}
	return NewRedisStore(client), func() { _ = client.Close() }
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := s.ensureClient(); err != nil {
		return nil, false, err
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) ensureClient() error {
	if s == nil || s.client == nil {
		return ErrNotConfigured
	}
	return nil
}
