package giphy

import (
	"errors"
	"strings"
	"time"
)

// Cache lifetimes per result kind.
const (
	SearchTTL   = time.Hour
	GifTTL      = 24 * time.Hour
	TrendingTTL = 30 * time.Minute

	// BreakerKeyTTL bounds how long persisted breaker keys live.
	BreakerKeyTTL = 24 * time.Hour
)

// Config is the immutable client configuration.
type Config struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	UseCache       bool
	UseFallback    bool
	ErrorThreshold int
	BreakerTimeout time.Duration
	// StaleTTL keeps a shadow copy of every cached result for fallback reads
	// after the primary entry expired. Zero disables the shadow copy.
	StaleTTL time.Duration
}

// DefaultConfig returns the stock client configuration without an API key.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://api.giphy.com/v1",
		Timeout:        5 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     time.Second,
		UseCache:       true,
		UseFallback:    true,
		ErrorThreshold: 5,
		BreakerTimeout: 60 * time.Second,
		StaleTTL:       24 * time.Hour,
	}
}

// Validate rejects configurations the client cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.BaseURL) == "" {
		errs = append(errs, errors.New("giphy base URL is required"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("giphy timeout must be positive"))
	}
	if c.RetryAttempts < 1 {
		errs = append(errs, errors.New("giphy retry attempts must be at least 1"))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, errors.New("giphy retry delay must not be negative"))
	}
	if c.ErrorThreshold < 1 {
		errs = append(errs, errors.New("giphy error threshold must be at least 1"))
	}
	if c.BreakerTimeout < 0 {
		errs = append(errs, errors.New("giphy circuit breaker timeout must not be negative"))
	}
	if c.StaleTTL < 0 {
		errs = append(errs, errors.New("giphy stale TTL must not be negative"))
	}
	return errors.Join(errs...)
}
