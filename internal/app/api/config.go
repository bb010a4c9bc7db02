package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	"github.com/AndyCHK/giphy-api-app/internal/clients/http/giphy"
	interactiondomain "github.com/AndyCHK/giphy-api-app/internal/domains/interactions/domain"
)

// Config carries environment-driven settings for the API process and the
// tools that share its stores.
type Config struct {
	Port              string
	PostgresDSN       string
	RedisURL          string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	JWTSecret         string
	TokenTTL          time.Duration
	MaxContentLength  int
	TokenPurgeEvery   time.Duration
	Giphy             giphy.Config
}

// LoadConfig reads environment variables and, when CONFIG_FILE names one, a
// config file. Environment values win over the file.
func LoadConfig() (Config, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (Config, error) {
	defaults := giphy.DefaultConfig()
	v.SetDefault("PORT", "8080")
	v.SetDefault("TEMPORAL_ADDRESS", client.DefaultHostPort)
	v.SetDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	v.SetDefault("TEMPORAL_DISABLED", false)
	v.SetDefault("TOKEN_TTL_HOURS", 24)
	v.SetDefault("TOKEN_PURGE_INTERVAL_MINUTES", 60)
	v.SetDefault("API_MAX_CONTENT_LENGTH", interactiondomain.DefaultMaxContentLength)
	v.SetDefault("GIPHY_BASE_URL", defaults.BaseURL)
	v.SetDefault("GIPHY_TIMEOUT", int(defaults.Timeout/time.Second))
	v.SetDefault("GIPHY_RETRY_ATTEMPTS", defaults.RetryAttempts)
	v.SetDefault("GIPHY_RETRY_DELAY", int(defaults.RetryDelay/time.Second))
	v.SetDefault("GIPHY_USE_CACHE", defaults.UseCache)
	v.SetDefault("GIPHY_USE_FALLBACK", defaults.UseFallback)
	v.SetDefault("GIPHY_ERROR_THRESHOLD", defaults.ErrorThreshold)
	v.SetDefault("GIPHY_CIRCUIT_BREAKER_TIMEOUT", int(defaults.BreakerTimeout/time.Second))
	v.SetDefault("GIPHY_STALE_TTL_SECONDS", int(defaults.StaleTTL/time.Second))

	v.AutomaticEnv()
	if file := strings.TrimSpace(v.GetString("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := Config{
		Port:              strings.TrimSpace(v.GetString("PORT")),
		PostgresDSN:       strings.TrimSpace(v.GetString("POSTGRES_DSN")),
		RedisURL:          strings.TrimSpace(v.GetString("REDIS_URL")),
		TemporalAddress:   v.GetString("TEMPORAL_ADDRESS"),
		TemporalNamespace: v.GetString("TEMPORAL_NAMESPACE"),
		TemporalDisabled:  v.GetBool("TEMPORAL_DISABLED"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TokenTTL:          time.Duration(v.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
		MaxContentLength:  v.GetInt("API_MAX_CONTENT_LENGTH"),
		TokenPurgeEvery:   time.Duration(v.GetInt("TOKEN_PURGE_INTERVAL_MINUTES")) * time.Minute,
		Giphy: giphy.Config{
			APIKey:         v.GetString("GIPHY_API_KEY"),
			BaseURL:        v.GetString("GIPHY_BASE_URL"),
			Timeout:        time.Duration(v.GetInt("GIPHY_TIMEOUT")) * time.Second,
			RetryAttempts:  v.GetInt("GIPHY_RETRY_ATTEMPTS"),
			RetryDelay:     time.Duration(v.GetInt("GIPHY_RETRY_DELAY")) * time.Second,
			UseCache:       v.GetBool("GIPHY_USE_CACHE"),
			UseFallback:    v.GetBool("GIPHY_USE_FALLBACK"),
			ErrorThreshold: v.GetInt("GIPHY_ERROR_THRESHOLD"),
			BreakerTimeout: time.Duration(v.GetInt("GIPHY_CIRCUIT_BREAKER_TIMEOUT")) * time.Second,
			StaleTTL:       time.Duration(v.GetInt("GIPHY_STALE_TTL_SECONDS")) * time.Second,
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that have no safe default.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL_HOURS must be a positive integer"))
	}
	if c.TokenPurgeEvery <= 0 {
		errs = append(errs, errors.New("TOKEN_PURGE_INTERVAL_MINUTES must be a positive integer"))
	}
	if c.MaxContentLength <= 0 {
		errs = append(errs, errors.New("API_MAX_CONTENT_LENGTH must be a positive integer"))
	}
	if err := c.Giphy.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
