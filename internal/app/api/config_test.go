package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10000, cfg.MaxContentLength)
	assert.Equal(t, "https://api.giphy.com/v1", cfg.Giphy.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Giphy.Timeout)
	assert.Equal(t, 3, cfg.Giphy.RetryAttempts)
	assert.Equal(t, time.Second, cfg.Giphy.RetryDelay)
	assert.True(t, cfg.Giphy.UseCache)
	assert.True(t, cfg.Giphy.UseFallback)
	assert.Equal(t, 5, cfg.Giphy.ErrorThreshold)
	assert.Equal(t, time.Minute, cfg.Giphy.BreakerTimeout)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GIPHY_ERROR_THRESHOLD", "2")
	t.Setenv("GIPHY_USE_FALLBACK", "false")
	t.Setenv("TEMPORAL_DISABLED", "true")

	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 2, cfg.Giphy.ErrorThreshold)
	assert.False(t, cfg.Giphy.UseFallback)
	assert.True(t, cfg.TemporalDisabled)
}

func TestLoadConfig_ReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "giphy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("GIPHY_API_KEY: from-file\nAPI_MAX_CONTENT_LENGTH: 500\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Giphy.APIKey)
	assert.Equal(t, 500, cfg.MaxContentLength)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	t.Setenv("GIPHY_RETRY_ATTEMPTS", "0")
	t.Setenv("TOKEN_TTL_HOURS", "-1")

	_, err := loadConfig(viper.New())
	require.Error(t, err)
	assert.ErrorContains(t, err, "retry attempts")
	assert.ErrorContains(t, err, "TOKEN_TTL_HOURS")
}
