package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:9000/data", cfg.DataBaseURL)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.FallbackEnabled)
	assert.Equal(t, int64(1), cfg.FallbackSeed)
	assert.Equal(t, "Temperature", cfg.DefaultAnalyte)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DATA_BASE_URL", "http://files.internal/creek")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("FALLBACK_ENABLED", "true")
	t.Setenv("FALLBACK_SEED", "42")
	t.Setenv("DEFAULT_ANALYTE", "pH")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "http://files.internal/creek", cfg.DataBaseURL)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.FallbackEnabled)
	assert.Equal(t, int64(42), cfg.FallbackSeed)
	assert.Equal(t, "pH", cfg.DefaultAnalyte)
}

func TestLoad_InvalidDurations(t *testing.T) {
	t.Run("fetch timeout", func(t *testing.T) {
		t.Setenv("FETCH_TIMEOUT", "not-a-duration")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
	})

	t.Run("negative shutdown timeout", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "-5s")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoad_InvalidSeed(t *testing.T) {
	t.Setenv("FALLBACK_SEED", "forty-two")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FALLBACK_SEED")
}
