package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Data source configuration. The four JSON resources are fetched from
	// DataBaseURL (e.g. "https://example.org/data" → ".../stations.json").
	DataBaseURL  string
	FetchTimeout time.Duration

	// Synthetic fallback configuration. When enabled, a failed initial load
	// fabricates a seeded demo dataset instead of aborting.
	FallbackEnabled bool
	FallbackSeed    int64

	// DefaultAnalyte seeds the session-global analyte selection.
	DefaultAnalyte string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	fallbackSeed, err := parseInt64("FALLBACK_SEED", 1)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataBaseURL:  envOrDefault("DATA_BASE_URL", "http://localhost:9000/data"),
		FetchTimeout: fetchTimeout,

		FallbackEnabled: os.Getenv("FALLBACK_ENABLED") == "true",
		FallbackSeed:    fallbackSeed,

		DefaultAnalyte: envOrDefault("DEFAULT_ANALYTE", "Temperature"),
	}

	if cfg.DataBaseURL == "" {
		return nil, errors.New("DATA_BASE_URL is required")
	}
	if cfg.DefaultAnalyte == "" {
		return nil, errors.New("DEFAULT_ANALYTE must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt64(key string, def int64) (int64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
