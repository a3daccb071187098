// Package config loads the environment-variable configuration recognized by
// the service (spec §6.3) plus the ambient operational variables needed to
// run it (SPEC_FULL §1.2).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the fully resolved, validated configuration for one process.
// It is loaded once at startup and passed explicitly to every component that
// needs it — there is no package-level global.
type Config struct {
	// DatabaseURL is a connection string. A "sqlite://" or "file:" prefix
	// selects the sqlite driver for local development and tests; anything
	// else is treated as a Postgres DSN.
	DatabaseURL string

	GoogleSearchAPIKey  string
	GoogleSearchCX      string
	GoogleSearchEndpoint string

	GeminiAPIKey string

	// InternalTraceToken is INTERNAL_TRACE_TOKEN as read by Load. The trace
	// handler does not consult this field: it re-reads the variable per
	// request via Getenv, so operators can rotate it without a restart.
	// Empty means the /api/query/{id}/trace endpoint is open.
	InternalTraceToken string

	HTTPAddr           string
	QueueWorkers       int
	QueuePollInterval  time.Duration
	FetchTimeout       time.Duration
	LogLevel           string

	// CleanupInterval governs how often the background cache-expiry sweep
	// (see pkg/cleanup) removes query_cache rows past their expiry.
	CleanupInterval time.Duration
}

// Getenv re-reads INTERNAL_TRACE_TOKEN live at request time. Every other
// setting is resolved once by Load and frozen into Config.
func Getenv(key string) string { return os.Getenv(key) }

// Load reads .env (if present, via godotenv — missing file is not an error)
// then the process environment, validates what must be present, and applies
// documented defaults for everything else.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		GoogleSearchAPIKey:   os.Getenv("GOOGLE_SEARCH_API_KEY"),
		GoogleSearchCX:       os.Getenv("GOOGLE_SEARCH_CX"),
		GoogleSearchEndpoint: getEnvOrDefault("GOOGLE_SEARCH_ENDPOINT", "https://www.googleapis.com/customsearch/v1"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		InternalTraceToken:   os.Getenv("INTERNAL_TRACE_TOKEN"),
		HTTPAddr:             getEnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	workers, err := strconv.Atoi(getEnvOrDefault("QUEUE_WORKERS", "4"))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("invalid QUEUE_WORKERS: %q", os.Getenv("QUEUE_WORKERS"))
	}
	cfg.QueueWorkers = workers

	pollInterval, err := time.ParseDuration(getEnvOrDefault("QUEUE_POLL_INTERVAL", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUEUE_POLL_INTERVAL: %w", err)
	}
	cfg.QueuePollInterval = pollInterval

	fetchTimeout, err := time.ParseDuration(getEnvOrDefault("FETCH_TIMEOUT", "8s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}
	cfg.FetchTimeout = fetchTimeout

	cleanupInterval, err := time.ParseDuration(getEnvOrDefault("CLEANUP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLEANUP_INTERVAL: %w", err)
	}
	cfg.CleanupInterval = cleanupInterval

	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
