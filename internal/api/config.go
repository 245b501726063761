package api

import (
	"os"
	"strconv"
)

// Config holds all configuration for talking to the LocalMate backend.
// It is passed explicitly into clients at construction; there are no
// package-level mutable defaults.
type Config struct {
	BaseURL   string
	UserID    string
	TimeoutMs int
	LogCalls  bool
}

// DefaultConfig returns a Config with sensible defaults for a locally
// running backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8000",
		UserID:    "local",
		TimeoutMs: 15000,
		LogCalls:  false,
	}
}

// LoadConfig reads backend configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LOCALMATE_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("LOCALMATE_USER_ID"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("LOCALMATE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("LOCALMATE_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
