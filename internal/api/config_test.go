package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, "local", cfg.UserID)
	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.False(t, cfg.LogCalls)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("LOCALMATE_API_URL", "https://api.example.com")
	t.Setenv("LOCALMATE_USER_ID", "u-42")
	t.Setenv("LOCALMATE_TIMEOUT_MS", "2500")
	t.Setenv("LOCALMATE_LOG_CALLS", "true")

	cfg := LoadConfig()
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "u-42", cfg.UserID)
	assert.Equal(t, 2500, cfg.TimeoutMs)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfig_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("LOCALMATE_TIMEOUT_MS", "-5")
	cfg := LoadConfig()
	assert.Equal(t, 15000, cfg.TimeoutMs)
}
