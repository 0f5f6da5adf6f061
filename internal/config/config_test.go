package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_BASE_URL", "API_TIMEOUT", "APP_ENV", "SESSION_SECRET", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:2849", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.True(t, cfg.IsDevelopment())
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE_URL", "https://api.spendwise.example")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://api.spendwise.example", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("API_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Port:        70000,
		APIBaseURL:  "ftp://backend",
		APITimeout:  0,
		Environment: "staging",
		LogFormat:   "xml",
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"invalid port", "scheme 'ftp'", "API timeout", "environment 'staging'", "log format 'xml'"} {
		assert.Contains(t, err.Error(), want)
	}
}
