package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.NotEmpty(t, cfg.DatabaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("TOKEN_TTL_HOURS", "6")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 6*time.Hour, cfg.TokenTTL)
}

func TestLoad_IgnoresMalformedTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "soon")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}
