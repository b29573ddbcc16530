package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_TYPE", "DB_PATH", "ADMIN_JWT_SECRET", "TOKEN_TTL", "CORS_ALLOWED_ORIGINS", "LOGIN_RATE_LIMIT", "TRUSTED_PROXIES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5174", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "./data/app.db", cfg.DatabasePath)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.Empty(t, cfg.TrustedProxies)
	assert.True(t, cfg.UsesDefaultSecret())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOGIN_RATE_LIMIT", "not-a-number")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	assert.False(t, cfg.UsesDefaultSecret())
}
