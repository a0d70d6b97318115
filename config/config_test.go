package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/hana")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/hana", cfg.DBURL)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 60, cfg.AccessExpiryMin)
	assert.Equal(t, 10080, cfg.RefreshExpiryMin)
	assert.Equal(t, 10, cfg.CodeExpiryMin)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, 15, cfg.RateLimitWindowMin)
	assert.Equal(t, 60, cfg.SweepIntervalMin)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.TwilioAccountSID)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/hana")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30, cfg.AccessExpiryMin)
	assert.Equal(t, 3, cfg.RateLimitMax)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal int
		expected   int
	}{
		{name: "unset uses default", value: "", defaultVal: 42, expected: 42},
		{name: "valid value", value: "7", defaultVal: 42, expected: 7},
		{name: "invalid value falls back", value: "not-a-number", defaultVal: 42, expected: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_INT_KEY", tt.value)
			}
			assert.Equal(t, tt.expected, getEnvAsInt("TEST_INT_KEY", tt.defaultVal))
		})
	}
}
