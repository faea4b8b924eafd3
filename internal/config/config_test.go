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

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.API.Origin)
	assert.Equal(t, "http://127.0.0.1:8000/api/v1", cfg.API.BaseURL())
	assert.Equal(t, TokenStoreCookie, cfg.Session.TokenStore)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10, cfg.RateLimit.Max)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("API_ORIGIN", "https://movies.example.com/")
	t.Setenv("API_BASE_PATH", "api/v2/")
	t.Setenv("TOKEN_STORE", "redis")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_DB", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://movies.example.com/api/v2", cfg.API.BaseURL())
	assert.Equal(t, TokenStoreRedis, cfg.Session.TokenStore)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 4, cfg.Redis.DB)
}

func TestLoad_InvalidTokenStore(t *testing.T) {
	t.Setenv("TOKEN_STORE", "localstorage")

	_, err := Load()
	assert.Error(t, err)
}
