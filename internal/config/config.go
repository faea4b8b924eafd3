package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Token store backends.
const (
	TokenStoreCookie = "cookie"
	TokenStoreRedis  = "redis"
)

// Config holds all configuration for the movie web frontend.
type Config struct {
	Port     string `env:"SERVER_PORT, default=8080"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API       APIConfig
	Session   SessionConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// APIConfig locates the remote movie API.
type APIConfig struct {
	Origin   string `env:"API_ORIGIN, default=http://127.0.0.1:8000"`
	BasePath string `env:"API_BASE_PATH, default=/api/v1"`
}

// BaseURL returns the origin joined with the API base path.
func (a APIConfig) BaseURL() string {
	return strings.TrimRight(a.Origin, "/") + "/" + strings.Trim(a.BasePath, "/")
}

// SessionConfig controls where the visitor's bearer token is persisted.
type SessionConfig struct {
	TokenStore   string        `env:"TOKEN_STORE, default=cookie"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
	TTL          time.Duration `env:"SESSION_TTL, default=1h"`
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=127.0.0.1:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// RateLimitConfig bounds login and registration attempts per client IP.
type RateLimitConfig struct {
	Max           int `env:"LOGIN_RATE_LIMIT_MAX, default=10"`
	WindowSeconds int `env:"LOGIN_RATE_LIMIT_WINDOW_SECONDS, default=60"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	switch cfg.Session.TokenStore {
	case TokenStoreCookie, TokenStoreRedis:
	default:
		return nil, fmt.Errorf("invalid TOKEN_STORE %q: want %q or %q",
			cfg.Session.TokenStore, TokenStoreCookie, TokenStoreRedis)
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Session.TTL)
	}

	return &cfg, nil
}
