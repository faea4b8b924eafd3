package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCookie names the cookie holding the visitor id for RedisStore.
const SessionCookie = "sid"

// RedisStore keeps the token server-side. The browser only holds an opaque visitor id.
type RedisStore struct {
	rdb  *redis.Client
	jar  Jar
	opts CookieOptions
}

// NewRedisStore returns a store keyed by the visitor id found in jar.
func NewRedisStore(rdb *redis.Client, jar Jar, opts CookieOptions) *RedisStore {
	return &RedisStore{rdb: rdb, jar: jar, opts: opts}
}

func (s *RedisStore) available() bool {
	return s != nil && s.rdb != nil && s.jar != nil
}

func tokenKey(sid string) string {
	return fmt.Sprintf("session:%s:%s", sid, Key)
}

func (s *RedisStore) Get(ctx context.Context) (string, bool) {
	if !s.available() {
		return "", false
	}
	sid := s.jar.Cookie(SessionCookie)
	if sid == "" {
		return "", false
	}

	token, err := s.rdb.Get(ctx, tokenKey(sid)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("failed to read token from Redis", "error", err)
		}
		return "", false
	}
	return token, token != ""
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	if !s.available() {
		return nil
	}
	// A new token always gets a new visitor id; a sid the browser arrived with is never trusted.
	old := s.jar.Cookie(SessionCookie)
	sid := uuid.NewString()

	if err := s.rdb.Set(ctx, tokenKey(sid), token, s.opts.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	s.jar.SetCookie(SessionCookie, sid, s.opts.TTL)

	if old != "" {
		if err := s.rdb.Del(ctx, tokenKey(old)).Err(); err != nil {
			slog.Warn("failed to drop previous session", "error", err)
		}
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context) error {
	if !s.available() {
		return nil
	}
	sid := s.jar.Cookie(SessionCookie)
	if sid == "" {
		return nil
	}

	s.jar.ExpireCookie(SessionCookie)
	if err := s.rdb.Del(ctx, tokenKey(sid)).Err(); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}
