package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// RateLimiter bounds attempts per client IP in a fixed Redis window.
type RateLimiter struct {
	rdb       *redis.Client
	maxReqs   int
	windowSec int
	prefix    string
}

// NewRateLimiter creates a rate limiter. A nil client disables it.
func NewRateLimiter(rdb *redis.Client, maxReqs, windowSec int) *RateLimiter {
	return &RateLimiter{
		rdb:       rdb,
		maxReqs:   maxReqs,
		windowSec: windowSec,
		prefix:    "ratelimit:login",
	}
}

// Handler returns a Fiber middleware that rejects requests over the limit.
// Only POSTs are counted.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		if rl.rdb == nil || c.Method() != fiber.MethodPost {
			return c.Next()
		}

		key := fmt.Sprintf("%s:%s", rl.prefix, c.IP())
		ctx := c.Context()

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			// fail open
			slog.Warn("rate limiter unavailable", "error", err)
			return c.Next()
		}
		if count == 1 {
			rl.rdb.Expire(ctx, key, time.Duration(rl.windowSec)*time.Second)
		}

		ttl, _ := rl.rdb.TTL(ctx, key).Result()

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.maxReqs))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, int64(rl.maxReqs)-count)))
		c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", int(ttl.Seconds())))

		if int(count) > rl.maxReqs {
			c.Set("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many attempts. Please wait a moment and try again.")
		}

		return c.Next()
	}
}
