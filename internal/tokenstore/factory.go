package tokenstore

import (
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// CookieFactory binds a CookieStore to each request.
type CookieFactory struct {
	Options CookieOptions
}

func (f CookieFactory) For(c fiber.Ctx) Store {
	return NewCookieStore(NewFiberJar(c, f.Options), f.Options)
}

// RedisFactory binds a RedisStore to each request.
type RedisFactory struct {
	Client  *redis.Client
	Options CookieOptions
}

func (f RedisFactory) For(c fiber.Ctx) Store {
	return NewRedisStore(f.Client, NewFiberJar(c, f.Options), f.Options)
}
