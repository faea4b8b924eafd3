package tokenstore

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// Jar reads and writes the visitor's cookies for one request.
type Jar interface {
	Cookie(name string) string
	SetCookie(name, value string, maxAge time.Duration)
	ExpireCookie(name string)
}

// CookieOptions controls the attributes of cookies written by the stores.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

type fiberJar struct {
	c    fiber.Ctx
	opts CookieOptions
	// written tracks values set during this request so reads observe them.
	written map[string]string
}

// NewFiberJar adapts a Fiber request to a Jar.
func NewFiberJar(c fiber.Ctx, opts CookieOptions) Jar {
	if c == nil {
		return nil
	}
	return &fiberJar{c: c, opts: opts, written: make(map[string]string)}
}

func (j *fiberJar) Cookie(name string) string {
	if v, ok := j.written[name]; ok {
		return v
	}
	return j.c.Cookies(name)
}

func (j *fiberJar) SetCookie(name, value string, maxAge time.Duration) {
	j.written[name] = value
	j.c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		Secure:   j.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (j *fiberJar) ExpireCookie(name string) {
	j.written[name] = ""
	j.c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   j.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
