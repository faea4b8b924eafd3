package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-web/internal/session"
	"movie-web/internal/tokenstore"
)

const sessionLocal = "session"

// Session builds the visitor's session controller from their token store
// and restores it before the handler runs.
// Static assets and the health check bypass it.
func Session(stores tokenstore.Factory, resolver session.UserResolver) fiber.Handler {
	publicPrefixes := []string{"/health", "/static"}

	return func(c fiber.Ctx) error {
		path := c.Path()
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		ctrl := session.New(stores.For(c), resolver, slog.Default())
		ctrl.Init(c.Context())
		c.Locals(sessionLocal, ctrl)

		return c.Next()
	}
}

// CurrentSession returns the controller installed by Session.
// Outside of it the visitor is treated as anonymous.
func CurrentSession(c fiber.Ctx) *session.Controller {
	if ctrl, ok := c.Locals(sessionLocal).(*session.Controller); ok {
		return ctrl
	}
	ctrl := session.New(tokenstore.Nop{}, nil, slog.Default())
	ctrl.Init(c.Context())
	c.Locals(sessionLocal, ctrl)
	return ctrl
}

// RequireLogin redirects anonymous visitors to the login page.
func RequireLogin() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !CurrentSession(c).IsLoggedIn() {
			return c.Redirect().Status(fiber.StatusSeeOther).To("/login")
		}
		return c.Next()
	}
}
