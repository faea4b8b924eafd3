package middleware

import (
	"github.com/gofiber/fiber/v3"

	"movie-web/internal/session"
	"movie-web/internal/tokenstore"
)

const adminLocal = "admin"

// AdminGuard checks the visitor's role against the API on every request.
func AdminGuard(stores tokenstore.Factory, resolver session.UserResolver) fiber.Handler {
	return func(c fiber.Ctx) error {
		d := session.CheckAdmin(c.Context(), stores.For(c), resolver)
		switch d.Verdict {
		case session.Authorized:
			c.Locals(adminLocal, d)
			return c.Next()
		case session.RedirectLogin:
			return c.Redirect().Status(fiber.StatusSeeOther).To("/login")
		default:
			return c.Redirect().Status(fiber.StatusSeeOther).To("/")
		}
	}
}

// AdminToken returns the bearer token of the admin authorized by AdminGuard.
func AdminToken(c fiber.Ctx) string {
	if d, ok := c.Locals(adminLocal).(session.Decision); ok {
		return d.Token
	}
	return ""
}
