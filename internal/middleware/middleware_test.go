package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-web/internal/apitest"
	"movie-web/internal/models"
	"movie-web/internal/tokenstore"
)

var cookies = tokenstore.CookieFactory{Options: tokenstore.CookieOptions{TTL: time.Hour}}

func request(t *testing.T, app *fiber.App, method, target, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokenstore.Key, Value: token})
	}
	resp, err := app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestSession(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("alice", "alice@example.com", "secret1", models.RoleUser)

	app := fiber.New()
	app.Use(Session(cookies, api.APIClient()))
	app.Get("/whoami", func(c fiber.Ctx) error {
		snap := CurrentSession(c).Snapshot()
		if !snap.IsLoggedIn {
			return c.SendString("anonymous")
		}
		return c.SendString(snap.User.Username)
	})
	app.Get("/health", func(c fiber.Ctx) error {
		return c.SendString(CurrentSession(c).State().String())
	})

	assert.Equal(t, "anonymous", body(t, request(t, app, http.MethodGet, "/whoami", "")))
	assert.Equal(t, "alice", body(t, request(t, app, http.MethodGet, "/whoami", api.TokenFor("alice@example.com"))))

	resp := request(t, app, http.MethodGet, "/whoami", "forged")
	assert.Equal(t, "anonymous", body(t, resp))
	var cleared bool
	for _, ck := range resp.Cookies() {
		if ck.Name == tokenstore.Key && ck.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "rejected token cookie should be expired")

	before := api.Requests()
	assert.Equal(t, "anonymous", body(t, request(t, app, http.MethodGet, "/health", api.TokenFor("alice@example.com"))))
	assert.Equal(t, before, api.Requests(), "health must not resolve the session")
}

func TestRequireLogin(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("alice", "alice@example.com", "secret1", models.RoleUser)

	app := fiber.New()
	app.Use(Session(cookies, api.APIClient()))
	app.Get("/profile", RequireLogin(), func(c fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp := request(t, app, http.MethodGet, "/profile", "")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = request(t, app, http.MethodGet, "/profile", api.TokenFor("alice@example.com"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminGuard(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("root", "root@example.com", "secret1", models.RoleAdmin)
	api.AddUser("user", "user@example.com", "secret1", models.RoleUser)

	app := fiber.New()
	app.Get("/admin", AdminGuard(cookies, api.APIClient()), func(c fiber.Ctx) error {
		return c.SendString(AdminToken(c))
	})

	tests := []struct {
		name     string
		token    string
		status   int
		location string
	}{
		{"anonymous", "", fiber.StatusSeeOther, "/login"},
		{"invalid token", "forged", fiber.StatusSeeOther, "/login"},
		{"regular user", api.TokenFor("user@example.com"), fiber.StatusSeeOther, "/"},
		{"admin", api.TokenFor("root@example.com"), fiber.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, app, http.MethodGet, "/admin", tt.token)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get("Location"))
			if tt.status == fiber.StatusOK {
				assert.Equal(t, tt.token, body(t, resp))
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	app := fiber.New()
	app.Use(NewRateLimiter(rdb, 2, 60).Handler())
	app.All("/login", func(c fiber.Ctx) error { return c.SendString("ok") })

	assert.Equal(t, fiber.StatusOK, request(t, app, http.MethodPost, "/login", "").StatusCode)
	resp := request(t, app, http.MethodPost, "/login", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	resp = request(t, app, http.MethodPost, "/login", "")
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))

	assert.Equal(t, fiber.StatusOK, request(t, app, http.MethodGet, "/login", "").StatusCode, "GET is not counted")

	mr.FastForward(61 * time.Second)
	assert.Equal(t, fiber.StatusOK, request(t, app, http.MethodPost, "/login", "").StatusCode)
}

func TestRateLimiter_FailOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	for _, rl := range []*RateLimiter{NewRateLimiter(rdb, 1, 60), NewRateLimiter(nil, 1, 60)} {
		app := fiber.New()
		app.Use(rl.Handler())
		app.Post("/login", func(c fiber.Ctx) error { return c.SendString("ok") })

		for range 3 {
			assert.Equal(t, fiber.StatusOK, request(t, app, http.MethodPost, "/login", "").StatusCode)
		}
	}
}
