package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"

	"movie-web/internal/config"
	"movie-web/internal/database"
	"movie-web/internal/handler"
	"movie-web/internal/middleware"
	"movie-web/internal/movieapi"
	"movie-web/internal/tokenstore"
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))

	cookieOpts := tokenstore.CookieOptions{Secure: cfg.Session.CookieSecure, TTL: cfg.Session.TTL}

	// Redis backs the token store and the login rate limiter (non-fatal if unavailable)
	var rdb *redis.Client
	var stores tokenstore.Factory = tokenstore.CookieFactory{Options: cookieOpts}
	if cfg.Session.TokenStore == config.TokenStoreRedis || cfg.RateLimit.Max > 0 {
		rdb, err = database.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, keeping tokens in cookies and disabling login rate limit", "error", err)
			rdb = nil
		}
	}
	if rdb != nil && cfg.Session.TokenStore == config.TokenStoreRedis {
		stores = tokenstore.RedisFactory{Client: rdb, Options: cookieOpts}
	}
	slog.Info("token store selected", "store", cfg.Session.TokenStore, "redis", rdb != nil)

	var limiter *middleware.RateLimiter
	if rdb != nil && cfg.RateLimit.Max > 0 {
		limiter = middleware.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds)
	}

	api := movieapi.NewClient(cfg.API.Origin, cfg.API.BasePath)
	h, err := handler.New(api)
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Movie Web",
		ServerHeader: "Movie-Web",
		ErrorHandler: h.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	h.Register(app, stores, limiter)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("movie-web starting", "port", cfg.Port, "api", cfg.API.BaseURL())
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down movie-web...")

	if err := app.Shutdown(); err != nil {
		slog.Error("error shutting down HTTP server", "error", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("error closing Redis connection", "error", err)
		} else {
			slog.Info("Redis connection closed")
		}
	}

	slog.Info("movie-web shutdown complete")
}
