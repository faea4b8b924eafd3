package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"

	"movie-web/internal/middleware"
	"movie-web/internal/tokenstore"
)

// Register mounts every page on app. limiter may be nil.
func (h *Handler) Register(app *fiber.App, stores tokenstore.Factory, limiter *middleware.RateLimiter) {
	app.Get("/health", h.Health)
	app.Get("/static*", static.New("", static.Config{FS: StaticFS()}))

	app.Use(middleware.Session(stores, h.api))

	app.Get("/", h.Home)
	app.Get("/movies/:id", h.MovieDetail)
	app.Post("/movies/:id/comments", h.PostComment)
	app.Post("/movies/:id/ratings", h.PostRating)
	app.Post("/movies/:id/ratings/delete", h.DeleteRating)
	app.Post("/comments/:id/delete", h.DeleteComment)

	if limiter != nil {
		app.Use("/login", limiter.Handler())
		app.Use("/register", limiter.Handler())
	}
	app.Get("/login", h.LoginPage)
	app.Post("/login", h.Login)
	app.Get("/register", h.RegisterPage)
	app.Post("/register", h.RegisterSubmit)
	app.Post("/logout", h.Logout)

	profile := app.Group("/profile", middleware.RequireLogin())
	profile.Get("", h.Profile)
	profile.Post("", h.UpdateProfile)
	profile.Post("/password", h.ChangePassword)
	profile.Post("/avatar", h.UploadAvatar)

	admin := app.Group("/admin", middleware.AdminGuard(stores, h.api))
	admin.Get("", func(c fiber.Ctx) error { return redirect(c, "/admin/movies") })
	admin.Get("/movies", h.AdminMovies)
	admin.Get("/movies/new", h.NewMovie)
	admin.Post("/movies", h.SaveMovie)
	admin.Get("/movies/:id/edit", h.EditMovie)
	admin.Post("/movies/:id", h.SaveMovie)
	admin.Post("/movies/:id/delete", h.DeleteMovie)
	admin.Post("/movies/:id/cover", h.UploadMovieCover)
	h.actors().register(admin, h)
	h.directors().register(admin, h)
}
