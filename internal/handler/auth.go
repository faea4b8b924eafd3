package handler

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-web/internal/middleware"
	"movie-web/internal/models"
	"movie-web/internal/movieapi"
	"movie-web/internal/service"
)

type loginData struct {
	Email string
}

type registerData struct {
	Username string
	Email    string
}

func (h *Handler) LoginPage(c fiber.Ctx) error {
	if middleware.CurrentSession(c).IsLoggedIn() {
		return redirect(c, "/")
	}
	return h.views.Render(c, fiber.StatusOK, "login", h.view(c, "Log in", loginData{}))
}

// Login exchanges the submitted credentials for a token and starts the session.
func (h *Handler) Login(c fiber.Ctx) error {
	creds := models.Credentials{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}
	fail := func(status int, msg string) error {
		v := h.view(c, "Log in", loginData{Email: creds.Email})
		v.Error = msg
		return h.views.Render(c, status, "login", v)
	}

	if err := service.Validate(creds); err != nil {
		return fail(fiber.StatusUnprocessableEntity, userMessage(err))
	}

	tok, err := h.api.Login(c.Context(), creds)
	if err != nil {
		status := fiber.StatusBadGateway
		if movieapi.Kind(err) == movieapi.KindHTTP {
			status = fiber.StatusUnauthorized
		}
		return fail(status, userMessage(err))
	}

	ctrl := middleware.CurrentSession(c)
	ctrl.Login(c.Context(), tok.AccessToken)
	if !ctrl.IsLoggedIn() {
		return fail(fiber.StatusBadGateway, "Logged in, but your profile could not be loaded. Please try again.")
	}

	slog.Info("visitor logged in", "user_id", ctrl.User().UserID)
	setFlash(c, flashNotice, "Welcome back, "+ctrl.User().Username+".")
	return redirect(c, "/")
}

func (h *Handler) RegisterPage(c fiber.Ctx) error {
	return h.views.Render(c, fiber.StatusOK, "register", h.view(c, "Register", registerData{}))
}

// RegisterSubmit creates an account and sends the visitor to the login page.
func (h *Handler) RegisterSubmit(c fiber.Ctx) error {
	in := models.Registration{
		Username: strings.TrimSpace(c.FormValue("username")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}
	fail := func(status int, msg string) error {
		v := h.view(c, "Register", registerData{Username: in.Username, Email: in.Email})
		v.Error = msg
		return h.views.Render(c, status, "register", v)
	}

	if err := service.Validate(in); err != nil {
		return fail(fiber.StatusUnprocessableEntity, userMessage(err))
	}
	if in.Password != c.FormValue("password_confirm") {
		return fail(fiber.StatusUnprocessableEntity, "passwords do not match")
	}

	if _, err := h.api.Register(c.Context(), in); err != nil {
		return fail(formStatus(err), userMessage(err))
	}

	setFlash(c, flashNotice, "Account created. Please log in.")
	return redirect(c, "/login")
}

// Logout ends the session. It never calls the API.
func (h *Handler) Logout(c fiber.Ctx) error {
	middleware.CurrentSession(c).Logout(c.Context())
	return redirect(c, "/")
}
