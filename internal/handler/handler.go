// Package handler serves the movie-web pages.
package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-web/internal/middleware"
	"movie-web/internal/movieapi"
	"movie-web/internal/service"
)

// Handler holds the page handlers and what they need.
type Handler struct {
	api     *movieapi.Client
	pages   *service.PagesService
	catalog *service.CatalogService
	profile *service.ProfileService
	views   *Views
}

// New creates a Handler for the API behind api.
func New(api *movieapi.Client) (*Handler, error) {
	views, err := NewViews(templateFuncs(api))
	if err != nil {
		return nil, err
	}
	return &Handler{
		api:     api,
		pages:   service.NewPagesService(api),
		catalog: service.NewCatalogService(api),
		profile: service.NewProfileService(api),
		views:   views,
	}, nil
}

// Health returns service health status.
func (h *Handler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-web",
	})
}

// ErrorHandler renders unhandled errors as an error page.
func (h *Handler) ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled error", "error", err, "status", code, "path", c.Path())
	}

	view := View{Title: "Error", Error: msg}
	if rerr := h.views.Render(c, code, "error", view); rerr != nil {
		slog.Error("failed to render error page", "error", rerr)
		return c.Status(code).SendString(msg)
	}
	return nil
}

// view starts a View carrying the visitor's session and any pending flash.
func (h *Handler) view(c fiber.Ctx, title string, data any) View {
	v := View{
		Title:   title,
		Session: middleware.CurrentSession(c).Snapshot(),
		Data:    data,
	}
	v.Notice, v.Error = takeFlash(c)
	return v
}

// userMessage turns an error into text shown next to the form that caused it.
func userMessage(err error) string {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	switch movieapi.Kind(err) {
	case movieapi.KindUnauthenticated:
		return "Please log in first."
	case movieapi.KindHTTP, movieapi.KindNetwork:
		return err.Error()
	default:
		slog.Error("unexpected error", "error", err)
		return "Something went wrong. Please try again."
	}
}

const (
	flashCookie = "flash"
	flashNotice = "notice"
	flashError  = "error"
)

// setFlash stores a one-shot message for the next page rendered after a redirect.
func setFlash(c fiber.Ctx, kind, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + ":" + msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func takeFlash(c fiber.Ctx) (notice, errMsg string) {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return "", ""
	}
	c.ClearCookie(flashCookie)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", ""
	}
	kind, msg, _ := strings.Cut(decoded, ":")
	if kind == flashError {
		return "", msg
	}
	return msg, ""
}

// redirect sends the visitor to target after a form post.
func redirect(c fiber.Ctx, target string) error {
	return c.Redirect().Status(fiber.StatusSeeOther).To(target)
}

func paramID(c fiber.Ctx) (int, error) {
	id := fiber.Params[int](c, "id")
	if id <= 0 {
		return 0, fiber.NewError(fiber.StatusNotFound, "Page not found.")
	}
	return id, nil
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optInt(field, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", field)
	}
	return &n, nil
}

// formInts collects a repeated form field such as a multi-select.
func formInts(c fiber.Ctx, key string) []int {
	var raw []string
	if form, err := c.MultipartForm(); err == nil {
		raw = form.Value[key]
	} else {
		for _, v := range c.Request().PostArgs().PeekMulti(key) {
			raw = append(raw, string(v))
		}
	}
	out := make([]int, 0, len(raw))
	for _, s := range raw {
		if n, err := strconv.Atoi(s); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// formUpload opens the named file field. It returns nil when no file was chosen.
func formUpload(c fiber.Ctx, field string) (*movieapi.Upload, io.Closer, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh.Size == 0 {
		return nil, nil, nil
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*movieapi.Upload, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return &movieapi.Upload{Filename: fh.Filename, Content: f}, f, nil
}
