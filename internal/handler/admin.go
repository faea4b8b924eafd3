package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-web/internal/middleware"
	"movie-web/internal/models"
	"movie-web/internal/movieapi"
	"movie-web/internal/service"
)

// formStatus picks the status a re-rendered form is sent with.
func formStatus(err error) int {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusUnprocessableEntity
	}
	switch movieapi.Kind(err) {
	case movieapi.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case movieapi.KindHTTP:
		if code := movieapi.StatusCode(err); code >= 400 && code < 500 {
			return code
		}
		return fiber.StatusBadGateway
	case movieapi.KindNetwork:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

type adminMoviesData struct {
	Movies []models.Movie
	Search string
}

// AdminMovies lists movies with edit and delete actions.
func (h *Handler) AdminMovies(c fiber.Ctx) error {
	search := c.Query("search")
	v := h.view(c, "Manage movies", nil)

	movies, err := h.api.ListMovies(c.Context(), models.MovieQuery{Search: search})
	if err != nil {
		v.Error = service.MsgMoviesUnavailable
	}
	v.Data = adminMoviesData{Movies: movies, Search: search}
	return h.views.Render(c, fiber.StatusOK, "admin_movies", v)
}

type movieFormData struct {
	Form    service.EntityForm[models.MovieInput]
	Movie   *models.Movie
	Options *service.FormOptions
}

func (h *Handler) renderMovieForm(c fiber.Ctx, status int, data movieFormData, errMsg string) error {
	if data.Options == nil {
		opts, err := h.catalog.MovieFormOptions(c.Context())
		if err != nil {
			opts = &service.FormOptions{}
			if errMsg == "" {
				errMsg = "Could not load actors and directors: " + userMessage(err)
			}
		}
		data.Options = opts
	}

	title := "New movie"
	if data.Form.Editing() {
		title = "Edit movie"
	}
	v := h.view(c, title, data)
	if errMsg != "" {
		v.Error = errMsg
	}
	return h.views.Render(c, status, "movie_form", v)
}

func (h *Handler) NewMovie(c fiber.Ctx) error {
	return h.renderMovieForm(c, fiber.StatusOK, movieFormData{Form: service.MovieDraft(nil)}, "")
}

func (h *Handler) EditMovie(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	movie, err := h.api.GetMovie(c.Context(), id)
	if err != nil {
		if movieapi.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Movie not found.")
		}
		setFlash(c, flashError, userMessage(err))
		return redirect(c, "/admin/movies")
	}
	return h.renderMovieForm(c, fiber.StatusOK, movieFormData{Form: service.MovieDraft(movie), Movie: movie}, "")
}

func parseMovieInput(c fiber.Ctx) (models.MovieInput, error) {
	year, err := optInt("release year", c.FormValue("release_year"))
	if err != nil {
		return models.MovieInput{}, err
	}
	duration, err := optInt("duration", c.FormValue("duration"))
	if err != nil {
		return models.MovieInput{}, err
	}
	return models.MovieInput{
		Title:       strings.TrimSpace(c.FormValue("title")),
		ReleaseYear: year,
		Duration:    duration,
		Genre:       optString(c.FormValue("genre")),
		Synopsis:    optString(c.FormValue("synopsis")),
		Country:     optString(c.FormValue("country")),
		Language:    optString(c.FormValue("language")),
		ActorIDs:    formInts(c, "actor_ids"),
		DirectorIDs: formInts(c, "director_ids"),
	}, nil
}

// SaveMovie creates a movie, or updates it when the route carries an id.
// A chosen cover is uploaded afterwards as a separate request.
func (h *Handler) SaveMovie(c fiber.Ctx) error {
	form := service.EntityForm[models.MovieInput]{}
	if c.Params("id") != "" {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		form.ID = id
	}

	in, err := parseMovieInput(c)
	form.Draft = in
	if err != nil {
		return h.renderMovieForm(c, fiber.StatusUnprocessableEntity, movieFormData{Form: form}, err.Error())
	}

	cover, closer, err := formUpload(c, "cover")
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	movie, err := h.catalog.SaveMovie(c.Context(), middleware.AdminToken(c), form, cover)
	if err != nil {
		if movie != nil {
			setFlash(c, flashError, userMessage(err))
			return redirect(c, fmt.Sprintf("/admin/movies/%d/edit", movie.MovieID))
		}
		return h.renderMovieForm(c, formStatus(err), movieFormData{Form: form}, userMessage(err))
	}

	setFlash(c, flashNotice, fmt.Sprintf("Saved %q.", movie.Title))
	return redirect(c, "/admin/movies")
}

func (h *Handler) DeleteMovie(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteMovie(c.Context(), middleware.AdminToken(c), id); err != nil {
		setFlash(c, flashError, userMessage(err))
		return redirect(c, "/admin/movies")
	}
	setFlash(c, flashNotice, "Movie deleted.")
	return redirect(c, "/admin/movies")
}

// UploadMovieCover replaces the cover of a saved movie.
func (h *Handler) UploadMovieCover(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	back := fmt.Sprintf("/admin/movies/%d/edit", id)

	file, closer, err := formUpload(c, "cover")
	if err != nil {
		return err
	}
	if file == nil {
		setFlash(c, flashError, "Choose an image to upload.")
		return redirect(c, back)
	}
	defer closer.Close()

	if _, err := service.Upload(c.Context(), middleware.AdminToken(c), id, *file, h.api.UploadMovieCover); err != nil {
		setFlash(c, flashError, userMessage(err))
		return redirect(c, back)
	}
	setFlash(c, flashNotice, "Cover updated.")
	return redirect(c, back)
}
