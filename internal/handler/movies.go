package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-web/internal/middleware"
	"movie-web/internal/models"
	"movie-web/internal/service"
)

type homeData struct {
	service.HomePage
	Query models.MovieQuery
	// YearText and MinRatingText echo the raw filter inputs back into the form.
	YearText      string
	MinRatingText string
}

// Home renders the filtered movie listing.
func (h *Handler) Home(c fiber.Ctx) error {
	q := models.MovieQuery{
		Search: c.Query("search"),
		Genre:  c.Query("genre"),
		SortBy: c.Query("sort_by"),
	}
	// Unparsable or non-positive numbers leave the filter unset.
	if year := fiber.Query(c, "year", 0); year > 0 {
		q.Year = &year
	}
	if minRating := fiber.Query(c, "min_rating", 0.0); minRating > 0 {
		q.MinRating = &minRating
	}
	switch q.SortBy {
	case "", models.SortRatingDesc, models.SortReleaseYearDesc:
	default:
		q.SortBy = ""
	}

	data := homeData{
		HomePage:      h.pages.Home(c.Context(), q),
		Query:         q,
		YearText:      c.Query("year"),
		MinRatingText: c.Query("min_rating"),
	}
	return h.views.Render(c, fiber.StatusOK, "home", h.view(c, "Movies", data))
}

// MovieDetail renders a movie with its comments and the rating and comment forms.
func (h *Handler) MovieDetail(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	page := h.pages.MovieDetail(c.Context(), id)
	if page.NotFound {
		return fiber.NewError(fiber.StatusNotFound, "Movie not found.")
	}

	title := "Movie"
	if page.Movie != nil {
		title = page.Movie.Title
	}
	return h.views.Render(c, fiber.StatusOK, "movie", h.view(c, title, page))
}

func movieURL(id int) string {
	return fmt.Sprintf("/movies/%d", id)
}

// PostComment adds the visitor's comment. Anonymous visitors are told to log in
// and no API call is made.
func (h *Handler) PostComment(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	token := middleware.CurrentSession(c).Token()

	in := models.CommentInput{Content: c.FormValue("content")}
	if token != "" {
		if err := service.Validate(in); err != nil {
			setFlash(c, flashError, userMessage(err))
			return redirect(c, movieURL(id))
		}
	}

	if _, err := h.api.PostComment(c.Context(), token, id, in.Content); err != nil {
		setFlash(c, flashError, userMessage(err))
		return redirect(c, movieURL(id))
	}
	setFlash(c, flashNotice, "Comment posted.")
	return redirect(c, movieURL(id))
}

// DeleteComment removes one of the visitor's own comments.
func (h *Handler) DeleteComment(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	back := "/"
	if movieID, err := strconv.Atoi(c.FormValue("movie_id")); err == nil && movieID > 0 {
		back = movieURL(movieID)
	}

	token := middleware.CurrentSession(c).Token()
	if err := h.api.DeleteComment(c.Context(), token, id); err != nil {
		setFlash(c, flashError, userMessage(err))
		return redirect(c, back)
	}
	setFlash(c, flashNotice, "Comment deleted.")
	return redirect(c, back)
}

// PostRating records the visitor's score for the movie.
func (h *Handler) PostRating(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	token := middleware.CurrentSession(c).Token()

	score, _ := strconv.Atoi(c.FormValue("score"))
	if token != "" {
		if err := service.Validate(models.RatingInput{Score: score}); err != nil {
			setFlash(c, flashError, userMessage(err))
			return redirect(c, movieURL(id))
		}
	}

	if _, err := h.api.PostRating(c.Context(), token, id, score); err != nil {
		setFlash(c, flashError, userMessage(err))
		return redirect(c, movieURL(id))
	}
	setFlash(c, flashNotice, fmt.Sprintf("You rated this movie %d/10.", score))
	return redirect(c, movieURL(id))
}

// DeleteRating withdraws the visitor's score.
func (h *Handler) DeleteRating(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	token := middleware.CurrentSession(c).Token()
	if err := h.api.DeleteRating(c.Context(), token, id); err != nil {
		setFlash(c, flashError, userMessage(err))
		return redirect(c, movieURL(id))
	}
	setFlash(c, flashNotice, "Your rating was removed.")
	return redirect(c, movieURL(id))
}
