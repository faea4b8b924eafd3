package movieapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"movie-web/internal/models"
)

func movieQuery(q models.MovieQuery) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Genre != "" {
		v.Set("genre", q.Genre)
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.Year != nil {
		v.Set("year", strconv.Itoa(*q.Year))
	}
	if q.MinRating != nil {
		v.Set("min_rating", strconv.FormatFloat(*q.MinRating, 'f', -1, 64))
	}
	return v
}

// ListMovies returns movies matching the query.
func (c *Client) ListMovies(ctx context.Context, q models.MovieQuery) ([]models.Movie, error) {
	movies := make([]models.Movie, 0)
	err := c.do(ctx, request{
		op:     "fetch movies",
		method: http.MethodGet,
		path:   "/movies/",
		query:  movieQuery(q),
	}, &movies)
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie returns one movie.
func (c *Client) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	var movie models.Movie
	err := c.do(ctx, request{
		op:     "fetch movie",
		method: http.MethodGet,
		path:   fmt.Sprintf("/movies/%d", id),
	}, &movie)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// ListGenres returns the distinct genres present in the catalog.
func (c *Client) ListGenres(ctx context.Context) ([]string, error) {
	genres := make([]string, 0)
	err := c.do(ctx, request{
		op:     "fetch genres",
		method: http.MethodGet,
		path:   "/movies/genres/",
	}, &genres)
	if err != nil {
		return nil, err
	}
	return genres, nil
}

// CreateMovie adds a movie. Requires an admin token.
func (c *Client) CreateMovie(ctx context.Context, token string, in models.MovieInput) (*models.Movie, error) {
	var movie models.Movie
	err := c.do(ctx, request{
		op:     "create movie",
		method: http.MethodPost,
		path:   "/movies/",
		token:  token,
		auth:   true,
		json:   in,
	}, &movie)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// UpdateMovie replaces the editable fields of a movie.
func (c *Client) UpdateMovie(ctx context.Context, token string, id int, in models.MovieInput) (*models.Movie, error) {
	var movie models.Movie
	err := c.do(ctx, request{
		op:     "update movie",
		method: http.MethodPut,
		path:   fmt.Sprintf("/movies/%d", id),
		token:  token,
		auth:   true,
		json:   in,
	}, &movie)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// DeleteMovie removes a movie.
func (c *Client) DeleteMovie(ctx context.Context, token string, id int) error {
	return c.do(ctx, request{
		op:     "delete movie",
		method: http.MethodDelete,
		path:   fmt.Sprintf("/movies/%d", id),
		token:  token,
		auth:   true,
	}, nil)
}

// UploadMovieCover replaces the cover image and returns the updated movie.
func (c *Client) UploadMovieCover(ctx context.Context, token string, id int, file Upload) (*models.Movie, error) {
	var movie models.Movie
	err := c.do(ctx, request{
		op:     "upload cover",
		method: http.MethodPost,
		path:   fmt.Sprintf("/movies/%d/cover", id),
		token:  token,
		auth:   true,
		upload: &file,
	}, &movie)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}
