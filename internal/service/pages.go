package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"movie-web/internal/models"
	"movie-web/internal/movieapi"
)

// Messages shown when a page's initial fetch fails.
const (
	MsgMoviesUnavailable = "Failed to load movies. Please try again later."
	MsgMovieUnavailable  = "Failed to load this movie. Please try again later."
)

// PagesService gathers the data each public page needs.
type PagesService struct {
	api *movieapi.Client
}

func NewPagesService(api *movieapi.Client) *PagesService {
	return &PagesService{api: api}
}

// HomePage is the data behind the movie listing.
type HomePage struct {
	Movies []models.Movie
	Genres []string
	// Error is a static failure message; Movies is empty when set.
	Error string
}

// Home fetches the filtered listing and the genre list concurrently.
// A genre failure only empties the genre select.
func (s *PagesService) Home(ctx context.Context, q models.MovieQuery) HomePage {
	var (
		page                 HomePage
		moviesErr, genresErr error
		g                    errgroup.Group
	)
	g.Go(func() error {
		page.Movies, moviesErr = s.api.ListMovies(ctx, q)
		return nil
	})
	g.Go(func() error {
		page.Genres, genresErr = s.api.ListGenres(ctx)
		return nil
	})
	_ = g.Wait()

	if genresErr != nil {
		slog.Warn("failed to fetch genres", "error", genresErr)
		page.Genres = nil
	}
	if moviesErr != nil {
		slog.Error("failed to fetch movies", "error", moviesErr)
		page.Movies = nil
		page.Error = MsgMoviesUnavailable
	}
	return page
}

// DetailPage is the data behind a movie's detail page.
type DetailPage struct {
	Movie    *models.Movie
	Comments []models.Comment
	NotFound bool
	Error    string
}

// MovieDetail fetches a movie and its comments concurrently.
// Comment failures degrade to an empty list.
func (s *PagesService) MovieDetail(ctx context.Context, id int) DetailPage {
	var (
		page                  DetailPage
		movieErr, commentsErr error
		g                     errgroup.Group
	)
	g.Go(func() error {
		page.Movie, movieErr = s.api.GetMovie(ctx, id)
		return nil
	})
	g.Go(func() error {
		page.Comments, commentsErr = s.api.ListComments(ctx, id)
		return nil
	})
	_ = g.Wait()

	if commentsErr != nil {
		slog.Warn("failed to fetch comments", "movie_id", id, "error", commentsErr)
		page.Comments = []models.Comment{}
	}
	switch {
	case movieErr == nil:
	case movieapi.IsNotFound(movieErr):
		page.Movie = nil
		page.NotFound = true
	default:
		slog.Error("failed to fetch movie", "movie_id", id, "error", movieErr)
		page.Movie = nil
		page.Error = MsgMovieUnavailable
	}
	return page
}
