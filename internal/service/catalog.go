package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"movie-web/internal/models"
	"movie-web/internal/movieapi"
)

// CatalogService runs the admin panel's create, edit, upload and delete flows.
type CatalogService struct {
	api *movieapi.Client
}

func NewCatalogService(api *movieapi.Client) *CatalogService {
	return &CatalogService{api: api}
}

// SaveMovie submits the movie form, then uploads cover if one was given.
// When only the upload fails, the saved movie is returned along with the error.
func (s *CatalogService) SaveMovie(ctx context.Context, token string, form EntityForm[models.MovieInput], cover *movieapi.Upload) (*models.Movie, error) {
	movie, err := Submit(ctx, token, form, s.api.CreateMovie, s.api.UpdateMovie)
	if err != nil || cover == nil {
		return movie, err
	}
	updated, err := Upload(ctx, token, movie.MovieID, *cover, s.api.UploadMovieCover)
	if err != nil {
		return movie, fmt.Errorf("movie saved but cover upload failed: %w", err)
	}
	return updated, nil
}

func (s *CatalogService) SaveActor(ctx context.Context, token string, form EntityForm[models.PersonInput], photo *movieapi.Upload) (*models.Actor, error) {
	actor, err := Submit(ctx, token, form, s.api.CreateActor, s.api.UpdateActor)
	if err != nil || photo == nil {
		return actor, err
	}
	updated, err := Upload(ctx, token, actor.ActorID, *photo, s.api.UploadActorPhoto)
	if err != nil {
		return actor, fmt.Errorf("actor saved but photo upload failed: %w", err)
	}
	return updated, nil
}

func (s *CatalogService) SaveDirector(ctx context.Context, token string, form EntityForm[models.PersonInput], photo *movieapi.Upload) (*models.Director, error) {
	director, err := Submit(ctx, token, form, s.api.CreateDirector, s.api.UpdateDirector)
	if err != nil || photo == nil {
		return director, err
	}
	updated, err := Upload(ctx, token, director.DirectorID, *photo, s.api.UploadDirectorPhoto)
	if err != nil {
		return director, fmt.Errorf("director saved but photo upload failed: %w", err)
	}
	return updated, nil
}

func (s *CatalogService) DeleteMovie(ctx context.Context, token string, id int) error {
	return s.api.DeleteMovie(ctx, token, id)
}

func (s *CatalogService) DeleteActor(ctx context.Context, token string, id int) error {
	return s.api.DeleteActor(ctx, token, id)
}

func (s *CatalogService) DeleteDirector(ctx context.Context, token string, id int) error {
	return s.api.DeleteDirector(ctx, token, id)
}

// FormOptions are the choices offered by the movie form's cast and crew pickers.
type FormOptions struct {
	Actors    []models.Actor
	Directors []models.Director
}

// MovieFormOptions fetches actors and directors concurrently.
func (s *CatalogService) MovieFormOptions(ctx context.Context) (*FormOptions, error) {
	var opts FormOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		actors, err := s.api.ListActors(gctx)
		opts.Actors = actors
		return err
	})
	g.Go(func() error {
		directors, err := s.api.ListDirectors(gctx)
		opts.Directors = directors
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &opts, nil
}
