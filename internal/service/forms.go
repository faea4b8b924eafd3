// Package service holds the page-level workflows on top of the movie API client:
// entity form submission, uploads, and the concurrent fetches behind each page.
package service

import (
	"context"
	"fmt"

	"movie-web/internal/models"
	"movie-web/internal/movieapi"
)

// ErrMissingToken is returned when a form is submitted without a session.
// It is movieapi.ErrNotAuthenticated, so movieapi.Kind classifies it.
var ErrMissingToken = movieapi.ErrNotAuthenticated

// EntityForm is the editable draft behind a create or edit form.
type EntityForm[In any] struct {
	// ID is the entity being edited, or 0 when creating.
	ID    int
	Draft In
}

// Editing reports whether submitting updates an existing entity.
func (f EntityForm[In]) Editing() bool {
	return f.ID != 0
}

type (
	CreateFunc[In, Out any] func(ctx context.Context, token string, in In) (*Out, error)
	UpdateFunc[In, Out any] func(ctx context.Context, token string, id int, in In) (*Out, error)
	UploadFunc[Out any]     func(ctx context.Context, token string, id int, file movieapi.Upload) (*Out, error)
)

// Submit validates the draft and creates or updates the entity.
// Without a token it fails before validating or touching the network.
func Submit[In, Out any](ctx context.Context, token string, form EntityForm[In], create CreateFunc[In, Out], update UpdateFunc[In, Out]) (*Out, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if err := Validate(form.Draft); err != nil {
		return nil, err
	}
	if form.Editing() {
		return update(ctx, token, form.ID, form.Draft)
	}
	return create(ctx, token, form.Draft)
}

// Upload sends a file for an existing entity. It is always its own round trip.
func Upload[Out any](ctx context.Context, token string, id int, file movieapi.Upload, upload UploadFunc[Out]) (*Out, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if id == 0 {
		return nil, fmt.Errorf("cannot upload before the entity is saved")
	}
	return upload(ctx, token, id, file)
}

func stringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func intPtr(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

// MovieDraft seeds a movie form from m, or returns a blank form when m is nil.
func MovieDraft(m *models.Movie) EntityForm[models.MovieInput] {
	if m == nil {
		return EntityForm[models.MovieInput]{}
	}
	in := models.MovieInput{
		Title:       m.Title,
		ReleaseYear: intPtr(m.ReleaseYear),
		Genre:       stringPtr(m.Genre),
		Synopsis:    stringPtr(m.Synopsis),
		Country:     stringPtr(m.Country),
		Language:    stringPtr(m.Language),
		Duration:    intPtr(m.Duration),
	}
	for _, a := range m.Actors {
		in.ActorIDs = append(in.ActorIDs, a.ActorID)
	}
	for _, d := range m.Directors {
		in.DirectorIDs = append(in.DirectorIDs, d.DirectorID)
	}
	return EntityForm[models.MovieInput]{ID: m.MovieID, Draft: in}
}

func ActorDraft(a *models.Actor) EntityForm[models.PersonInput] {
	if a == nil {
		return EntityForm[models.PersonInput]{}
	}
	return EntityForm[models.PersonInput]{ID: a.ActorID, Draft: models.PersonInput{
		Name:        a.Name,
		Gender:      stringPtr(a.Gender),
		BirthDate:   stringPtr(a.BirthDate),
		Nationality: stringPtr(a.Nationality),
	}}
}

func DirectorDraft(d *models.Director) EntityForm[models.PersonInput] {
	if d == nil {
		return EntityForm[models.PersonInput]{}
	}
	return EntityForm[models.PersonInput]{ID: d.DirectorID, Draft: models.PersonInput{
		Name:        d.Name,
		Gender:      stringPtr(d.Gender),
		BirthDate:   stringPtr(d.BirthDate),
		Nationality: stringPtr(d.Nationality),
	}}
}
