package movieapi

import (
	"context"
	"fmt"
	"net/http"

	"movie-web/internal/models"
)

// Actors and directors share one REST shape; only the collection differs.
type collection struct {
	path string
	noun string
}

var (
	actorsCollection    = collection{path: "/actors", noun: "actor"}
	directorsCollection = collection{path: "/directors", noun: "director"}
)

func listPeople[T any](ctx context.Context, c *Client, col collection) ([]T, error) {
	out := make([]T, 0)
	err := c.do(ctx, request{
		op:     "fetch " + col.noun + "s",
		method: http.MethodGet,
		path:   col.path + "/",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func getPerson[T any](ctx context.Context, c *Client, col collection, id int) (*T, error) {
	var out T
	err := c.do(ctx, request{
		op:     "fetch " + col.noun,
		method: http.MethodGet,
		path:   fmt.Sprintf("%s/%d", col.path, id),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func createPerson[T any](ctx context.Context, c *Client, col collection, token string, in models.PersonInput) (*T, error) {
	var out T
	err := c.do(ctx, request{
		op:     "create " + col.noun,
		method: http.MethodPost,
		path:   col.path + "/",
		token:  token,
		auth:   true,
		json:   in,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func updatePerson[T any](ctx context.Context, c *Client, col collection, token string, id int, in models.PersonInput) (*T, error) {
	var out T
	err := c.do(ctx, request{
		op:     "update " + col.noun,
		method: http.MethodPut,
		path:   fmt.Sprintf("%s/%d", col.path, id),
		token:  token,
		auth:   true,
		json:   in,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func deletePerson(ctx context.Context, c *Client, col collection, token string, id int) error {
	return c.do(ctx, request{
		op:     "delete " + col.noun,
		method: http.MethodDelete,
		path:   fmt.Sprintf("%s/%d", col.path, id),
		token:  token,
		auth:   true,
	}, nil)
}

func uploadPersonPhoto[T any](ctx context.Context, c *Client, col collection, token string, id int, file Upload) (*T, error) {
	var out T
	err := c.do(ctx, request{
		op:     "upload photo",
		method: http.MethodPost,
		path:   fmt.Sprintf("%s/%d/photo", col.path, id),
		token:  token,
		auth:   true,
		upload: &file,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListActors returns all actors.
func (c *Client) ListActors(ctx context.Context) ([]models.Actor, error) {
	return listPeople[models.Actor](ctx, c, actorsCollection)
}

// GetActor fetches one actor.
func (c *Client) GetActor(ctx context.Context, id int) (*models.Actor, error) {
	return getPerson[models.Actor](ctx, c, actorsCollection, id)
}

// CreateActor adds an actor. Requires an admin token.
func (c *Client) CreateActor(ctx context.Context, token string, in models.PersonInput) (*models.Actor, error) {
	return createPerson[models.Actor](ctx, c, actorsCollection, token, in)
}

// UpdateActor replaces the editable fields of an actor.
func (c *Client) UpdateActor(ctx context.Context, token string, id int, in models.PersonInput) (*models.Actor, error) {
	return updatePerson[models.Actor](ctx, c, actorsCollection, token, id, in)
}

// DeleteActor removes an actor.
func (c *Client) DeleteActor(ctx context.Context, token string, id int) error {
	return deletePerson(ctx, c, actorsCollection, token, id)
}

// UploadActorPhoto replaces an actor's photo.
func (c *Client) UploadActorPhoto(ctx context.Context, token string, id int, file Upload) (*models.Actor, error) {
	return uploadPersonPhoto[models.Actor](ctx, c, actorsCollection, token, id, file)
}

// ListDirectors returns all directors.
func (c *Client) ListDirectors(ctx context.Context) ([]models.Director, error) {
	return listPeople[models.Director](ctx, c, directorsCollection)
}

// GetDirector fetches one director.
func (c *Client) GetDirector(ctx context.Context, id int) (*models.Director, error) {
	return getPerson[models.Director](ctx, c, directorsCollection, id)
}

// CreateDirector adds a director. Requires an admin token.
func (c *Client) CreateDirector(ctx context.Context, token string, in models.PersonInput) (*models.Director, error) {
	return createPerson[models.Director](ctx, c, directorsCollection, token, in)
}

// UpdateDirector replaces the editable fields of a director.
func (c *Client) UpdateDirector(ctx context.Context, token string, id int, in models.PersonInput) (*models.Director, error) {
	return updatePerson[models.Director](ctx, c, directorsCollection, token, id, in)
}

// DeleteDirector removes a director.
func (c *Client) DeleteDirector(ctx context.Context, token string, id int) error {
	return deletePerson(ctx, c, directorsCollection, token, id)
}

// UploadDirectorPhoto replaces a director's photo.
func (c *Client) UploadDirectorPhoto(ctx context.Context, token string, id int, file Upload) (*models.Director, error) {
	return uploadPersonPhoto[models.Director](ctx, c, directorsCollection, token, id, file)
}
