package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-web/internal/apitest"
	"movie-web/internal/models"
	"movie-web/internal/movieapi"
)

func ptr[T any](v T) *T { return &v }

func TestSubmit_RequiresToken(t *testing.T) {
	called := false
	create := func(context.Context, string, models.MovieInput) (*models.Movie, error) {
		called = true
		return &models.Movie{}, nil
	}
	update := func(context.Context, string, int, models.MovieInput) (*models.Movie, error) {
		called = true
		return &models.Movie{}, nil
	}

	_, err := Submit(context.Background(), "", MovieDraft(nil), create, update)
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.Equal(t, movieapi.KindUnauthenticated, movieapi.Kind(err))
	assert.False(t, called)
}

func TestSubmit_Validation(t *testing.T) {
	create := func(context.Context, string, models.PersonInput) (*models.Actor, error) {
		t.Fatal("create must not be called for an invalid draft")
		return nil, nil
	}
	form := EntityForm[models.PersonInput]{Draft: models.PersonInput{BirthDate: ptr("15/09/1977")}}

	_, err := Submit(context.Background(), "tok", form, create, nil)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Messages, "name is required")
	assert.Contains(t, ve.Error(), "birthdate must be a date (YYYY-MM-DD)")
}

func TestSubmit_CreateOrUpdate(t *testing.T) {
	var created, updated int
	create := func(_ context.Context, _ string, in models.MovieInput) (*models.Movie, error) {
		created++
		return &models.Movie{MovieID: 1, Title: in.Title}, nil
	}
	update := func(_ context.Context, _ string, id int, in models.MovieInput) (*models.Movie, error) {
		updated++
		return &models.Movie{MovieID: id, Title: in.Title}, nil
	}
	ctx := context.Background()

	m, err := Submit(ctx, "tok", EntityForm[models.MovieInput]{Draft: models.MovieInput{Title: "Heat"}}, create, update)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	form := MovieDraft(m)
	assert.True(t, form.Editing())
	form.Draft.Title = "Heat (1995)"
	m, err = Submit(ctx, "tok", form, create, update)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, "Heat (1995)", m.Title)
}

func TestMovieDraft(t *testing.T) {
	m := &models.Movie{
		MovieID:     4,
		Title:       "Inception",
		ReleaseYear: ptr(2010),
		Genre:       ptr("Sci-Fi"),
		Actors:      []models.Actor{{ActorID: 7}, {ActorID: 9}},
		Directors:   []models.Director{{DirectorID: 3}},
	}
	form := MovieDraft(m)
	assert.Equal(t, 4, form.ID)
	assert.Equal(t, []int{7, 9}, form.Draft.ActorIDs)
	assert.Equal(t, []int{3}, form.Draft.DirectorIDs)

	*form.Draft.Genre = "Thriller"
	assert.Equal(t, "Sci-Fi", *m.Genre, "draft must not alias the initial entity")

	assert.False(t, MovieDraft(nil).Editing())
	assert.Equal(t, 0, ActorDraft(nil).ID)
	assert.Equal(t, "Nolan", DirectorDraft(&models.Director{DirectorID: 2, Name: "Nolan"}).Draft.Name)
}

func TestUpload(t *testing.T) {
	up := func(_ context.Context, _ string, id int, f movieapi.Upload) (*models.Actor, error) {
		return &models.Actor{ActorID: id, PhotoURL: ptr("/static/" + f.Filename)}, nil
	}
	ctx := context.Background()
	file := movieapi.Upload{Filename: "a.png", Content: strings.NewReader("x")}

	_, err := Upload(ctx, "", 1, file, up)
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = Upload(ctx, "tok", 0, file, up)
	assert.Error(t, err)

	a, err := Upload(ctx, "tok", 5, file, up)
	require.NoError(t, err)
	assert.Equal(t, "/static/a.png", a.Photo())
}

func TestCatalogService(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("root", "root@example.com", "secret1", models.RoleAdmin)
	token := api.TokenFor("root@example.com")
	actor := api.AddActor("Al Pacino")
	director := api.AddDirector("Michael Mann")
	svc := NewCatalogService(api.APIClient())
	ctx := context.Background()

	opts, err := svc.MovieFormOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, opts.Actors, 1)
	assert.Len(t, opts.Directors, 1)

	form := MovieDraft(nil)
	form.Draft = models.MovieInput{Title: "Inception", ReleaseYear: ptr(2010)}
	movie, err := svc.SaveMovie(ctx, token, form, nil)
	require.NoError(t, err)
	assert.Equal(t, "Inception", movie.Title)

	form = MovieDraft(movie)
	form.Draft.ActorIDs = []int{actor.ActorID}
	form.Draft.DirectorIDs = []int{director.DirectorID}
	movie, err = svc.SaveMovie(ctx, token, form, &movieapi.Upload{Filename: "cover.jpg", Content: strings.NewReader("jpg")})
	require.NoError(t, err)
	assert.NotEmpty(t, movie.Cover())
	require.Len(t, movie.Actors, 1)
	assert.Equal(t, "Al Pacino", movie.Actors[0].Name)

	a, err := svc.SaveActor(ctx, token, ActorDraft(&actor), &movieapi.Upload{Filename: "al.jpg", Content: strings.NewReader("jpg")})
	require.NoError(t, err)
	assert.NotEmpty(t, a.Photo())

	d, err := svc.SaveDirector(ctx, token, EntityForm[models.PersonInput]{Draft: models.PersonInput{Name: "Sofia Coppola"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Sofia Coppola", d.Name)

	require.NoError(t, svc.DeleteMovie(ctx, token, movie.MovieID))
	require.NoError(t, svc.DeleteActor(ctx, token, a.ActorID))
	require.NoError(t, svc.DeleteDirector(ctx, token, d.DirectorID))
}

func TestCatalogService_UploadFailureKeepsSavedEntity(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("root", "root@example.com", "secret1", models.RoleAdmin)
	token := api.TokenFor("root@example.com")
	svc := NewCatalogService(api.APIClient())

	d, err := svc.SaveDirector(context.Background(), token,
		EntityForm[models.PersonInput]{Draft: models.PersonInput{Name: "Greta Gerwig"}},
		&movieapi.Upload{Filename: "greta.jpg", Content: strings.NewReader("")})
	require.Error(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Greta Gerwig", d.Name)
	assert.Contains(t, err.Error(), "photo upload failed")
}
