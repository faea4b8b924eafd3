package movieapi_test

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

func TestLogin(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("alice", "alice@example.com", "secret1", models.RoleAdmin)
	client := api.APIClient()
	ctx := context.Background()

	tok, err := client.Login(ctx, models.Credentials{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok.AccessToken)

	me, err := client.CurrentUser(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, models.RoleAdmin, me.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("alice", "alice@example.com", "secret1", models.RoleUser)

	_, err := api.APIClient().Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, movieapi.KindHTTP, movieapi.Kind(err))
	assert.Equal(t, 401, movieapi.StatusCode(err))
	assert.Equal(t, "incorrect email or password", err.Error())
}

func TestRegister_Duplicate(t *testing.T) {
	api := apitest.New(t)
	client := api.APIClient()
	ctx := context.Background()

	in := models.Registration{Username: "bob", Email: "bob@example.com", Password: "secret1"}
	u, err := client.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)

	_, err = client.Register(ctx, in)
	require.Error(t, err)
	assert.Equal(t, "email already registered", err.Error())
}

func TestAuthenticatedCall_WithoutToken(t *testing.T) {
	api := apitest.New(t)
	client := api.APIClient()
	ctx := context.Background()

	before := api.Requests()

	_, err := client.PostComment(ctx, "", 1, "great")
	assert.ErrorIs(t, err, movieapi.ErrNotAuthenticated)
	_, err = client.CreateMovie(ctx, "", models.MovieInput{Title: "x"})
	assert.ErrorIs(t, err, movieapi.ErrNotAuthenticated)
	_, err = client.CurrentUser(ctx, "")
	assert.Equal(t, movieapi.KindUnauthenticated, movieapi.Kind(err))
	assert.Equal(t, "please log in first", err.Error())

	assert.Equal(t, before, api.Requests())
}

func TestNetworkError(t *testing.T) {
	api := apitest.New(t)
	client := api.APIClient()
	api.Close()

	_, err := client.ListMovies(context.Background(), models.MovieQuery{})
	require.Error(t, err)
	assert.Equal(t, movieapi.KindNetwork, movieapi.Kind(err))
	assert.Equal(t, "could not reach the movie service", err.Error())

	var ne *movieapi.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "fetch movies", ne.Op)
	assert.NotNil(t, ne.Unwrap())
}

func TestMovieLifecycle(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("root", "root@example.com", "secret1", models.RoleAdmin)
	token := api.TokenFor("root@example.com")
	client := api.APIClient()
	ctx := context.Background()

	other := api.AddMovie(models.Movie{Title: "Memento"})

	created, err := client.CreateMovie(ctx, token, models.MovieInput{Title: "Inception", ReleaseYear: ptr(2010)})
	require.NoError(t, err)
	assert.Equal(t, "Inception", created.Title)
	require.NotNil(t, created.ReleaseYear)
	assert.Equal(t, 2010, *created.ReleaseYear)

	got, err := client.GetMovie(ctx, created.MovieID)
	require.NoError(t, err)
	assert.Equal(t, "Inception", got.Title)

	updated, err := client.UpdateMovie(ctx, token, created.MovieID, models.MovieInput{Title: "Inception (2010)"})
	require.NoError(t, err)
	assert.Equal(t, "Inception (2010)", updated.Title)

	require.NoError(t, client.DeleteMovie(ctx, token, created.MovieID))

	movies, err := client.ListMovies(ctx, models.MovieQuery{})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, other.MovieID, movies[0].MovieID)

	_, err = client.GetMovie(ctx, created.MovieID)
	assert.True(t, movieapi.IsNotFound(err))
}

func TestCreateMovie_NonAdmin(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("carol", "carol@example.com", "secret1", models.RoleUser)

	_, err := api.APIClient().CreateMovie(context.Background(), api.TokenFor("carol@example.com"), models.MovieInput{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, 403, movieapi.StatusCode(err))
}

func TestListMovies_Filters(t *testing.T) {
	api := apitest.New(t)
	api.AddMovie(models.Movie{Title: "Alien", ReleaseYear: ptr(1979), Genre: ptr("Horror"), AverageRating: 8.5})
	api.AddMovie(models.Movie{Title: "Aliens", ReleaseYear: ptr(1986), Genre: ptr("Action"), AverageRating: 8.4})
	api.AddMovie(models.Movie{Title: "Heat", ReleaseYear: ptr(1995), Genre: ptr("Action"), AverageRating: 8.3})
	client := api.APIClient()
	ctx := context.Background()

	movies, err := client.ListMovies(ctx, models.MovieQuery{Search: "alien", SortBy: models.SortReleaseYearDesc})
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Aliens", movies[0].Title)

	movies, err = client.ListMovies(ctx, models.MovieQuery{Genre: "Action", MinRating: ptr(8.35)})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Aliens", movies[0].Title)

	genres, err := client.ListGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Horror"}, genres)
}

func TestPeople(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("root", "root@example.com", "secret1", models.RoleAdmin)
	token := api.TokenFor("root@example.com")
	client := api.APIClient()
	ctx := context.Background()

	actor, err := client.CreateActor(ctx, token, models.PersonInput{Name: "Tom Hardy", BirthDate: ptr("1977-09-15")})
	require.NoError(t, err)
	assert.Equal(t, "Tom Hardy", actor.Name)

	director, err := client.CreateDirector(ctx, token, models.PersonInput{Name: "Christopher Nolan"})
	require.NoError(t, err)

	actor, err = client.UploadActorPhoto(ctx, token, actor.ActorID, movieapi.Upload{Filename: "tom.jpg", Content: strings.NewReader("jpeg")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(actor.Photo(), "/static/images/actors/"))

	director, err = client.UpdateDirector(ctx, token, director.DirectorID, models.PersonInput{Name: "C. Nolan"})
	require.NoError(t, err)
	assert.Equal(t, "C. Nolan", director.Name)

	gotActor, err := client.GetActor(ctx, actor.ActorID)
	require.NoError(t, err)
	assert.Equal(t, "Tom Hardy", gotActor.Name)
	assert.Equal(t, actor.Photo(), gotActor.Photo())

	gotDirector, err := client.GetDirector(ctx, director.DirectorID)
	require.NoError(t, err)
	assert.Equal(t, "C. Nolan", gotDirector.Name)

	_, err = client.GetDirector(ctx, 999)
	assert.True(t, movieapi.IsNotFound(err))

	require.NoError(t, client.DeleteActor(ctx, token, actor.ActorID))
	actors, err := client.ListActors(ctx)
	require.NoError(t, err)
	assert.Empty(t, actors)

	directors, err := client.ListDirectors(ctx)
	require.NoError(t, err)
	assert.Len(t, directors, 1)
}

func TestCommentsAndRatings(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("dave", "dave@example.com", "secret1", models.RoleUser)
	api.AddUser("erin", "erin@example.com", "secret1", models.RoleUser)
	dave, erin := api.TokenFor("dave@example.com"), api.TokenFor("erin@example.com")
	movie := api.AddMovie(models.Movie{Title: "Heat"})
	client := api.APIClient()
	ctx := context.Background()

	c, err := client.PostComment(ctx, dave, movie.MovieID, "classic")
	require.NoError(t, err)
	assert.Equal(t, "dave", c.AuthorName())

	_, err = client.UpdateComment(ctx, erin, c.CommentID, "hijack")
	assert.Equal(t, 403, movieapi.StatusCode(err))

	c, err = client.UpdateComment(ctx, dave, c.CommentID, "a classic")
	require.NoError(t, err)
	assert.Equal(t, "a classic", c.Content)

	comments, err := client.ListComments(ctx, movie.MovieID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	_, err = client.PostRating(ctx, dave, movie.MovieID, 8)
	require.NoError(t, err)
	_, err = client.PostRating(ctx, erin, movie.MovieID, 6)
	require.NoError(t, err)
	_, err = client.PostRating(ctx, dave, movie.MovieID, 10)
	require.NoError(t, err)

	got, err := client.GetMovie(ctx, movie.MovieID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.RatingCount)
	assert.InDelta(t, 8.0, got.AverageRating, 0.001)

	require.NoError(t, client.DeleteRating(ctx, dave, movie.MovieID))
	require.NoError(t, client.DeleteRating(ctx, dave, movie.MovieID))
	got, err = client.GetMovie(ctx, movie.MovieID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RatingCount)

	require.NoError(t, client.DeleteComment(ctx, dave, c.CommentID))
	comments, err = client.ListComments(ctx, movie.MovieID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestProfile(t *testing.T) {
	api := apitest.New(t)
	api.AddUser("frank", "frank@example.com", "secret1", models.RoleUser)
	token := api.TokenFor("frank@example.com")
	client := api.APIClient()
	ctx := context.Background()

	before, err := client.CurrentUser(ctx, token)
	require.NoError(t, err)

	after, err := client.UploadAvatar(ctx, token, movieapi.Upload{Filename: "me.png", Content: strings.NewReader("png")})
	require.NoError(t, err)
	assert.NotEqual(t, before.Avatar(), after.Avatar())
	assert.NotEqual(t, client.AssetURL(before.Avatar()), client.AssetURL(after.Avatar()))
	assert.True(t, strings.HasPrefix(client.AssetURL(after.Avatar()), api.URL()+"/static/images/avatars/"))

	u, err := client.UpdateCurrentUser(ctx, token, models.ProfileUpdate{Username: ptr("franky")})
	require.NoError(t, err)
	assert.Equal(t, "franky", u.Username)
	assert.Equal(t, "frank@example.com", u.Email)

	err = client.ChangePassword(ctx, token, models.PasswordChange{CurrentPassword: "wrong", NewPassword: "secret2"})
	assert.Equal(t, 400, movieapi.StatusCode(err))
	require.NoError(t, client.ChangePassword(ctx, token, models.PasswordChange{CurrentPassword: "secret1", NewPassword: "secret2"}))

	_, err = client.Login(ctx, models.Credentials{Email: "frank@example.com", Password: "secret2"})
	assert.NoError(t, err)
}

func TestAssetURL(t *testing.T) {
	client := movieapi.NewClient("http://api.local:8000/", "/api/v1")

	assert.Equal(t, "http://api.local:8000", client.Origin())
	assert.Equal(t, movieapi.PlaceholderAsset, client.AssetURL(""))
	assert.Equal(t, "http://api.local:8000/static/a.png", client.AssetURL("/static/a.png"))
	assert.Equal(t, "http://api.local:8000/static/a.png", client.AssetURL("static/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", client.AssetURL("https://cdn.example.com/a.png"))
}
