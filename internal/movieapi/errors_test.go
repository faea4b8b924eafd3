package movieapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-web/internal/models"
)

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"movie not found"}`, "movie not found"},
		{"validation list", `{"detail":[{"msg":"Title: field required"},{"msg":"Score too high"}]}`, "Title: field required; Score too high"},
		{"error field", `{"error":"rate limit exceeded"}`, "rate limit exceeded"},
		{"message field", `{"message":"boom"}`, "boom"},
		{"empty", ``, ""},
		{"not json", `<html>502</html>`, ""},
		{"empty list", `{"detail":[]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseErrorMessage([]byte(tt.body)))
		})
	}
}

func TestDo_FallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = fmt.Fprint(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "/api/v1")
	_, err := client.CreateMovie(context.Background(), "tok", models.MovieInput{Title: "x"})
	require.Error(t, err)

	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadGateway, he.Status)
	assert.Equal(t, "failed to create movie", he.Message)
}

func TestDo_RequestShape(t *testing.T) {
	var gotAuth, gotType, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotPath = r.URL.RequestURI()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "api/v1/")
	require.NoError(t, client.DeleteRating(context.Background(), "abc", 7))
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "/api/v1/movies/7/ratings", gotPath)

	_, err := client.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", gotType)
	assert.Empty(t, gotAuth)
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindNone, Kind(nil))
	assert.Equal(t, KindUnauthenticated, Kind(fmt.Errorf("wrap: %w", ErrNotAuthenticated)))
	assert.Equal(t, KindHTTP, Kind(&HTTPError{Status: 500}))
	assert.Equal(t, KindNetwork, Kind(&NetworkError{Err: errors.New("dial")}))
	assert.Equal(t, KindUnknown, Kind(errors.New("other")))
	assert.Equal(t, "network", KindNetwork.String())
	assert.False(t, IsNotFound(errors.New("x")))
	assert.True(t, IsNotFound(&HTTPError{Status: 404}))
}

func TestComments_ZonelessTimestamps(t *testing.T) {
	const comment = `{"Content":"classic","CommentID":3,"CreatedAt":"2024-05-01T12:34:56","user":{"UserID":7,"Username":"dave"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet:
			_, _ = fmt.Fprint(w, "["+comment+"]")
		case r.URL.Path == "/api/v1/movies/2/comments":
			w.WriteHeader(http.StatusCreated)
			_, _ = fmt.Fprint(w, comment)
		default:
			_, _ = fmt.Fprint(w, `{"Score":8,"UserID":7,"MovieID":2,"CreatedAt":"2024-05-01T12:34:56.120000"}`)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "/api/v1")
	ctx := context.Background()

	comments, err := client.ListComments(ctx, 2)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, 7, comments[0].AuthorID())
	assert.Equal(t, 12, comments[0].CreatedAt.Hour())

	posted, err := client.PostComment(ctx, "tok", 2, "classic")
	require.NoError(t, err)
	assert.Equal(t, "dave", posted.AuthorName())

	rating, err := client.PostRating(ctx, "tok", 2, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, rating.Score)
	assert.Equal(t, 2024, rating.CreatedAt.Year())
}
