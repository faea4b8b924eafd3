// Package apitest runs an in-memory stand-in for the remote movie API.
//
// It implements the same routes, status codes and error envelopes ({"detail": ...})
// as the real service closely enough for client, session and handler tests.
package apitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"movie-web/internal/models"
	"movie-web/internal/movieapi"
)

// BasePath is the API prefix served by the fake.
const BasePath = "/api/v1"

type account struct {
	user models.User
	hash []byte
}

// Server is a fake movie API backed by maps.
type Server struct {
	srv    *httptest.Server
	secret []byte

	mu        sync.Mutex
	nextID    int
	accounts  map[int]*account
	movies    map[int]*models.Movie
	actors    map[int]*models.Actor
	directors map[int]*models.Director
	comments  map[int]*commentRecord
	ratings   map[[2]int]*models.Rating

	requests atomic.Int64
}

// New starts a fake API and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		secret:    []byte("apitest-secret"),
		accounts:  make(map[int]*account),
		movies:    make(map[int]*models.Movie),
		actors:    make(map[int]*models.Actor),
		directors: make(map[int]*models.Director),
		comments:  make(map[int]*commentRecord),
		ratings:   make(map[[2]int]*models.Rating),
	}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the fake's origin.
func (s *Server) URL() string { return s.srv.URL }

// APIClient returns a movieapi client pointed at the fake.
func (s *Server) APIClient() *movieapi.Client {
	return movieapi.NewClient(s.srv.URL, BasePath)
}

// Close stops the server early, e.g. to simulate an outage.
func (s *Server) Close() { s.srv.Close() }

// Requests is the number of requests served so far.
func (s *Server) Requests() int64 { return s.requests.Load() }

func (s *Server) id() int {
	s.nextID++
	return s.nextID
}

// AddUser registers an account directly.
func (s *Server) AddUser(username, email, password string, role models.Role) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{UserID: s.id(), Username: username, Email: email, Role: role}
	s.accounts[u.UserID] = &account{user: u, hash: hash}
	return u
}

// TokenFor issues a valid bearer token for email.
func (s *Server) TokenFor(email string) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// AddMovie inserts a movie and returns it with its assigned ID.
func (s *Server) AddMovie(m models.Movie) models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.MovieID = s.id()
	s.movies[m.MovieID] = &m
	return m
}

// AddActor inserts an actor.
func (s *Server) AddActor(name string) models.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := models.Actor{ActorID: s.id(), Name: name}
	s.actors[a.ActorID] = &a
	return a
}

// AddDirector inserts a director.
func (s *Server) AddDirector(name string) models.Director {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := models.Director{DirectorID: s.id(), Name: name}
	s.directors[d.DirectorID] = &d
	return d
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	p := func(method, route string) string { return method + " " + BasePath + route }

	mux.HandleFunc(p("POST", "/users/register"), s.register)
	mux.HandleFunc(p("POST", "/users/login/token"), s.login)
	mux.HandleFunc(p("GET", "/users/me"), s.authed(s.me))
	mux.HandleFunc(p("PUT", "/users/me"), s.authed(s.updateMe))
	mux.HandleFunc(p("PUT", "/users/me/password"), s.authed(s.changePassword))
	mux.HandleFunc(p("POST", "/users/me/avatar"), s.authed(s.uploadAvatar))

	mux.HandleFunc(p("GET", "/movies/{$}"), s.listMovies)
	mux.HandleFunc(p("GET", "/movies/genres/{$}"), s.listGenres)
	mux.HandleFunc(p("GET", "/movies/{id}"), s.getMovie)
	mux.HandleFunc(p("POST", "/movies/{$}"), s.admin(s.createMovie))
	mux.HandleFunc(p("PUT", "/movies/{id}"), s.admin(s.updateMovie))
	mux.HandleFunc(p("DELETE", "/movies/{id}"), s.admin(s.deleteMovie))
	mux.HandleFunc(p("POST", "/movies/{id}/cover"), s.admin(s.uploadCover))

	mux.HandleFunc(p("GET", "/movies/{id}/comments"), s.listComments)
	mux.HandleFunc(p("POST", "/movies/{id}/comments"), s.authed(s.postComment))
	mux.HandleFunc(p("PUT", "/comments/{id}"), s.authed(s.updateComment))
	mux.HandleFunc(p("DELETE", "/comments/{id}"), s.authed(s.deleteComment))
	mux.HandleFunc(p("POST", "/movies/{id}/ratings"), s.authed(s.postRating))
	mux.HandleFunc(p("DELETE", "/movies/{id}/ratings"), s.authed(s.deleteRating))

	s.personRoutes(mux, "/actors", "actor")
	s.personRoutes(mux, "/directors", "director")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		mux.ServeHTTP(w, r)
	})
}

// ---- auth helpers ----

type authedHandler func(w http.ResponseWriter, r *http.Request, acc *account)

func (s *Server) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, err := s.authenticate(r)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next(w, r, acc)
	}
}

func (s *Server) admin(next authedHandler) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request, acc *account) {
		if acc.user.Role != models.RoleAdmin {
			writeDetail(w, http.StatusForbidden, "admin privileges required")
			return
		}
		next(w, r, acc)
	})
}

func (s *Server) authenticate(r *http.Request) (*account, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return nil, errors.New("missing bearer token")
	}
	tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	email, err := tok.Claims.GetSubject()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if acc := s.byEmail(email); acc != nil {
		return acc, nil
	}
	return nil, errors.New("unknown subject")
}

// byEmail must be called with s.mu held.
func (s *Server) byEmail(email string) *account {
	for _, acc := range s.accounts {
		if acc.user.Email == email {
			return acc
		}
	}
	return nil
}

// ---- encoding helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "invalid request body"}},
		})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return 0, false
	}
	return id, true
}

// storeUpload accepts the multipart "file" field and returns the new asset path.
func storeUpload(w http.ResponseWriter, r *http.Request, dir string) (string, bool) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "file is required")
		return "", false
	}
	_ = file.Close()
	if header.Size == 0 {
		writeDetail(w, http.StatusBadRequest, "uploaded file is empty")
		return "", false
	}
	return fmt.Sprintf("/static/images/%s/%s%s", dir, uuid.NewString(), path.Ext(header.Filename)), true
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
