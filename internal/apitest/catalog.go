package apitest

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"movie-web/internal/models"
)

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.ToLower(q.Get("search"))
	genre := q.Get("genre")
	year, _ := strconv.Atoi(q.Get("year"))
	minRating, _ := strconv.ParseFloat(q.Get("min_rating"), 64)

	s.mu.Lock()
	out := make([]models.Movie, 0, len(s.movies))
	for _, id := range sortedKeys(s.movies) {
		m := s.movies[id]
		if search != "" && !strings.Contains(strings.ToLower(m.Title), search) {
			continue
		}
		if genre != "" && (m.Genre == nil || !strings.Contains(*m.Genre, genre)) {
			continue
		}
		if year != 0 && (m.ReleaseYear == nil || *m.ReleaseYear != year) {
			continue
		}
		if m.AverageRating < minRating {
			continue
		}
		out = append(out, *m)
	}
	s.mu.Unlock()

	switch q.Get("sort_by") {
	case models.SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AverageRating > out[j].AverageRating })
	case models.SortReleaseYearDesc:
		yr := func(m models.Movie) int {
			if m.ReleaseYear == nil {
				return 0
			}
			return *m.ReleaseYear
		}
		sort.SliceStable(out, func(i, j int) bool { return yr(out[i]) > yr(out[j]) })
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listGenres(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	seen := make(map[string]bool)
	genres := make([]string, 0)
	for _, m := range s.movies {
		if m.Genre != nil && *m.Genre != "" && !seen[*m.Genre] {
			seen[*m.Genre] = true
			genres = append(genres, *m.Genre)
		}
	}
	s.mu.Unlock()
	sort.Strings(genres)
	writeJSON(w, http.StatusOK, genres)
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	m, found := s.movies[id]
	var out models.Movie
	if found {
		out = *m
	}
	s.mu.Unlock()
	if !found {
		writeDetail(w, http.StatusNotFound, "movie not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// applyMovieInput must be called with s.mu held.
func (s *Server) applyMovieInput(m *models.Movie, in models.MovieInput) {
	m.Title = in.Title
	m.ReleaseYear = in.ReleaseYear
	m.Genre = in.Genre
	m.Synopsis = in.Synopsis
	m.Country = in.Country
	m.Language = in.Language
	m.Duration = in.Duration
	m.Actors = nil
	for _, id := range in.ActorIDs {
		if a, ok := s.actors[id]; ok {
			m.Actors = append(m.Actors, *a)
		}
	}
	m.Directors = nil
	for _, id := range in.DirectorIDs {
		if d, ok := s.directors[id]; ok {
			m.Directors = append(m.Directors, *d)
		}
	}
}

func (s *Server) createMovie(w http.ResponseWriter, r *http.Request, _ *account) {
	var in models.MovieInput
	if !readJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "Title: field required"}},
		})
		return
	}
	s.mu.Lock()
	m := &models.Movie{MovieID: s.id()}
	s.applyMovieInput(m, in)
	s.movies[m.MovieID] = m
	out := *m
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) updateMovie(w http.ResponseWriter, r *http.Request, _ *account) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.MovieInput
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	m, found := s.movies[id]
	var out models.Movie
	if found {
		s.applyMovieInput(m, in)
		out = *m
	}
	s.mu.Unlock()
	if !found {
		writeDetail(w, http.StatusNotFound, "movie not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteMovie(w http.ResponseWriter, r *http.Request, _ *account) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	m, found := s.movies[id]
	var out models.Movie
	if found {
		out = *m
		delete(s.movies, id)
	}
	s.mu.Unlock()
	if !found {
		writeDetail(w, http.StatusNotFound, "movie not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) uploadCover(w http.ResponseWriter, r *http.Request, _ *account) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.movies[id]
	s.mu.Unlock()
	if !found {
		writeDetail(w, http.StatusNotFound, "movie not found")
		return
	}
	asset, ok := storeUpload(w, r, "covers")
	if !ok {
		return
	}
	s.mu.Lock()
	m := s.movies[id]
	m.CoverURL = &asset
	out := *m
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

// ---- comments & ratings ----

// commentRecord keeps the owning movie beside the comment; the wire form only carries the author.
type commentRecord struct {
	movieID int
	comment models.Comment
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	out := make([]models.Comment, 0)
	for _, cid := range sortedKeys(s.comments) {
		if rec := s.comments[cid]; rec.movieID == id {
			out = append(out, rec.comment)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) postComment(w http.ResponseWriter, r *http.Request, acc *account) {
	movieID, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.CommentInput
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	rec := &commentRecord{
		movieID: movieID,
		comment: models.Comment{
			CommentID: s.id(),
			Content:   in.Content,
			CreatedAt: models.Timestamp{Time: time.Now().UTC()},
			User:      &models.CommentAuthor{UserID: acc.user.UserID, Username: acc.user.Username},
		},
	}
	s.comments[rec.comment.CommentID] = rec
	out := rec.comment
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) ownComment(w http.ResponseWriter, r *http.Request, acc *account) (*commentRecord, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	rec, found := s.comments[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "comment not found")
		return nil, false
	}
	if rec.comment.AuthorID() != acc.user.UserID {
		writeDetail(w, http.StatusForbidden, "cannot modify another user's comment")
		return nil, false
	}
	return rec, true
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request, acc *account) {
	var in models.CommentInput
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.ownComment(w, r, acc)
	if !ok {
		return
	}
	rec.comment.Content = in.Content
	writeJSON(w, http.StatusOK, rec.comment)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request, acc *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.ownComment(w, r, acc)
	if !ok {
		return
	}
	delete(s.comments, rec.comment.CommentID)
	writeJSON(w, http.StatusOK, rec.comment)
}

// recomputeRating must be called with s.mu held.
func (s *Server) recomputeRating(movieID int) {
	m, ok := s.movies[movieID]
	if !ok {
		return
	}
	total, n := 0, 0
	for key, rt := range s.ratings {
		if key[1] == movieID {
			total += rt.Score
			n++
		}
	}
	m.RatingCount = n
	m.AverageRating = 0
	if n > 0 {
		m.AverageRating = float64(total) / float64(n)
	}
}

func (s *Server) postRating(w http.ResponseWriter, r *http.Request, acc *account) {
	movieID, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.RatingInput
	if !readJSON(w, r, &in) {
		return
	}
	if in.Score < 1 || in.Score > 10 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "score must be between 1 and 10"}},
		})
		return
	}
	s.mu.Lock()
	rt := &models.Rating{UserID: acc.user.UserID, MovieID: movieID, Score: in.Score, CreatedAt: models.Timestamp{Time: time.Now().UTC()}}
	s.ratings[[2]int{acc.user.UserID, movieID}] = rt
	s.recomputeRating(movieID)
	out := *rt
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteRating(w http.ResponseWriter, r *http.Request, acc *account) {
	movieID, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.ratings, [2]int{acc.user.UserID, movieID})
	s.recomputeRating(movieID)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
