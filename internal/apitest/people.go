package apitest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"movie-web/internal/models"
)

// personRecord unifies the actor and director maps for the shared handlers.
type personRecord interface {
	set(id int, in models.PersonInput)
	setPhoto(path string)
}

type actorRecord struct{ *models.Actor }

func (a actorRecord) set(id int, in models.PersonInput) {
	a.ActorID, a.Name, a.Gender, a.BirthDate, a.Nationality = id, in.Name, in.Gender, in.BirthDate, in.Nationality
}
func (a actorRecord) setPhoto(p string) { a.PhotoURL = &p }

type directorRecord struct{ *models.Director }

func (d directorRecord) set(id int, in models.PersonInput) {
	d.DirectorID, d.Name, d.Gender, d.BirthDate, d.Nationality = id, in.Name, in.Gender, in.BirthDate, in.Nationality
}
func (d directorRecord) setPhoto(p string) { d.PhotoURL = &p }

func (s *Server) personRoutes(mux *http.ServeMux, route, noun string) {
	lookup := func(id int) (personRecord, any, bool) {
		if noun == "actor" {
			a, ok := s.actors[id]
			if !ok {
				return nil, nil, false
			}
			return actorRecord{a}, a, true
		}
		d, ok := s.directors[id]
		if !ok {
			return nil, nil, false
		}
		return directorRecord{d}, d, true
	}
	create := func(id int) (personRecord, any) {
		if noun == "actor" {
			a := &models.Actor{}
			s.actors[id] = a
			return actorRecord{a}, a
		}
		d := &models.Director{}
		s.directors[id] = d
		return directorRecord{d}, d
	}
	notFound := fmt.Sprintf("%s not found", noun)
	p := func(method, suffix string) string { return method + " " + BasePath + route + suffix }

	mux.HandleFunc(p("GET", "/{$}"), func(w http.ResponseWriter, r *http.Request) {
		skip, limit := pageParams(r)
		s.mu.Lock()
		defer s.mu.Unlock()
		if noun == "actor" {
			out := make([]models.Actor, 0, len(s.actors))
			for _, id := range page(sortedKeys(s.actors), skip, limit) {
				out = append(out, *s.actors[id])
			}
			writeJSON(w, http.StatusOK, out)
			return
		}
		out := make([]models.Director, 0, len(s.directors))
		for _, id := range page(sortedKeys(s.directors), skip, limit) {
			out = append(out, *s.directors[id])
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc(p("GET", "/{id}"), func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		_, out, found := lookup(id)
		if !found {
			writeDetail(w, http.StatusNotFound, notFound)
			return
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc(p("POST", "/{$}"), s.admin(func(w http.ResponseWriter, r *http.Request, _ *account) {
		var in models.PersonInput
		if !readJSON(w, r, &in) {
			return
		}
		if strings.TrimSpace(in.Name) == "" {
			writeDetail(w, http.StatusUnprocessableEntity, "Name: field required")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		id := s.id()
		rec, out := create(id)
		rec.set(id, in)
		writeJSON(w, http.StatusCreated, out)
	}))

	mux.HandleFunc(p("PUT", "/{id}"), s.admin(func(w http.ResponseWriter, r *http.Request, _ *account) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var in models.PersonInput
		if !readJSON(w, r, &in) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, out, found := lookup(id)
		if !found {
			writeDetail(w, http.StatusNotFound, notFound)
			return
		}
		rec.set(id, in)
		writeJSON(w, http.StatusOK, out)
	}))

	mux.HandleFunc(p("DELETE", "/{id}"), s.admin(func(w http.ResponseWriter, r *http.Request, _ *account) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		_, out, found := lookup(id)
		if !found {
			writeDetail(w, http.StatusNotFound, notFound)
			return
		}
		delete(s.actors, id)
		delete(s.directors, id)
		writeJSON(w, http.StatusOK, out)
	}))

	mux.HandleFunc(p("POST", "/{id}/photo"), s.admin(func(w http.ResponseWriter, r *http.Request, _ *account) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		asset, ok := storeUpload(w, r, noun+"s")
		if !ok {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, out, found := lookup(id)
		if !found {
			writeDetail(w, http.StatusNotFound, notFound)
			return
		}
		rec.setPhoto(asset)
		writeJSON(w, http.StatusOK, out)
	}))
}

// defaultLimit mirrors the API's list page size when no limit is given.
const defaultLimit = 100

func pageParams(r *http.Request) (skip, limit int) {
	skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	return max(skip, 0), limit
}

func page(ids []int, skip, limit int) []int {
	if skip >= len(ids) {
		return nil
	}
	return ids[skip:min(skip+limit, len(ids))]
}
