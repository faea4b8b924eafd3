package apitest

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"movie-web/internal/models"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in models.Registration
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	taken := s.byEmail(in.Email) != nil
	s.mu.Unlock()
	if taken {
		writeDetail(w, http.StatusBadRequest, "email already registered")
		return
	}
	u := s.AddUser(in.Username, in.Email, in.Password, models.RoleUser)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid form")
		return
	}
	email, password := r.PostForm.Get("username"), r.PostForm.Get("password")

	s.mu.Lock()
	acc := s.byEmail(email)
	s.mu.Unlock()
	if acc == nil || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "incorrect email or password")
		return
	}
	writeJSON(w, http.StatusOK, models.Token{AccessToken: s.TokenFor(email), TokenType: "bearer"})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, acc *account) {
	s.mu.Lock()
	u := acc.user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) updateMe(w http.ResponseWriter, r *http.Request, acc *account) {
	var in models.ProfileUpdate
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	if in.Email != nil && *in.Email != acc.user.Email && s.byEmail(*in.Email) != nil {
		s.mu.Unlock()
		writeDetail(w, http.StatusBadRequest, "email already registered")
		return
	}
	if in.Username != nil {
		acc.user.Username = *in.Username
	}
	if in.Email != nil {
		acc.user.Email = *in.Email
	}
	u := acc.user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request, acc *account) {
	var in models.PasswordChange
	if !readJSON(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if bcrypt.CompareHashAndPassword(acc.hash, []byte(in.CurrentPassword)) != nil {
		writeDetail(w, http.StatusBadRequest, "current password is incorrect")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.MinCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	acc.hash = hash
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) uploadAvatar(w http.ResponseWriter, r *http.Request, acc *account) {
	asset, ok := storeUpload(w, r, "avatars")
	if !ok {
		return
	}
	s.mu.Lock()
	acc.user.AvatarURL = &asset
	u := acc.user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}
