package server

import (
	"fmt"
	"net/http"

	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/middleware"

	"github.com/gorilla/mux"
)

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Username        string `json:"username"`
	Gender          string `json:"gender"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Profile *domain.UserProfile `json:"profile"`
	Token   string              `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[registerRequest](r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if body.ConfirmPassword != "" && body.ConfirmPassword != body.Password {
		s.writeError(w, fmt.Errorf("%w: passwords do not match", domain.ErrValidation))
		return
	}

	profile, token, err := s.accounts.Register(r.Context(), body.Email, body.Password, body.Username, body.Gender)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.sessions.Begin(profile.UID)
	s.writeJSON(w, http.StatusCreated, authResponse{Profile: profile, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[loginRequest](r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	profile, token, err := s.accounts.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.sessions.Begin(profile.UID)
	s.writeJSON(w, http.StatusOK, authResponse{Profile: profile, Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())
	s.sessions.End(uid)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	records, err := s.catalog.GetCatalog(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.sessions.MarkReady(middleware.GetUserID(r.Context()))
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSearchCatalog(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	record, err := s.catalog.Search(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())
	profile, err := s.profiles.ReadProfile(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePatchProfile(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())
	body, err := decodeBody[domain.ProfileUpdate](r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.profiles.UpdateProfile(r.Context(), uid, *body); err != nil {
		s.writeError(w, err)
		return
	}

	profile, err := s.profiles.ReadProfile(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

type discoveredRequest struct {
	CatalogID int `json:"catalog_id"`
}

func (s *Server) handleAppendDiscovered(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())
	body, err := decodeBody[discoveredRequest](r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.profiles.AppendDiscovered(r.Context(), uid, body.CatalogID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

type scanRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())
	body, err := decodeBody[scanRequest](r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	spawns, err := s.sessions.Scan(uid, domain.Coordinate{Lat: body.Lat, Lon: body.Lon})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, spawns)
}

func (s *Server) handleSpawns(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())
	spawns, err := s.sessions.Spawns(uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, spawns)
}

type captureRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())
	body, err := decodeBody[captureRequest](r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if body.Key == "" {
		s.writeError(w, fmt.Errorf("%w: spawn key is required", domain.ErrValidation))
		return
	}

	result, err := s.sessions.Capture(r.Context(), uid, body.Key)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
