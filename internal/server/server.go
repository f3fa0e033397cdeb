package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"pokedex-companion/internal/catalog"
	"pokedex-companion/internal/config"
	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/middleware"
	"pokedex-companion/internal/service"
	"pokedex-companion/internal/session"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Server struct {
	accounts *service.AccountService
	profiles *service.ProfileService
	feed     *service.FeedService
	catalog  *catalog.Service
	sessions *session.Manager
	cfg      *config.Config
	logger   zerolog.Logger
}

func New(
	accounts *service.AccountService,
	profiles *service.ProfileService,
	feedSvc *service.FeedService,
	catalogSvc *catalog.Service,
	sessions *session.Manager,
	cfg *config.Config,
	logger zerolog.Logger,
) *Server {
	return &Server{
		accounts: accounts,
		profiles: profiles,
		feed:     feedSvc,
		catalog:  catalogSvc,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID(s.logger))

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.Auth(s.cfg, s.logger))
	authed.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	authed.HandleFunc("/catalog", s.handleGetCatalog).Methods(http.MethodGet)
	authed.HandleFunc("/catalog/{name}", s.handleSearchCatalog).Methods(http.MethodGet)
	authed.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/profile", s.handlePatchProfile).Methods(http.MethodPatch)
	authed.HandleFunc("/profile/discovered", s.handleAppendDiscovered).Methods(http.MethodPost)
	authed.HandleFunc("/feed", s.handleFeedSnapshot).Methods(http.MethodGet)
	authed.HandleFunc("/feed", s.handleAppendPost).Methods(http.MethodPost)
	authed.HandleFunc("/feed/stream", s.handleFeedStream).Methods(http.MethodGet)
	authed.HandleFunc("/spawns/scan", s.handleScan).Methods(http.MethodPost)
	authed.HandleFunc("/spawns", s.handleSpawns).Methods(http.MethodGet)
	authed.HandleFunc("/spawns/capture", s.handleCapture).Methods(http.MethodPost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrNotReady):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrSpawnNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody[T any](r *http.Request) (*T, error) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, domain.ErrValidation
	}
	return &body, nil
}
