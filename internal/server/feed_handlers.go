package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pokedex-companion/internal/constants"
	"pokedex-companion/internal/middleware"
)

type postRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleAppendPost(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())
	body, err := decodeBody[postRequest](r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Author name and gender always come from the stored profile, never
	// from the request body.
	profile, err := s.profiles.ReadProfile(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}

	gender := profile.Gender
	if gender == "" {
		gender = constants.DefaultGender
	}

	if err := s.feed.AppendPost(r.Context(), uid, profile.Username, body.Content, gender); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"status": "posted"})
}

func (s *Server) handleFeedSnapshot(w http.ResponseWriter, r *http.Request) {
	posts, err := s.feed.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, posts)
}

// handleFeedStream serves the live subscription as server-sent events:
// one event per snapshot, the current snapshot first. The subscription is
// torn down with the request context, so a dropped client never leaks a
// listener.
func (s *Server) handleFeedStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, err := s.feed.Subscribe(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for snapshot := range ch {
		data, err := json.Marshal(snapshot)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to encode feed snapshot")
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}
}
