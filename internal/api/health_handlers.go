package api

import (
	"net/http"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
)

// handleHealth is a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady checks whether the store is reachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.Ping != nil {
		if err := s.Ping(); err != nil {
			logger.FromContext(r.Context()).Warn("readiness check failed: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Database unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
