package api

import (
	"net/http"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/errors"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
)

type suggestRequest struct {
	Text string `json:"text"`
}

// handleSuggest proxies captured text to the AI-suggestion backend. A failed
// suggestion is not an error to the caller: the popup simply gets nothing to
// auto-fill.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Text == "" {
		handleError(w, r, errors.NewValidationError("text", "cannot be empty"))
		return
	}
	if s.Suggester == nil {
		respondJSON(w, r, http.StatusOK, map[string]any{"suggestion": nil})
		return
	}

	suggestion, err := s.Suggester.Suggest(r.Context(), req.Text)
	if err != nil {
		log.Warn("suggestion failed: %v", err)
		respondJSON(w, r, http.StatusOK, map[string]any{"suggestion": nil})
		return
	}
	if suggestion == "" {
		respondJSON(w, r, http.StatusOK, map[string]any{"suggestion": nil})
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"suggestion": suggestion})
}
