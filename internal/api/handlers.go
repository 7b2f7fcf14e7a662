// Package api exposes the local HTTP surface the extension popup talks to:
// deck and card CRUD, the review session, gesture frame ingest, and the
// suggestion proxy.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/errors"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/services"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/suggest"
)

type Server struct {
	CardService   services.CardService
	DeckService   services.DeckService
	ReviewService services.ReviewService
	Suggester     suggest.Suggester
	Ping          func() error
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}
