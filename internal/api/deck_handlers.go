package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type deckRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.DeckService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"decks": decks})
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req deckRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.Create(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, deck)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.DeckService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleRenameDeck(w http.ResponseWriter, r *http.Request) {
	var req deckRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.Rename(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	reassigned, err := s.DeckService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"cards_reassigned": reassigned})
}
