package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/errors"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
)

type cardRequest struct {
	DeckID       string   `json:"deck_id"`
	Front        string   `json:"front"`
	Back         string   `json:"back"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`
	HintImageURL string   `json:"hint_image_url"`
}

func (r cardRequest) toModel() models.Flashcard {
	return models.Flashcard{
		DeckID:       r.DeckID,
		Front:        r.Front,
		Back:         r.Back,
		Notes:        r.Notes,
		Tags:         r.Tags,
		HintImageURL: r.HintImageURL,
	}
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.CardFilter{
		DeckID: q.Get("deck"),
		Tag:    q.Get("tag"),
		Search: q.Get("search"),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	cards, err := s.CardService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.Create(r.Context(), req.toModel())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.CardService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card := req.toModel()
	card.ID = chi.URLParam(r, "id")

	updated, err := s.CardService.Update(r.Context(), card)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.CardService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"deleted": true})
}

type reviewRequest struct {
	Rating   string `json:"rating"`
	HintUsed bool   `json:"hint_used"`
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	rating, err := models.ParseRating(req.Rating)
	if err != nil {
		handleError(w, r, errors.NewValidationError("rating", "must be correct, hard or incorrect"))
		return
	}

	card, err := s.CardService.Review(r.Context(), chi.URLParam(r, "id"), rating, req.HintUsed)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, card)
}
