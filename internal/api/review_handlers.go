package api

import (
	"io"
	"net/http"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/errors"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
)

// maxFrameBytes bounds a single camera frame upload.
const maxFrameBytes = 1 << 20

type startReviewRequest struct {
	DeckID string `json:"deck_id"`
}

type respondRequest struct {
	Rating string `json:"rating"`
}

func (s *Server) handleReviewState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.ReviewService.Snapshot(r.Context()))
}

func (s *Server) handleReviewStart(w http.ResponseWriter, r *http.Request) {
	var req startReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	snap, err := s.ReviewService.Start(r.Context(), req.DeckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleReviewHint(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.ReviewService.Hint(r.Context()))
}

func (s *Server) handleReviewReveal(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.ReviewService.Reveal(r.Context()))
}

func (s *Server) handleReviewRespond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	rating, err := models.ParseRating(req.Rating)
	if err != nil {
		handleError(w, r, errors.NewValidationError("rating", "must be correct, hard or incorrect"))
		return
	}

	snap, err := s.ReviewService.Respond(r.Context(), rating)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleReviewReset(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.ReviewService.Reset(r.Context()))
}

// handleGestureFrame ingests a raw webcam frame from the extension. Frames
// are fire-and-forget; the polling loop picks up whichever is freshest.
func (s *Server) handleGestureFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := io.ReadAll(io.LimitReader(r.Body, maxFrameBytes))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("could not read frame body"))
		return
	}
	if len(frame) == 0 {
		handleError(w, r, errors.NewBadRequestError("empty frame"))
		return
	}

	s.ReviewService.PushFrame(frame)
	w.WriteHeader(http.StatusAccepted)
}
