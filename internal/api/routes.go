package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.handleListDecks)
			r.Post("/", s.handleCreateDeck)
			r.Get("/{id}", s.handleGetDeck)
			r.Put("/{id}", s.handleRenameDeck)
			r.Delete("/{id}", s.handleDeleteDeck)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", s.handleListCards)
			r.Post("/", s.handleCreateCard)
			r.Get("/{id}", s.handleGetCard)
			r.Put("/{id}", s.handleUpdateCard)
			r.Delete("/{id}", s.handleDeleteCard)
			r.Post("/{id}/review", s.handleReviewCard)
		})

		r.Route("/review", func(r chi.Router) {
			r.Get("/", s.handleReviewState)
			r.Post("/start", s.handleReviewStart)
			r.Post("/hint", s.handleReviewHint)
			r.Post("/reveal", s.handleReviewReveal)
			r.Post("/respond", s.handleReviewRespond)
			r.Post("/reset", s.handleReviewReset)
		})

		r.Post("/gesture/frames", s.handleGestureFrame)

		r.Post("/suggest", s.handleSuggest)
	})

	return r
}
