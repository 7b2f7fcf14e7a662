package services

import (
	"context"
	"strings"
	"time"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/errors"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/repository"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/scheduler"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/suggest"
)

// CardService handles flashcard-related business logic
type CardService interface {
	Create(ctx context.Context, card models.Flashcard) (*models.Flashcard, error)
	Get(ctx context.Context, id string) (*models.Flashcard, error)
	Update(ctx context.Context, card models.Flashcard) (*models.Flashcard, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.CardFilter) ([]models.Flashcard, error)
	Review(ctx context.Context, id string, rating models.Rating, hintUsed bool) (*models.Flashcard, error)
}

type cardService struct {
	cards     repository.CardRepository
	decks     repository.DeckRepository
	logs      repository.ReviewLogRepository
	suggester suggest.Suggester
}

// timeNow is a seam for tests.
var timeNow = time.Now

// NewCardService creates a new CardService. The suggester may be nil, which
// disables answer auto-fill.
func NewCardService(cards repository.CardRepository, decks repository.DeckRepository, logs repository.ReviewLogRepository, suggester suggest.Suggester) CardService {
	return &cardService{
		cards:     cards,
		decks:     decks,
		logs:      logs,
		suggester: suggester,
	}
}

func (s *cardService) Create(ctx context.Context, card models.Flashcard) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	card.Front = strings.TrimSpace(card.Front)
	card.Back = strings.TrimSpace(card.Back)
	if card.Front == "" {
		return nil, errors.NewValidationError("front", "cannot be empty")
	}

	// Try to auto-fill a missing answer from the suggestion backend. A
	// failed or empty suggestion only means the user types it themselves.
	if card.Back == "" && s.suggester != nil {
		suggestion, err := s.suggester.Suggest(ctx, card.Front)
		if err != nil {
			log.Warn("suggestion unavailable: %v", err)
		}
		card.Back = strings.TrimSpace(suggestion)
	}
	if card.Back == "" {
		return nil, errors.NewValidationError("back", "cannot be empty")
	}

	if err := s.resolveDeck(ctx, &card); err != nil {
		return nil, err
	}

	// Fresh cards always start with default scheduling state.
	card.EaseFactor = models.DefaultEaseFactor
	card.Repetitions = 0
	card.IntervalDays = 0
	card.LastReviewed = nil
	card.NextReview = nil

	id, err := s.cards.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("card created: id=%s, deck_id=%s", id, card.DeckID)
	return created, nil
}

func (s *cardService) Get(ctx context.Context, id string) (*models.Flashcard, error) {
	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

// Update applies content edits. Scheduling fields are carried over from the
// stored record untouched; only the scheduler mutates them.
func (s *cardService) Update(ctx context.Context, card models.Flashcard) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	card.Front = strings.TrimSpace(card.Front)
	card.Back = strings.TrimSpace(card.Back)
	if card.Front == "" {
		return nil, errors.NewValidationError("front", "cannot be empty")
	}
	if card.Back == "" {
		return nil, errors.NewValidationError("back", "cannot be empty")
	}

	existing, err := s.cards.Get(ctx, card.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing == nil {
		return nil, errors.NewNotFoundError("card", card.ID)
	}

	if err := s.resolveDeck(ctx, &card); err != nil {
		return nil, err
	}

	card.EaseFactor = existing.EaseFactor
	card.Repetitions = existing.Repetitions
	card.IntervalDays = existing.IntervalDays
	card.LastReviewed = existing.LastReviewed
	card.NextReview = existing.NextReview
	card.CreatedAt = existing.CreatedAt

	if err := s.cards.Update(ctx, card); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &card, nil
}

func (s *cardService) Delete(ctx context.Context, id string) error {
	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if card == nil {
		return errors.NewNotFoundError("card", id)
	}
	if err := s.cards.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *cardService) List(ctx context.Context, filter models.CardFilter) ([]models.Flashcard, error) {
	cards, err := s.cards.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

// Review applies one manual review response outside a gesture session, using
// the same scheduling and hint-downgrade path the session engine uses.
func (s *cardService) Review(ctx context.Context, id string, rating models.Rating, hintUsed bool) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	if !rating.Valid() {
		return nil, errors.NewValidationError("rating", "must be correct, hard or incorrect")
	}

	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}

	effective := scheduler.EffectiveRating(rating, hintUsed)
	updated := scheduler.Schedule(*card, effective, timeNow())

	if err := s.cards.Update(ctx, updated); err != nil {
		log.Error("failed to update card after review: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if s.logs != nil {
		entry := models.ReviewLog{
			CardID:          id,
			Rating:          rating,
			EffectiveRating: effective,
			ReviewedAt:      *updated.LastReviewed,
		}
		if _, err := s.logs.Insert(ctx, entry); err != nil {
			log.Warn("failed to store review history: %v", err)
			// Don't fail the review if history storage fails.
		}
	}
	return &updated, nil
}

// resolveDeck validates the card's deck reference, mapping an empty id to the
// unassigned sentinel.
func (s *cardService) resolveDeck(ctx context.Context, card *models.Flashcard) error {
	if card.DeckID == "" {
		card.DeckID = models.DeckUnassigned
	}
	if card.DeckID == models.DeckUnassigned {
		return nil
	}
	deck, err := s.decks.Get(ctx, card.DeckID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if deck == nil {
		return errors.NewValidationError("deck_id", "deck does not exist")
	}
	return nil
}
