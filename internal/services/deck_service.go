package services

import (
	"context"
	"strings"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/errors"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/repository"
)

// DeckService handles deck-related business logic
type DeckService interface {
	Create(ctx context.Context, name string) (*models.Deck, error)
	Get(ctx context.Context, id string) (*models.Deck, error)
	Rename(ctx context.Context, id, name string) (*models.Deck, error)
	List(ctx context.Context) ([]models.Deck, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type deckService struct {
	decks repository.DeckRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(decks repository.DeckRepository) DeckService {
	return &deckService{decks: decks}
}

func (s *deckService) Create(ctx context.Context, name string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if err := s.checkName(ctx, name, ""); err != nil {
		return nil, err
	}

	deck, err := s.decks.Insert(ctx, name)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("deck created: id=%s, name=%s", deck.ID, deck.Name)
	return deck, nil
}

func (s *deckService) Get(ctx context.Context, id string) (*models.Deck, error) {
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) Rename(ctx context.Context, id, name string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	deck, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.checkName(ctx, name, deck.ID); err != nil {
		return nil, err
	}

	if err := s.decks.Rename(ctx, id, name); err != nil {
		log.Error("failed to rename deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	deck.Name = name
	return deck, nil
}

func (s *deckService) List(ctx context.Context) ([]models.Deck, error) {
	decks, err := s.decks.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

// Delete removes a deck, reassigning its cards to the unassigned sentinel.
// The sentinel itself cannot be deleted.
func (s *deckService) Delete(ctx context.Context, id string) (int64, error) {
	log := logger.FromContext(ctx)

	if id == models.DeckUnassigned {
		return 0, errors.NewValidationError("deck", "the unassigned deck cannot be deleted")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return 0, err
	}

	reassigned, err := s.decks.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return reassigned, nil
}

// checkName enforces the non-empty, case-insensitively-unique deck name rule.
// selfID exempts the deck being renamed from its own name.
func (s *deckService) checkName(ctx context.Context, name, selfID string) error {
	if name == "" {
		return errors.NewValidationError("name", "cannot be empty")
	}
	if strings.EqualFold(name, models.DeckUnassigned) {
		return errors.NewValidationError("name", "is reserved")
	}
	existing, err := s.decks.GetByName(ctx, name)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing != nil && existing.ID != selfID {
		return errors.NewValidationError("name", "a deck with this name already exists")
	}
	return nil
}
