package repository

import (
	"context"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
)

// CardRepository handles flashcard data access. Get returns (nil, nil) when
// no card exists with the given id.
type CardRepository interface {
	Insert(ctx context.Context, card models.Flashcard) (string, error)
	Get(ctx context.Context, id string) (*models.Flashcard, error)
	Update(ctx context.Context, card models.Flashcard) error
	Delete(ctx context.Context, id string) error
	ListByDeck(ctx context.Context, deckID string) ([]models.Flashcard, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Flashcard, error)
}

// DeckRepository handles deck data access. Deck deletion reassigns the deck's
// cards to the unassigned sentinel and reports how many were reassigned;
// cards are never deleted with their deck.
type DeckRepository interface {
	Insert(ctx context.Context, name string) (*models.Deck, error)
	Get(ctx context.Context, id string) (*models.Deck, error)
	GetByName(ctx context.Context, name string) (*models.Deck, error)
	Rename(ctx context.Context, id, name string) error
	List(ctx context.Context) ([]models.Deck, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// ReviewLogRepository appends and reads review history.
type ReviewLogRepository interface {
	Insert(ctx context.Context, entry models.ReviewLog) (int64, error)
	ListByCard(ctx context.Context, cardID string) ([]models.ReviewLog, error)
}
