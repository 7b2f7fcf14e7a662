package models

import "time"

// DeckUnassigned is the reserved sentinel deck id. It always exists
// conceptually, cannot be deleted, and absorbs cards of deleted decks.
const DeckUnassigned = "unassigned"

// Default scheduling state for a newly created card.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

type Flashcard struct {
	ID           string     `json:"id"`
	DeckID       string     `json:"deck_id"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	Notes        string     `json:"notes,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	HintImageURL string     `json:"hint_image_url,omitempty"`
	EaseFactor   float64    `json:"ease_factor"`
	Repetitions  int        `json:"repetitions"`
	IntervalDays int        `json:"interval_days"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	NextReview   *time.Time `json:"next_review,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewFlashcard returns a card with default scheduling state: immediately due,
// never reviewed.
func NewFlashcard(deckID, front, back string) Flashcard {
	if deckID == "" {
		deckID = DeckUnassigned
	}
	return Flashcard{
		DeckID:     deckID,
		Front:      front,
		Back:       back,
		EaseFactor: DefaultEaseFactor,
	}
}

type Deck struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CardFilter narrows card listings.
type CardFilter struct {
	DeckID string
	Tag    string
	Search string
	Limit  int
	Offset int
}

// ReviewLog is one append-only row of review history. EffectiveRating is the
// rating actually persisted to scheduling state, which differs from Rating
// when a hint downgraded the response.
type ReviewLog struct {
	ID              int64     `json:"id"`
	CardID          string    `json:"card_id"`
	Rating          Rating    `json:"rating"`
	EffectiveRating Rating    `json:"effective_rating"`
	ReviewedAt      time.Time `json:"reviewed_at"`
}
