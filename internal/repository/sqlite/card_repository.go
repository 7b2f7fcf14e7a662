package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/repository"
)

const cardColumns = `id, deck_id, front, back, notes, tags, hint_image_url,
ease_factor, repetitions, interval_days, last_reviewed, next_review, created_at`

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Insert(ctx context.Context, c models.Flashcard) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	id, err := gonanoid.New()
	if err != nil {
		log.Error("failed to generate card id: %v", err)
		return "", err
	}
	if c.DeckID == "" {
		c.DeckID = models.DeckUnassigned
	}
	log.Debug("inserting card: id=%s, deck_id=%s", id, c.DeckID)

	_, err = r.db.ExecContext(ctx, `
INSERT INTO cards (id, deck_id, front, back, notes, tags, hint_image_url, ease_factor, repetitions, interval_days, last_reviewed, next_review)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, id, c.DeckID, c.Front, c.Back, c.Notes, encodeTags(c.Tags), c.HintImageURL,
		c.EaseFactor, c.Repetitions, c.IntervalDays, encodeTime(c.LastReviewed), encodeTime(c.NextReview))
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return "", err
	}
	return id, nil
}

func (r *cardRepository) Get(ctx context.Context, id string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%s", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return c, nil
}

func (r *cardRepository) Update(ctx context.Context, c models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%s, interval=%d, ease=%.2f", c.ID, c.IntervalDays, c.EaseFactor)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET deck_id = ?, front = ?, back = ?, notes = ?, tags = ?, hint_image_url = ?,
    ease_factor = ?, repetitions = ?, interval_days = ?, last_reviewed = ?, next_review = ?
WHERE id = ?
`, c.DeckID, c.Front, c.Back, c.Notes, encodeTags(c.Tags), c.HintImageURL,
		c.EaseFactor, c.Repetitions, c.IntervalDays, encodeTime(c.LastReviewed), encodeTime(c.NextReview), c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%s", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
	}
	return err
}

func (r *cardRepository) ListByDeck(ctx context.Context, deckID string) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%s", deckID)

	// Served by idx_cards_deck_id, not a full scan.
	rows, err := r.db.QueryContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE deck_id = ? ORDER BY created_at`, deckID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()
	return collectCards(rows)
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards with filter: deck_id=%s, tag=%s, search=%s", filter.DeckID, filter.Tag, filter.Search)

	query := sqlBuilder.Select(
		"id", "deck_id", "front", "back", "notes", "tags", "hint_image_url",
		"ease_factor", "repetitions", "interval_days", "last_reviewed", "next_review", "created_at",
	).From("cards")

	if filter.DeckID != "" {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	if filter.Tag != "" {
		query = query.Where(squirrel.Like{"tags": "%" + filter.Tag + "%"})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"front": pattern},
			squirrel.Like{"back": pattern},
		})
	}

	query = query.OrderBy("created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()
	return collectCards(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Flashcard, error) {
	var c models.Flashcard
	var tags string
	var lastReviewed, nextReview sql.NullString
	err := row.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Notes, &tags, &c.HintImageURL,
		&c.EaseFactor, &c.Repetitions, &c.IntervalDays, &lastReviewed, &nextReview, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Tags = decodeTags(tags)
	c.LastReviewed = decodeTime(lastReviewed)
	c.NextReview = decodeTime(nextReview)
	return &c, nil
}

func collectCards(rows *sql.Rows) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}
