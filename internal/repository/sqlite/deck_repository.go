package sqlite

import (
	"context"
	"database/sql"
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Insert(ctx context.Context, name string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	id, err := gonanoid.New()
	if err != nil {
		log.Error("failed to generate deck id: %v", err)
		return nil, err
	}
	log.Debug("inserting deck: id=%s, name=%s", id, name)

	if _, err := r.db.ExecContext(ctx, `INSERT INTO decks (id, name) VALUES (?, ?)`, id, name); err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *deckRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM decks WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) GetByName(ctx context.Context, name string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM decks WHERE name = ? COLLATE NOCASE`, name).
		Scan(&d.ID, &d.Name, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck by name: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) Rename(ctx context.Context, id, name string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("renaming deck: id=%s, name=%s", id, name)

	_, err := r.db.ExecContext(ctx, `UPDATE decks SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		log.Error("failed to rename deck: %v", err)
	}
	return err
}

func (r *deckRepository) List(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM decks ORDER BY name COLLATE NOCASE`)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// Delete removes a deck and reassigns its cards to the unassigned sentinel
// inside one transaction. Cards are never deleted with the deck.
func (r *deckRepository) Delete(ctx context.Context, id string) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%s", id)

	var reassigned int64
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		res, err := t.ExecContext(ctx, `UPDATE cards SET deck_id = ? WHERE deck_id = ?`, models.DeckUnassigned, id)
		if err != nil {
			return err
		}
		reassigned, err = res.RowsAffected()
		if err != nil {
			return err
		}
		_, err = t.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
		return err
	})
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return 0, err
	}
	log.Info("deck deleted: id=%s, %d cards reassigned", id, reassigned)
	return reassigned, nil
}
