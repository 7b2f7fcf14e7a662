package sqlite

import (
	"context"
	"database/sql"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/repository"
)

type reviewLogRepository struct {
	db *sql.DB
}

// NewReviewLogRepository creates a new ReviewLogRepository implementation
func NewReviewLogRepository(db *sql.DB) repository.ReviewLogRepository {
	return &reviewLogRepository{db: db}
}

func (r *reviewLogRepository) Insert(ctx context.Context, entry models.ReviewLog) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_log_repo")
	log.Debug("inserting review log: card_id=%s, rating=%s, effective=%s",
		entry.CardID, entry.Rating, entry.EffectiveRating)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_log (card_id, rating, effective_rating, reviewed_at)
VALUES (?, ?, ?, ?)
`, entry.CardID, int(entry.Rating), int(entry.EffectiveRating), entry.ReviewedAt.UTC())
	if err != nil {
		log.Error("failed to insert review log: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *reviewLogRepository) ListByCard(ctx context.Context, cardID string) ([]models.ReviewLog, error) {
	log := logger.FromContext(ctx).WithPrefix("review_log_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, card_id, rating, effective_rating, reviewed_at
FROM review_log
WHERE card_id = ?
ORDER BY reviewed_at
`, cardID)
	if err != nil {
		log.Error("failed to list review log: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReviewLog
	for rows.Next() {
		var e models.ReviewLog
		var rating, effective int
		if err := rows.Scan(&e.ID, &e.CardID, &rating, &effective, &e.ReviewedAt); err != nil {
			log.Error("failed to scan review log row: %v", err)
			return nil, err
		}
		e.Rating = models.Rating(rating)
		e.EffectiveRating = models.Rating(effective)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
