package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Helper functions shared across repository implementations

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	return nil
}

// Timestamps are stored as RFC 3339 text so an unreadable value can degrade
// to nil instead of failing the scan.

func encodeTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// decodeTime parses a stored timestamp. Unparseable text resolves to nil,
// which the due-set selector treats as "always due".
func decodeTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// Tags are a set of strings stored as one tab-separated column.

func encodeTags(tags []string) string {
	return strings.Join(tags, "\t")
}

func decodeTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\t")
}
