package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/repository/sqlite"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/testutil"
)

func TestReviewLogRepository_InsertAndListByCard(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := sqlite.NewReviewLogRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	entries := []models.ReviewLog{
		{CardID: "card-1", Rating: models.RatingCorrect, EffectiveRating: models.RatingHard, ReviewedAt: base},
		{CardID: "card-1", Rating: models.RatingIncorrect, EffectiveRating: models.RatingIncorrect, ReviewedAt: base.Add(24 * time.Hour)},
		{CardID: "card-2", Rating: models.RatingHard, EffectiveRating: models.RatingHard, ReviewedAt: base},
	}
	for _, e := range entries {
		id, err := repo.Insert(ctx, e)
		require.NoError(t, err)
		assert.Positive(t, id)
	}

	got, err := repo.ListByCard(ctx, "card-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by reviewed_at; the hint downgrade keeps the raw rating intact.
	assert.Equal(t, models.RatingCorrect, got[0].Rating)
	assert.Equal(t, models.RatingHard, got[0].EffectiveRating)
	assert.Equal(t, models.RatingIncorrect, got[1].Rating)

	other, err := repo.ListByCard(ctx, "card-2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestReviewLogRepository_ListByCardEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := sqlite.NewReviewLogRepository(db)

	got, err := repo.ListByCard(context.Background(), "never-reviewed")
	require.NoError(t, err)
	assert.Empty(t, got)
}
