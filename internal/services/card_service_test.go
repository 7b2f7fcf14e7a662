package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/errors"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/scheduler"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/testutil/mocks"
)

func TestCardService_CreateValidatesFront(t *testing.T) {
	svc := NewCardService(new(mocks.MockCardRepository), new(mocks.MockDeckRepository), nil, nil)

	_, err := svc.Create(context.Background(), models.Flashcard{Front: "   ", Back: "back"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestCardService_CreateAutoFillsBackFromSuggester(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	suggester := new(mocks.MockSuggester)
	svc := NewCardService(cards, new(mocks.MockDeckRepository), nil, suggester)
	ctx := context.Background()

	suggester.On("Suggest", mock.Anything, "What is TCP?").
		Return("  Transmission Control Protocol  ", nil)
	cards.On("Insert", mock.Anything, mock.MatchedBy(func(c models.Flashcard) bool {
		return c.Back == "Transmission Control Protocol"
	})).Return("card-1", nil)
	cards.On("Get", mock.Anything, "card-1").
		Return(&models.Flashcard{ID: "card-1"}, nil)

	created, err := svc.Create(ctx, models.Flashcard{Front: "What is TCP?"})
	require.NoError(t, err)
	assert.Equal(t, "card-1", created.ID)
	suggester.AssertExpectations(t)
	cards.AssertExpectations(t)
}

func TestCardService_CreateSuggesterFailureStillRequiresBack(t *testing.T) {
	suggester := new(mocks.MockSuggester)
	svc := NewCardService(new(mocks.MockCardRepository), new(mocks.MockDeckRepository), nil, suggester)

	suggester.On("Suggest", mock.Anything, "front").Return("", assert.AnError)

	_, err := svc.Create(context.Background(), models.Flashcard{Front: "front"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestCardService_CreateRejectsUnknownDeck(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := NewCardService(new(mocks.MockCardRepository), decks, nil, nil)

	decks.On("Get", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.Create(context.Background(), models.Flashcard{DeckID: "ghost", Front: "f", Back: "b"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestCardService_CreateResetsSchedulingState(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	svc := NewCardService(cards, new(mocks.MockDeckRepository), nil, nil)

	when := time.Now()
	dirty := models.Flashcard{
		Front:        "front",
		Back:         "back",
		EaseFactor:   1.3,
		Repetitions:  9,
		IntervalDays: 42,
		LastReviewed: &when,
		NextReview:   &when,
	}

	cards.On("Insert", mock.Anything, mock.MatchedBy(func(c models.Flashcard) bool {
		return c.EaseFactor == models.DefaultEaseFactor &&
			c.Repetitions == 0 && c.IntervalDays == 0 &&
			c.LastReviewed == nil && c.NextReview == nil
	})).Return("card-1", nil)
	cards.On("Get", mock.Anything, "card-1").
		Return(&models.Flashcard{ID: "card-1"}, nil)

	_, err := svc.Create(context.Background(), dirty)
	require.NoError(t, err)
	cards.AssertExpectations(t)
}

func TestCardService_GetNotFound(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	svc := NewCardService(cards, new(mocks.MockDeckRepository), nil, nil)

	cards.On("Get", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.Get(context.Background(), "missing")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestCardService_UpdatePreservesScheduling(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	svc := NewCardService(cards, new(mocks.MockDeckRepository), nil, nil)

	reviewed := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	next := reviewed.AddDate(0, 0, 6)
	existing := &models.Flashcard{
		ID:           "card-1",
		DeckID:       models.DeckUnassigned,
		Front:        "old front",
		Back:         "old back",
		EaseFactor:   2.2,
		Repetitions:  3,
		IntervalDays: 6,
		LastReviewed: &reviewed,
		NextReview:   &next,
		CreatedAt:    reviewed.AddDate(0, -1, 0),
	}

	cards.On("Get", mock.Anything, "card-1").Return(existing, nil)
	cards.On("Update", mock.Anything, mock.MatchedBy(func(c models.Flashcard) bool {
		return c.Front == "new front" &&
			c.EaseFactor == 2.2 && c.Repetitions == 3 && c.IntervalDays == 6 &&
			c.LastReviewed.Equal(reviewed) && c.NextReview.Equal(next) &&
			c.CreatedAt.Equal(existing.CreatedAt)
	})).Return(nil)

	updated, err := svc.Update(context.Background(), models.Flashcard{
		ID:    "card-1",
		Front: "new front",
		Back:  "new back",
		// A stale client may send zeroed scheduling fields; they must not win.
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Repetitions)
	cards.AssertExpectations(t)
}

func TestCardService_DeleteNotFound(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	svc := NewCardService(cards, new(mocks.MockDeckRepository), nil, nil)

	cards.On("Get", mock.Anything, "missing").Return(nil, nil)

	err := svc.Delete(context.Background(), "missing")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestCardService_ReviewSchedulesAndLogs(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	logs := new(mocks.MockReviewLogRepository)
	svc := NewCardService(cards, new(mocks.MockDeckRepository), logs, nil)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	origNow := timeNow
	timeNow = func() time.Time { return now }
	defer func() { timeNow = origNow }()

	card := models.Flashcard{ID: "card-1", EaseFactor: 2.5, Repetitions: 1, IntervalDays: 1}
	want := scheduler.Schedule(card, models.RatingHard, now)

	cards.On("Get", mock.Anything, "card-1").Return(&card, nil)
	cards.On("Update", mock.Anything, want).Return(nil)
	logs.On("Insert", mock.Anything, mock.MatchedBy(func(e models.ReviewLog) bool {
		// Hint usage downgrades the persisted rating but not the raw one.
		return e.CardID == "card-1" &&
			e.Rating == models.RatingCorrect &&
			e.EffectiveRating == models.RatingHard
	})).Return(int64(1), nil)

	updated, err := svc.Review(context.Background(), "card-1", models.RatingCorrect, true)
	require.NoError(t, err)
	assert.Equal(t, want.IntervalDays, updated.IntervalDays)
	cards.AssertExpectations(t)
	logs.AssertExpectations(t)
}

func TestCardService_ReviewRejectsInvalidRating(t *testing.T) {
	svc := NewCardService(new(mocks.MockCardRepository), new(mocks.MockDeckRepository), nil, nil)

	_, err := svc.Review(context.Background(), "card-1", models.Rating(7), false)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestCardService_ReviewLogFailureDoesNotFailReview(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	logs := new(mocks.MockReviewLogRepository)
	svc := NewCardService(cards, new(mocks.MockDeckRepository), logs, nil)

	card := models.Flashcard{ID: "card-1", EaseFactor: 2.5}
	cards.On("Get", mock.Anything, "card-1").Return(&card, nil)
	cards.On("Update", mock.Anything, mock.Anything).Return(nil)
	logs.On("Insert", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	_, err := svc.Review(context.Background(), "card-1", models.RatingCorrect, false)
	assert.NoError(t, err)
}
