package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/errors"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/testutil/mocks"
)

func TestDeckService_Create(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := NewDeckService(decks)

	decks.On("GetByName", mock.Anything, "Spanish").Return(nil, nil)
	decks.On("Insert", mock.Anything, "Spanish").
		Return(&models.Deck{ID: "deck-1", Name: "Spanish"}, nil)

	deck, err := svc.Create(context.Background(), "  Spanish  ")
	require.NoError(t, err)
	assert.Equal(t, "deck-1", deck.ID)
	decks.AssertExpectations(t)
}

func TestDeckService_CreateRejectsEmptyName(t *testing.T) {
	svc := NewDeckService(new(mocks.MockDeckRepository))

	_, err := svc.Create(context.Background(), "   ")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestDeckService_CreateRejectsReservedName(t *testing.T) {
	svc := NewDeckService(new(mocks.MockDeckRepository))

	for _, name := range []string{"unassigned", "Unassigned", "UNASSIGNED"} {
		_, err := svc.Create(context.Background(), name)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	}
}

func TestDeckService_CreateRejectsDuplicateName(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := NewDeckService(decks)

	decks.On("GetByName", mock.Anything, "biology").
		Return(&models.Deck{ID: "deck-1", Name: "Biology"}, nil)

	_, err := svc.Create(context.Background(), "biology")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestDeckService_RenameToOwnNameAllowed(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := NewDeckService(decks)

	deck := &models.Deck{ID: "deck-1", Name: "History"}
	decks.On("Get", mock.Anything, "deck-1").Return(deck, nil)
	decks.On("GetByName", mock.Anything, "history").Return(deck, nil)
	decks.On("Rename", mock.Anything, "deck-1", "history").Return(nil)

	renamed, err := svc.Rename(context.Background(), "deck-1", "history")
	require.NoError(t, err)
	assert.Equal(t, "history", renamed.Name)
}

func TestDeckService_RenameToTakenNameRejected(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := NewDeckService(decks)

	decks.On("Get", mock.Anything, "deck-1").
		Return(&models.Deck{ID: "deck-1", Name: "History"}, nil)
	decks.On("GetByName", mock.Anything, "Biology").
		Return(&models.Deck{ID: "deck-2", Name: "Biology"}, nil)

	_, err := svc.Rename(context.Background(), "deck-1", "Biology")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestDeckService_DeleteGuardsSentinel(t *testing.T) {
	svc := NewDeckService(new(mocks.MockDeckRepository))

	_, err := svc.Delete(context.Background(), models.DeckUnassigned)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestDeckService_DeleteReportsReassignedCount(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := NewDeckService(decks)

	decks.On("Get", mock.Anything, "deck-1").
		Return(&models.Deck{ID: "deck-1", Name: "History"}, nil)
	decks.On("Delete", mock.Anything, "deck-1").Return(int64(7), nil)

	reassigned, err := svc.Delete(context.Background(), "deck-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), reassigned)
}

func TestDeckService_DeleteNotFound(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := NewDeckService(decks)

	decks.On("Get", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.Delete(context.Background(), "ghost")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}
