package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Insert(ctx context.Context, card models.Flashcard) (string, error) {
	args := m.Called(ctx, card)
	return args.String(0), args.Error(1)
}

func (m *MockCardRepository) Get(ctx context.Context, id string) (*models.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card models.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) ListByDeck(ctx context.Context, deckID string) ([]models.Flashcard, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockCardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Flashcard, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}
