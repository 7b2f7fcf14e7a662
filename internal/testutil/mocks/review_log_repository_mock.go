package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
)

// MockReviewLogRepository is a mock implementation of repository.ReviewLogRepository
type MockReviewLogRepository struct {
	mock.Mock
}

func (m *MockReviewLogRepository) Insert(ctx context.Context, entry models.ReviewLog) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewLogRepository) ListByCard(ctx context.Context, cardID string) ([]models.ReviewLog, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewLog), args.Error(1)
}
