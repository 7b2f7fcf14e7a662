package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSuggester is a mock implementation of suggest.Suggester
type MockSuggester struct {
	mock.Mock
}

func (m *MockSuggester) Suggest(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}
