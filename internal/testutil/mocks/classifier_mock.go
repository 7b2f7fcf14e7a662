package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/gesture"
)

// MockClassifier is a mock implementation of gesture.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) InferOnFrame(ctx context.Context, frame gesture.Frame) (gesture.FeatureVector, error) {
	args := m.Called(ctx, frame)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gesture.FeatureVector), args.Error(1)
}

func (m *MockClassifier) Predict(ctx context.Context, features gesture.FeatureVector, k int) (*gesture.Prediction, error) {
	args := m.Called(ctx, features, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gesture.Prediction), args.Error(1)
}

func (m *MockClassifier) NumTrainedClasses() int {
	args := m.Called()
	return args.Int(0)
}

// MockFrameSource is a mock implementation of gesture.FrameSource
type MockFrameSource struct {
	mock.Mock
}

func (m *MockFrameSource) Frame(ctx context.Context) (gesture.Frame, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gesture.Frame), args.Error(1)
}

func (m *MockFrameSource) Close() error {
	args := m.Called()
	return args.Error(0)
}
