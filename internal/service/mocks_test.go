package service

import (
	"context"

	"github.com/AnjaBuckley/GermanTube-Learning/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockTranscriptFetcher ---
type MockTranscriptFetcher struct {
	mock.Mock
}

func (m *MockTranscriptFetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	args := m.Called(ctx, videoID)
	return args.String(0), args.Error(1)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) Generate(ctx context.Context, transcript string, quizType domain.QuizType, difficulty domain.Difficulty) (*domain.Quiz, error) {
	args := m.Called(ctx, transcript, quizType, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

// --- MockHistoryRepository ---
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) SaveAttempt(ctx context.Context, attempt *domain.QuizAttemptRecord) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetHistoryByUserID(ctx context.Context, userID string) ([]*domain.QuizAttemptRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizAttemptRecord), args.Error(1)
}
