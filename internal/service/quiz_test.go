package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/AnjaBuckley/GermanTube-Learning/internal/config"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/domain"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/dto"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "info"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func generatedQuiz() *domain.Quiz {
	return &domain.Quiz{Questions: []domain.Question{
		{
			Type:          domain.QuestionMultipleChoice,
			Question:      "Pick B",
			Context:       "Kontext",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "B",
			Explanation:   "B is correct.",
		},
		{
			Type:          domain.QuestionFillInBlank,
			Question:      "Complete: Der Mann ___ in das Haus.",
			CorrectAnswer: "geht",
			Explanation:   "Third person singular.",
		},
	}}
}

func newTestService() (*QuizService, *MockTranscriptFetcher, *MockQuizGenerator, *MockHistoryRepository) {
	fetcher := new(MockTranscriptFetcher)
	generator := new(MockQuizGenerator)
	history := new(MockHistoryRepository)
	return NewQuizService(fetcher, generator, history), fetcher, generator, history
}

func TestGenerateQuiz(t *testing.T) {
	t.Run("happy path withholds answers", func(t *testing.T) {
		svc, fetcher, generator, _ := newTestService()

		fetcher.On("Fetch", mock.Anything, "abc123").Return("Guten Tag", nil)
		generator.On("Generate", mock.Anything, "Guten Tag", domain.QuizTypeMixed, domain.DifficultyIntermediate).
			Return(generatedQuiz(), nil)

		resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
			YouTubeURL: "https://youtu.be/abc123",
			QuizType:   "mixed",
			Difficulty: "intermediate",
		})
		require.NoError(t, err)
		assert.Equal(t, "abc123", resp.VideoID)
		require.Len(t, resp.Questions, 2)
		assert.Equal(t, "Pick B", resp.Questions[0].Question)
		assert.Equal(t, []string{"A", "B", "C", "D"}, resp.Questions[0].Options)

		fetcher.AssertExpectations(t)
		generator.AssertExpectations(t)
	})

	t.Run("defaults applied for empty type and difficulty", func(t *testing.T) {
		svc, fetcher, generator, _ := newTestService()

		fetcher.On("Fetch", mock.Anything, "xyz789").Return("Hallo", nil)
		generator.On("Generate", mock.Anything, "Hallo", domain.QuizTypeMixed, domain.DifficultyIntermediate).
			Return(generatedQuiz(), nil)

		_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
			YouTubeURL: "https://youtube.com/watch?v=xyz789&t=5",
		})
		require.NoError(t, err)
		generator.AssertExpectations(t)
	})

	t.Run("invalid url", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
			YouTubeURL: "not a url",
		})
		require.Error(t, err)
		domainErr, ok := err.(*domain.DomainError)
		require.True(t, ok)
		assert.Equal(t, domain.CodeInvalidURL, domainErr.Code)
	})

	t.Run("invalid quiz type", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
			YouTubeURL: "https://youtu.be/abc123",
			QuizType:   "essay",
		})
		require.Error(t, err)
		domainErr, ok := err.(*domain.DomainError)
		require.True(t, ok)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	})

	t.Run("transcript failure propagates", func(t *testing.T) {
		svc, fetcher, _, _ := newTestService()

		fetcher.On("Fetch", mock.Anything, "abc123").
			Return("", domain.NewTranscriptUnavailableError("abc123", nil))

		_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
			YouTubeURL: "https://youtu.be/abc123",
		})
		require.Error(t, err)
		domainErr, ok := err.(*domain.DomainError)
		require.True(t, ok)
		assert.Equal(t, domain.CodeTranscriptUnavailable, domainErr.Code)
	})

	t.Run("generation failure propagates", func(t *testing.T) {
		svc, fetcher, generator, _ := newTestService()

		fetcher.On("Fetch", mock.Anything, "abc123").Return("Guten Tag", nil)
		generator.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.NewGenerationFailedError("boom", nil))

		_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
			YouTubeURL: "https://youtu.be/abc123",
		})
		require.Error(t, err)
		domainErr, ok := err.(*domain.DomainError)
		require.True(t, ok)
		assert.Equal(t, domain.CodeGenerationFailed, domainErr.Code)
	})
}

func TestSubmitQuiz(t *testing.T) {
	openSession := func(t *testing.T, svc *QuizService, fetcher *MockTranscriptFetcher, generator *MockQuizGenerator) {
		t.Helper()
		fetcher.On("Fetch", mock.Anything, "abc123").Return("Guten Tag", nil)
		generator.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(generatedQuiz(), nil)
		_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
			YouTubeURL: "https://youtu.be/abc123",
		})
		require.NoError(t, err)
	}

	t.Run("grades and persists", func(t *testing.T) {
		svc, fetcher, generator, history := newTestService()
		openSession(t, svc, fetcher, generator)

		history.On("SaveAttempt", mock.Anything, mock.MatchedBy(func(r *domain.QuizAttemptRecord) bool {
			return r.UserID == DefaultUserID &&
				r.VideoID == "abc123" &&
				r.Score == 2 &&
				r.TotalQuestions == 2 &&
				len(r.Results) == 2 &&
				!r.Timestamp.IsZero()
		})).Return(nil)

		resp, err := svc.SubmitQuiz(context.Background(), &dto.SubmitQuizRequest{
			Answers: []string{"b", "Geht"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Score)
		assert.Equal(t, 2, resp.Total)
		assert.True(t, resp.Results[0].IsCorrect)
		assert.True(t, resp.Results[1].IsCorrect)

		history.AssertExpectations(t)
	})

	t.Run("no session", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.SubmitQuiz(context.Background(), &dto.SubmitQuizRequest{Answers: []string{"B"}})
		require.Error(t, err)
		domainErr, ok := err.(*domain.DomainError)
		require.True(t, ok)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	})

	t.Run("double submit rejected", func(t *testing.T) {
		svc, fetcher, generator, history := newTestService()
		openSession(t, svc, fetcher, generator)

		history.On("SaveAttempt", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.SubmitQuiz(context.Background(), &dto.SubmitQuizRequest{Answers: []string{"B", "geht"}})
		require.NoError(t, err)

		_, err = svc.SubmitQuiz(context.Background(), &dto.SubmitQuizRequest{Answers: []string{"B", "geht"}})
		assert.Error(t, err)
	})

	t.Run("storage failure aborts the submission", func(t *testing.T) {
		svc, fetcher, generator, history := newTestService()
		openSession(t, svc, fetcher, generator)

		history.On("SaveAttempt", mock.Anything, mock.Anything).
			Return(domain.NewStorageError("disk gone", nil))

		_, err := svc.SubmitQuiz(context.Background(), &dto.SubmitQuizRequest{Answers: []string{"B", "geht"}})
		require.Error(t, err)
		domainErr, ok := err.(*domain.DomainError)
		require.True(t, ok)
		assert.Equal(t, domain.CodeStorageError, domainErr.Code)
	})
}

func TestGetHistory(t *testing.T) {
	t.Run("summary aggregates", func(t *testing.T) {
		svc, _, _, history := newTestService()

		base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		records := []*domain.QuizAttemptRecord{
			{ID: 3, UserID: DefaultUserID, VideoID: "vid2", Score: 5, TotalQuestions: 5, Timestamp: base.Add(2 * time.Hour)},
			{ID: 2, UserID: DefaultUserID, VideoID: "vid1", Score: 4, TotalQuestions: 5, Timestamp: base.Add(time.Hour)},
			{ID: 1, UserID: DefaultUserID, VideoID: "vid1", Score: 3, TotalQuestions: 5, Timestamp: base},
		}
		history.On("GetHistoryByUserID", mock.Anything, DefaultUserID).Return(records, nil)

		resp, err := svc.GetHistory(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 3, resp.Summary.TotalQuizzes)
		assert.Equal(t, 2, resp.Summary.VideosStudied)
		// (100 + 80 + 60) / 3
		assert.InDelta(t, 80.0, resp.Summary.AverageScorePercent, 0.01)

		require.Len(t, resp.Attempts, 3)
		assert.Equal(t, "vid2", resp.Attempts[0].VideoID)
		assert.InDelta(t, 100.0, resp.Attempts[0].ScorePercent, 0.01)
	})

	t.Run("empty history", func(t *testing.T) {
		svc, _, _, history := newTestService()
		history.On("GetHistoryByUserID", mock.Anything, DefaultUserID).
			Return([]*domain.QuizAttemptRecord{}, nil)

		resp, err := svc.GetHistory(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Summary.TotalQuizzes)
		assert.Equal(t, 0.0, resp.Summary.AverageScorePercent)
		assert.Empty(t, resp.Attempts)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		svc, _, _, history := newTestService()
		history.On("GetHistoryByUserID", mock.Anything, DefaultUserID).
			Return(nil, domain.NewStorageError("disk gone", nil))

		_, err := svc.GetHistory(context.Background())
		require.Error(t, err)
	})
}
