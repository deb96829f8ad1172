package service

import (
	"context"
	"math"
	"time"

	"github.com/AnjaBuckley/GermanTube-Learning/internal/adapter/transcript"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/domain"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/dto"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/logger"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultUserID is the fixed identity all history records are written
// under. Multi-user support would thread a real identity through here.
const DefaultUserID = "default_user"

// QuizService drives the generate/submit/history pipeline and owns the
// single active quiz session. The app is single-user by design, so one
// session at a time is enough; a new generate replaces it.
type QuizService struct {
	fetcher   domain.TranscriptFetcher
	generator domain.QuizGenerator
	history   domain.HistoryRepository
	session   *domain.QuizSession
}

func NewQuizService(fetcher domain.TranscriptFetcher, generator domain.QuizGenerator, history domain.HistoryRepository) *QuizService {
	return &QuizService{
		fetcher:   fetcher,
		generator: generator,
		history:   history,
	}
}

// GenerateQuiz runs the transcript → LLM → session pipeline for one video.
func (s *QuizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	quizType := domain.QuizType(req.QuizType)
	if req.QuizType == "" {
		quizType = domain.QuizTypeMixed
	}
	difficulty := domain.Difficulty(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = domain.DifficultyIntermediate
	}
	if !quizType.Valid() {
		return nil, domain.NewInvalidInputError("unknown quiz type: " + req.QuizType)
	}
	if !difficulty.Valid() {
		return nil, domain.NewInvalidInputError("unknown difficulty: " + req.Difficulty)
	}

	videoID, err := transcript.ExtractVideoID(req.YouTubeURL)
	if err != nil {
		return nil, err
	}

	text, err := s.fetcher.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.generator.Generate(ctx, text, quizType, difficulty)
	if err != nil {
		return nil, err
	}

	session, err := domain.NewQuizSession(videoID, quiz)
	if err != nil {
		return nil, err
	}
	s.session = session

	logger.Get().Info("Opened quiz session",
		zap.String("video_id", videoID),
		zap.String("quiz_type", string(quizType)),
		zap.String("difficulty", string(difficulty)),
		zap.Int("questions", len(quiz.Questions)),
	)

	questions := make([]dto.QuestionResponse, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, dto.QuestionResponse{
			Type:     string(q.Type),
			Question: q.Question,
			Context:  q.Context,
			Options:  q.Options,
		})
	}

	return &dto.GenerateQuizResponse{
		VideoID:   videoID,
		Questions: questions,
	}, nil
}

// SubmitQuiz grades the active session and persists the attempt. A storage
// failure aborts the submission but leaves the process running.
func (s *QuizService) SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	if s.session == nil {
		return nil, domain.NewInvalidInputError("no quiz in progress; generate a quiz first")
	}

	graded, err := s.session.Submit(req.Answers)
	if err != nil {
		return nil, err
	}

	record := &domain.QuizAttemptRecord{
		UserID:         DefaultUserID,
		VideoID:        graded.VideoID,
		Score:          graded.Score,
		TotalQuestions: graded.Total,
		Results:        graded.Results,
		Timestamp:      time.Now(),
	}
	if err := s.history.SaveAttempt(ctx, record); err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz submitted",
		zap.String("video_id", graded.VideoID),
		zap.Int("score", graded.Score),
		zap.Int("total", graded.Total),
	)

	return &dto.SubmitQuizResponse{
		VideoID: graded.VideoID,
		Score:   graded.Score,
		Total:   graded.Total,
		Results: toResultResponses(graded.Results),
	}, nil
}

// GetHistory returns all recorded attempts, newest first, with the
// history screen's summary metrics.
func (s *QuizService) GetHistory(ctx context.Context) (*dto.HistoryResponse, error) {
	records, err := s.history.GetHistoryByUserID(ctx, DefaultUserID)
	if err != nil {
		return nil, err
	}

	attempts := make([]dto.AttemptResponse, 0, len(records))
	for _, r := range records {
		attempts = append(attempts, dto.AttemptResponse{
			ID:             r.ID,
			VideoID:        r.VideoID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			ScorePercent:   scorePercent(r.Score, r.TotalQuestions),
			Results:        toResultResponses(r.Results),
			Timestamp:      r.Timestamp.Format(time.RFC3339),
		})
	}

	summary := dto.HistorySummaryResponse{
		TotalQuizzes: len(records),
		VideosStudied: len(lo.UniqBy(records, func(r *domain.QuizAttemptRecord) string {
			return r.VideoID
		})),
	}
	if len(records) > 0 {
		total := lo.SumBy(records, func(r *domain.QuizAttemptRecord) float64 {
			return scorePercent(r.Score, r.TotalQuestions)
		})
		summary.AverageScorePercent = roundToTenth(total / float64(len(records)))
	}

	return &dto.HistoryResponse{
		Summary:  summary,
		Attempts: attempts,
	}, nil
}

func toResultResponses(results []domain.QuestionResult) []dto.QuestionResultResponse {
	out := make([]dto.QuestionResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.QuestionResultResponse{
			Question:      r.Question,
			UserAnswer:    r.UserAnswer,
			CorrectAnswer: r.CorrectAnswer,
			IsCorrect:     r.IsCorrect,
			Explanation:   r.Explanation,
		})
	}
	return out
}

func scorePercent(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundToTenth(float64(score) / float64(total) * 100)
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
