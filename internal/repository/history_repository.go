package repository

import (
	"context"
	"time"

	"github.com/AnjaBuckley/GermanTube-Learning/internal/domain"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const createQuizResultsTable = `
CREATE TABLE IF NOT EXISTS quiz_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT,
    video_id TEXT,
    score INTEGER,
    total_questions INTEGER,
    results TEXT,
    timestamp TEXT
)`

// sqlxHistoryRepository implements domain.HistoryRepository using sqlx.
type sqlxHistoryRepository struct {
	db *sqlx.DB
}

// NewSQLXHistoryRepository creates a new instance of sqlxHistoryRepository.
func NewSQLXHistoryRepository(db *sqlx.DB) domain.HistoryRepository {
	return &sqlxHistoryRepository{db: db}
}

// InitSchema idempotently ensures the quiz_results table exists. Safe to
// call on every process start; never drops existing data.
func InitSchema(db *sqlx.DB) error {
	if _, err := db.Exec(createQuizResultsTable); err != nil {
		return domain.NewStorageError("failed to initialize quiz_results schema", err)
	}
	return nil
}

func toModelQuizResult(record *domain.QuizAttemptRecord) *models.QuizResult {
	results := make(models.ResultList, 0, len(record.Results))
	for _, r := range record.Results {
		results = append(results, models.QuestionResult{
			Question:      r.Question,
			UserAnswer:    r.UserAnswer,
			CorrectAnswer: r.CorrectAnswer,
			IsCorrect:     r.IsCorrect,
			Explanation:   r.Explanation,
		})
	}
	return &models.QuizResult{
		UserID:         record.UserID,
		VideoID:        record.VideoID,
		Score:          record.Score,
		TotalQuestions: record.TotalQuestions,
		Results:        results,
		Timestamp:      record.Timestamp.Format(time.RFC3339),
	}
}

func toDomainQuizAttempt(row *models.QuizResult) (*domain.QuizAttemptRecord, error) {
	timestamp, err := time.Parse(time.RFC3339, row.Timestamp)
	if err != nil {
		return nil, domain.NewStorageError("malformed timestamp in quiz_results row", err)
	}
	results := make([]domain.QuestionResult, 0, len(row.Results))
	for _, r := range row.Results {
		results = append(results, domain.QuestionResult{
			Question:      r.Question,
			UserAnswer:    r.UserAnswer,
			CorrectAnswer: r.CorrectAnswer,
			IsCorrect:     r.IsCorrect,
			Explanation:   r.Explanation,
		})
	}
	return &domain.QuizAttemptRecord{
		ID:             row.ID,
		UserID:         row.UserID,
		VideoID:        row.VideoID,
		Score:          row.Score,
		TotalQuestions: row.TotalQuestions,
		Results:        results,
		Timestamp:      timestamp,
	}, nil
}

// SaveAttempt appends one attempt row. Rows are never updated or deleted.
func (r *sqlxHistoryRepository) SaveAttempt(ctx context.Context, record *domain.QuizAttemptRecord) error {
	row := toModelQuizResult(record)

	query := `INSERT INTO quiz_results (user_id, video_id, score, total_questions, results, timestamp)
	          VALUES (?, ?, ?, ?, ?, ?)`

	resultsValue, err := row.Results.Value()
	if err != nil {
		return domain.NewStorageError("failed to serialize quiz results", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		row.UserID,
		row.VideoID,
		row.Score,
		row.TotalQuestions,
		resultsValue,
		row.Timestamp,
	)
	if err != nil {
		return domain.NewStorageError("failed to save quiz attempt", err)
	}
	return nil
}

// GetHistoryByUserID returns all attempts for the identity, newest first.
func (r *sqlxHistoryRepository) GetHistoryByUserID(ctx context.Context, userID string) ([]*domain.QuizAttemptRecord, error) {
	query := `SELECT id, user_id, video_id, score, total_questions, results, timestamp FROM quiz_results WHERE user_id = ? ORDER BY timestamp DESC`

	var rows []models.QuizResult
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, domain.NewStorageError("failed to query quiz history", err)
	}

	records := make([]*domain.QuizAttemptRecord, 0, len(rows))
	for i := range rows {
		record, err := toDomainQuizAttempt(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
