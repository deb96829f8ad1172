package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// QuestionResult is one graded question as stored inside the results
// column.
type QuestionResult struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// ResultList serializes the per-question breakdown to a JSON text column.
type ResultList []QuestionResult

// Value implements the driver.Valuer interface
func (r ResultList) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (r *ResultList) Scan(value interface{}) error {
	if value == nil {
		*r = ResultList{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("ResultList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*r = ResultList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, r)
}

// QuizResult is a row of the quiz_results table.
type QuizResult struct {
	ID             int64      `db:"id"`
	UserID         string     `db:"user_id"`
	VideoID        string     `db:"video_id"`
	Score          int        `db:"score"`
	TotalQuestions int        `db:"total_questions"`
	Results        ResultList `db:"results"`
	Timestamp      string     `db:"timestamp"`
}
