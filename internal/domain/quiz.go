package domain

import (
	"context"
	"strings"
)

// QuestionType tags the question variants the generator may produce.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionFillInBlank    QuestionType = "fill_in_blank"
	QuestionVocabulary     QuestionType = "vocabulary"
)

// QuizType selects what kind of questions the generator is asked for.
type QuizType string

const (
	QuizTypeMixed          QuizType = "mixed"
	QuizTypeMultipleChoice QuizType = "multiple_choice"
	QuizTypeFillInBlank    QuizType = "fill_in_blank"
	QuizTypeVocabulary     QuizType = "vocabulary"
)

// Difficulty is the learner level the quiz is targeted at.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (t QuizType) Valid() bool {
	switch t {
	case QuizTypeMixed, QuizTypeMultipleChoice, QuizTypeFillInBlank, QuizTypeVocabulary:
		return true
	}
	return false
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Question is one generated quiz item. Options is only populated for
// multiple choice questions; vocabulary questions come back in one of the
// two structural shapes depending on how the model phrased them.
type Question struct {
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Context       string       `json:"context"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
}

// Validate checks the structural invariants of a single question.
func (q *Question) Validate() error {
	switch q.Type {
	case QuestionMultipleChoice:
		if len(q.Options) == 0 {
			return NewInvalidQuizDataError("multiple choice question has no options")
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return NewInvalidQuizDataError("correct answer is not one of the options")
		}
	case QuestionFillInBlank, QuestionVocabulary:
		// No option list to cross-check.
	default:
		return NewInvalidQuizDataError("unknown question type: " + string(q.Type))
	}
	if strings.TrimSpace(q.Question) == "" {
		return NewInvalidQuizDataError("question text is empty")
	}
	if q.CorrectAnswer == "" {
		return NewInvalidQuizDataError("question is missing its correct answer")
	}
	return nil
}

// Quiz is an ordered set of questions. Insertion order is display order
// and grading order.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return NewInvalidQuizDataError("quiz has no questions")
	}
	for _, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TranscriptFetcher retrieves the caption track of a video as plain text.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// QuizGenerator turns a transcript into a quiz via an LLM.
type QuizGenerator interface {
	Generate(ctx context.Context, transcript string, quizType QuizType, difficulty Difficulty) (*Quiz, error)
}

// HistoryRepository is the append-only store of graded quiz attempts.
type HistoryRepository interface {
	SaveAttempt(ctx context.Context, attempt *QuizAttemptRecord) error
	GetHistoryByUserID(ctx context.Context, userID string) ([]*QuizAttemptRecord, error)
}
