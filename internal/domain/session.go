package domain

import (
	"strings"
	"time"
)

// SessionState tracks the lifecycle of a quiz session. There is no
// transition back from Submitted; a new quiz opens a new session.
type SessionState int

const (
	AwaitingAnswers SessionState = iota
	Submitted
)

// QuestionResult is the graded outcome of a single question.
type QuestionResult struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// QuizAttemptRecord is the persisted outcome of one graded quiz session.
// It is written once at submission time and never updated.
type QuizAttemptRecord struct {
	ID             int64
	UserID         string
	VideoID        string
	Score          int
	TotalQuestions int
	Results        []QuestionResult
	Timestamp      time.Time
}

// GradedAttempt is the result of grading a session, prior to persistence.
type GradedAttempt struct {
	VideoID string
	Score   int
	Total   int
	Results []QuestionResult
}

// QuizSession holds one generated quiz while the user answers it.
type QuizSession struct {
	VideoID string
	Quiz    *Quiz
	State   SessionState
}

// NewQuizSession opens a session for a freshly generated quiz. The quiz is
// validated up front so grading can never encounter a question without a
// correct answer.
func NewQuizSession(videoID string, quiz *Quiz) (*QuizSession, error) {
	if quiz == nil {
		return nil, NewInvalidQuizDataError("quiz is nil")
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	return &QuizSession{
		VideoID: videoID,
		Quiz:    quiz,
		State:   AwaitingAnswers,
	}, nil
}

// GradeQuiz grades user answers against the quiz in question order.
// Correctness is case-insensitive exact equality; an unanswered question is
// an empty string and never matches a non-empty correct answer. The
// answers slice is positional and may be shorter than the question list.
func GradeQuiz(quiz *Quiz, answers []string) (int, []QuestionResult) {
	score := 0
	results := make([]QuestionResult, 0, len(quiz.Questions))

	for i, q := range quiz.Questions {
		userAnswer := ""
		if i < len(answers) {
			userAnswer = answers[i]
		}
		isCorrect := userAnswer != "" && strings.EqualFold(userAnswer, q.CorrectAnswer)
		if isCorrect {
			score++
		}
		results = append(results, QuestionResult{
			Question:      q.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	return score, results
}

// Submit transitions the session to Submitted and returns the graded
// attempt. Submitting twice is an error.
func (s *QuizSession) Submit(answers []string) (*GradedAttempt, error) {
	if s.State == Submitted {
		return nil, NewInvalidInputError("quiz has already been submitted")
	}
	if err := s.Quiz.Validate(); err != nil {
		return nil, err
	}
	if len(answers) > len(s.Quiz.Questions) {
		return nil, NewInvalidInputError("more answers than questions")
	}

	score, results := GradeQuiz(s.Quiz, answers)
	s.State = Submitted

	return &GradedAttempt{
		VideoID: s.VideoID,
		Score:   score,
		Total:   len(s.Quiz.Questions),
		Results: results,
	}, nil
}
