package dto

// GenerateQuizRequest is the body of POST /api/quiz/generate.
type GenerateQuizRequest struct {
	YouTubeURL string `json:"youtube_url"`
	QuizType   string `json:"quiz_type"`
	Difficulty string `json:"difficulty"`
}

// QuestionResponse is one question as shown to the user. Correct answers
// and explanations are withheld until submission.
type QuestionResponse struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Context  string   `json:"context,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// GenerateQuizResponse is the freshly opened quiz session.
type GenerateQuizResponse struct {
	VideoID   string             `json:"video_id"`
	Questions []QuestionResponse `json:"questions"`
}

// SubmitQuizRequest carries one answer per question, positionally.
// Unanswered questions may be empty strings or omitted from the tail.
type SubmitQuizRequest struct {
	Answers []string `json:"answers"`
}

// QuestionResultResponse is the graded outcome of one question.
type QuestionResultResponse struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// SubmitQuizResponse is the graded quiz with its per-question breakdown.
type SubmitQuizResponse struct {
	VideoID string                   `json:"video_id"`
	Score   int                      `json:"score"`
	Total   int                      `json:"total"`
	Results []QuestionResultResponse `json:"results"`
}

// AttemptResponse is one history row.
type AttemptResponse struct {
	ID             int64                    `json:"id"`
	VideoID        string                   `json:"video_id"`
	Score          int                      `json:"score"`
	TotalQuestions int                      `json:"total_questions"`
	ScorePercent   float64                  `json:"score_percent"`
	Results        []QuestionResultResponse `json:"results"`
	Timestamp      string                   `json:"timestamp"`
}

// HistorySummaryResponse carries the aggregate metrics of the history
// screen.
type HistorySummaryResponse struct {
	TotalQuizzes        int     `json:"total_quizzes"`
	AverageScorePercent float64 `json:"average_score_percent"`
	VideosStudied       int     `json:"videos_studied"`
}

// HistoryResponse is the body of GET /api/history.
type HistoryResponse struct {
	Summary  HistorySummaryResponse `json:"summary"`
	Attempts []AttemptResponse      `json:"attempts"`
}
