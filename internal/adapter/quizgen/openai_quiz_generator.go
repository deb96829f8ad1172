package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/AnjaBuckley/GermanTube-Learning/internal/domain"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// MaxTranscriptChars bounds the prompt size. Longer transcripts are hard
// truncated, which can cut mid-sentence near the boundary.
const MaxTranscriptChars = 14000

const promptTemplate = `
You are a German language teacher. Create a quiz based on the following German transcript.
The quiz is for %s level English speakers learning German.

Quiz type: %s

For multiple choice questions, provide 4 options with one correct answer.
For fill-in-the-blank questions, provide the sentence with a blank and the correct word.
For vocabulary questions, ask about important words from the transcript.

Format the quiz in JSON with the following structure:
{
    "questions": [
        {
            "type": "multiple_choice",
            "question": "Question text in English",
            "context": "Related part from the transcript in German",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correct_answer": "Option A",
            "explanation": "Explanation why this is correct"
        },
        {
            "type": "fill_in_blank",
            "question": "Complete this sentence: Der Mann ___ in das Haus.",
            "context": "Related part from the transcript in German",
            "correct_answer": "geht",
            "explanation": "Explanation of the grammar or vocabulary"
        }
    ]
}

Create 5 questions total, mixing different types if quiz_type is "mixed".

Transcript:
%s`

// OpenAIQuizGenerator implements domain.QuizGenerator on top of the
// langchaingo OpenAI client.
type OpenAIQuizGenerator struct {
	llm         llms.Model
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewOpenAIQuizGenerator creates the generator. The API key must be
// non-empty; a missing credential is a startup failure, not a per-request
// one.
func NewOpenAIQuizGenerator(apiKey, model string, temperature float64, timeout time.Duration) (domain.QuizGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenAI model name cannot be empty")
	}

	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	logger.Get().Info("Initialized OpenAI quiz generator", zap.String("model", model))
	return &OpenAIQuizGenerator{
		llm:         llm,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger.Get(),
	}, nil
}

// Generate builds the instruction prompt, runs one completion request and
// parses the response into a Quiz. No retries; a failed attempt is
// terminal and the caller starts over.
func (g *OpenAIQuizGenerator) Generate(ctx context.Context, transcript string, quizType domain.QuizType, difficulty domain.Difficulty) (*domain.Quiz, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, domain.NewGenerationFailedError("transcript is empty", nil)
	}
	transcript = TruncateTranscript(transcript)

	prompt := fmt.Sprintf(promptTemplate, difficulty, quizType, transcript)

	g.logger.Info("Calling LLM for quiz generation",
		zap.String("quiz_type", string(quizType)),
		zap.String("difficulty", string(difficulty)),
		zap.Int("transcript_chars", len(transcript)),
	)

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("LLM completion failed", zap.Error(err))
		return nil, domain.NewGenerationFailedError("failed to generate quiz", err)
	}

	quiz, err := ParseQuizResponse(completion)
	if err != nil {
		g.logger.Error("Failed to parse LLM response", zap.Error(err))
		return nil, err
	}

	g.logger.Info("Quiz generated", zap.Int("questions", len(quiz.Questions)))
	return quiz, nil
}

// TruncateTranscript hard-truncates the transcript to the prompt budget.
func TruncateTranscript(transcript string) string {
	if len(transcript) > MaxTranscriptChars {
		return transcript[:MaxTranscriptChars]
	}
	return transcript
}

// ExtractJSON pulls the JSON payload out of a model response. Strategy, in
// order: a fenced block tagged json, then any fenced block, then the whole
// response.
func ExtractJSON(response string) string {
	if idx := strings.Index(response, "```json"); idx != -1 {
		rest := response[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
	}
	if idx := strings.Index(response, "```"); idx != -1 {
		rest := response[idx+len("```"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
	}
	return strings.TrimSpace(response)
}

// ParseQuizResponse extracts and validates the quiz structure from the raw
// completion text.
func ParseQuizResponse(response string) (*domain.Quiz, error) {
	payload := ExtractJSON(response)

	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
		return nil, domain.NewGenerationFailedError("model response is not valid quiz JSON", err)
	}
	if err := quiz.Validate(); err != nil {
		// A structurally broken quiz is a failed generation attempt, not a
		// grading-time error.
		return nil, domain.NewGenerationFailedError("generated quiz failed validation", err)
	}
	return &quiz, nil
}

var _ domain.QuizGenerator = (*OpenAIQuizGenerator)(nil)
