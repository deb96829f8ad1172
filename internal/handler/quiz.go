package handler

import (
	"github.com/AnjaBuckley/GermanTube-Learning/internal/domain"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/dto"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service *service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service *service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz handles POST /api/quiz/generate
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.YouTubeURL == "" {
		return domain.NewInvalidInputError("youtube_url is required")
	}

	resp, err := h.service.GenerateQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitQuiz handles POST /api/quiz/submit
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.SubmitQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHistory handles GET /api/history
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	resp, err := h.service.GetHistory(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
