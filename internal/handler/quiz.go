package handler

import (
	"strconv"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// APIVersion is reported by GET /.
const APIVersion = "1.0.0"

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// RegisterRoutes mounts every quiz endpoint on r.
func (h *QuizHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.Root)
	r.Post("/generate_quiz", h.GenerateQuiz)
	r.Get("/history", h.GetHistory)
	r.Get("/quiz/:id", h.GetQuiz)
	r.Post("/preview_url", h.PreviewURL)
}

// Root godoc
// @Summary API health check
// @Description Reports that the API is running and lists its endpoints
// @Tags system
// @Produce json
// @Success 200 {object} dto.RootResponse
// @Router / [get]
func (h *QuizHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.RootResponse{
		Message: "AI Wiki Quiz Generator API is running",
		Version: APIVersion,
		Endpoints: map[string]string{
			"generate_quiz": "POST /generate_quiz",
			"history":       "GET /history",
			"quiz_detail":   "GET /quiz/{quiz_id}",
			"preview_url":   "POST /preview_url",
		},
	})
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a Wikipedia article
// @Description Scrapes the article, asks the completion service for a quiz, stores and returns it
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Article URL"
// @Success 200 {object} dto.QuizResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
	}
	if req.URL == nil {
		return domain.NewInvalidInputError("url: field required")
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), *req.URL)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHistory godoc
// @Summary List generated quizzes
// @Description Returns every stored quiz, newest first
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizHistoryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	items, err := h.service.GetHistory(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetQuiz godoc
// @Summary Get a stored quiz
// @Description Returns the full quiz stored under the given id
// @Tags quiz
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return domain.NewInvalidInputError("quiz_id: value is not a valid integer")
	}

	resp, err := h.service.GetQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PreviewURL godoc
// @Summary Check a Wikipedia URL
// @Description Fetches the page and reports whether a quiz can be generated from it
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.PreviewURLRequest true "Article URL"
// @Success 200 {object} dto.PreviewResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /preview_url [post]
func (h *QuizHandler) PreviewURL(c *fiber.Ctx) error {
	var req dto.PreviewURLRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
	}
	if req.URL == nil {
		return domain.NewInvalidInputError("url: field required")
	}
	return c.JSON(h.service.PreviewURL(c.UserContext(), *req.URL))
}
