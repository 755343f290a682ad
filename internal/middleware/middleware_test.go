package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(handlerErr error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	app.Get("/fail", func(c *fiber.Ctx) error { return handlerErr })
	app.Get("/id", func(c *fiber.Ctx) error { return c.SendString(middleware.RequestID(c)) })
	return app
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", domain.NewQuizNotFoundError(3), http.StatusNotFound, `{"detail":"Quiz with ID 3 not found"}`},
		{"invalid input", domain.NewInvalidInputError("url: field required"), http.StatusUnprocessableEntity, `{"detail":"url: field required"}`},
		{"outermost code wins", domain.NewInternalError("Failed to fetch quiz details", domain.NewQuizNotFoundError(3)), http.StatusInternalServerError,
			`{"detail":"Failed to fetch quiz details: Quiz with ID 3 not found"}`},
		{"generation error", domain.NewGenerationError(domain.NewConfigurationError("GEMINI_API_KEY not found in environment variables")), http.StatusInternalServerError,
			`{"detail":"quiz generation failed: GEMINI_API_KEY not found in environment variables"}`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `{"detail":"boom"}`},
		{"fiber error", fiber.NewError(fiber.StatusBadRequest, "bad"), http.StatusBadRequest, `{"detail":"bad"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newTestApp(tt.err).Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.body, string(body))
		})
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	app := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/id", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Len(t, string(body), 26)
	assert.Equal(t, string(body), resp.Header.Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-supplied")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "client-supplied", string(body))
}
