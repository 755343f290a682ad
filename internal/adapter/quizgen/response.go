package quizgen

import (
	"encoding/json"
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/validation"
)

const (
	codeFence = "```"

	// invalidJSONSnippetChars bounds the response text kept on an INVALID_JSON error.
	invalidJSONSnippetChars = 500
)

// StripCodeFence trims the response and, when it opens with a markdown fence,
// drops the opening fence line and a closing fence line if there is one.
func StripCodeFence(response string) string {
	response = strings.TrimSpace(response)
	if !strings.HasPrefix(response, codeFence) {
		return response
	}

	lines := strings.Split(response, "\n")
	if strings.HasPrefix(lines[0], codeFence) {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == codeFence {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ParseQuizPayload cleans a raw completion, decodes it and checks it against
// the quiz shape. It fails with INVALID_JSON or SCHEMA_VALIDATION.
func ParseQuizPayload(response string) (*domain.QuizPayload, error) {
	cleaned := StripCodeFence(response)

	var doc interface{}
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, domain.NewInvalidJSONError(truncateChars(cleaned, invalidJSONSnippetChars), err)
	}

	if errs := validation.NewValidator().ValidateQuizPayload(doc); len(errs) > 0 {
		return nil, domain.NewSchemaValidationError(errs)
	}

	var payload domain.QuizPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		// Unreachable once the structural check has passed.
		return nil, domain.NewSchemaValidationError(domain.ValidationErrors{
			domain.NewInvalidTypeError("$", "quiz object"),
		})
	}
	return &payload, nil
}
