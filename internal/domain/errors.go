package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Scraping errors
	CodeFetch           ErrorCode = "FETCH_ERROR"
	CodeContentNotFound ErrorCode = "CONTENT_NOT_FOUND"
	CodeEmptyContent    ErrorCode = "EMPTY_CONTENT"

	// Generation errors
	CodeConfiguration    ErrorCode = "CONFIGURATION_ERROR"
	CodeLLMServiceError  ErrorCode = "LLM_SERVICE_ERROR"
	CodeInvalidJSON      ErrorCode = "INVALID_JSON"
	CodeSchemaValidation ErrorCode = "SCHEMA_VALIDATION"
	CodeGeneration       ErrorCode = "GENERATION_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a diagnostic value to the error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether any DomainError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var domainErr *DomainError
		if !errors.As(err, &domainErr) {
			return false
		}
		if domainErr.Code == code {
			return true
		}
		err = domainErr.Cause
	}
	return false
}

// Helper functions for common errors
func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewQuizNotFoundError(quizID int64) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("Quiz with ID %d not found", quizID), nil)
}

func NewFetchError(url string, err error) *DomainError {
	return NewError(CodeFetch, "failed to fetch Wikipedia page", err).WithContext("url", url)
}

func NewContentNotFoundError() *DomainError {
	return NewError(CodeContentNotFound, "could not find main content area", nil)
}

func NewEmptyContentError() *DomainError {
	return NewError(CodeEmptyContent, "no content extracted from the article", nil)
}

func NewConfigurationError(message string) *DomainError {
	return NewError(CodeConfiguration, message, nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, "completion service call failed", err)
}

// NewInvalidJSONError keeps a bounded snippet of the unparseable response for diagnostics.
func NewInvalidJSONError(snippet string, err error) *DomainError {
	return NewError(CodeInvalidJSON, "invalid JSON response from completion service", err).
		WithContext("snippet", snippet)
}

func NewSchemaValidationError(errs ValidationErrors) *DomainError {
	return NewError(CodeSchemaValidation, "quiz response does not match the expected schema", errs).
		WithContext("errors", errs)
}

func NewGenerationError(err error) *DomainError {
	return NewError(CodeGeneration, "quiz generation failed", err)
}
