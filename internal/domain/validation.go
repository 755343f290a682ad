package domain

import (
	"fmt"
	"strings"
)

// ValidationError describes one structural problem at a JSON path.
type ValidationError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

const (
	CodeMissingField ErrorCode = "MISSING_FIELD"
	CodeInvalidType  ErrorCode = "INVALID_TYPE"
)

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field error found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeMissingField,
		Message: "field required",
	}
}

func NewInvalidTypeError(field, expected string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("expected %s", expected),
	}
}
