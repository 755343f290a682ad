package validation

import (
	"fmt"

	"wiki-quiz/internal/domain"
)

// Validator checks decoded JSON against the quiz payload shape. Only presence
// and primitive/array types are checked; values are not.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizPayload validates a value produced by json.Unmarshal into an
// interface{}. Unknown keys are ignored.
func (v *Validator) ValidateQuizPayload(doc interface{}) domain.ValidationErrors {
	var errors domain.ValidationErrors

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return append(errors, domain.NewInvalidTypeError("$", "object"))
	}

	errors = append(errors, requireString(obj, "title", "title")...)
	errors = append(errors, requireString(obj, "summary", "summary")...)
	errors = append(errors, validateQuestions(obj)...)
	errors = append(errors, requireStringArray(obj, "key_entities", "key_entities")...)
	errors = append(errors, requireStringArray(obj, "related_topics", "related_topics")...)

	return errors
}

func validateQuestions(obj map[string]interface{}) domain.ValidationErrors {
	raw, present := obj["questions"]
	if !present || raw == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("questions")}
	}
	items, ok := raw.([]interface{})
	if !ok {
		return domain.ValidationErrors{domain.NewInvalidTypeError("questions", "array")}
	}

	var errors domain.ValidationErrors
	for i, item := range items {
		path := fmt.Sprintf("questions[%d]", i)
		q, ok := item.(map[string]interface{})
		if !ok {
			errors = append(errors, domain.NewInvalidTypeError(path, "object"))
			continue
		}
		errors = append(errors, requireString(q, "question", path+".question")...)
		errors = append(errors, requireStringArray(q, "options", path+".options")...)
		errors = append(errors, requireString(q, "correct_answer", path+".correct_answer")...)
		errors = append(errors, requireString(q, "explanation", path+".explanation")...)
		errors = append(errors, optionalString(q, "section", path+".section")...)
		errors = append(errors, optionalString(q, "difficulty", path+".difficulty")...)
	}
	return errors
}

func requireString(obj map[string]interface{}, key, path string) domain.ValidationErrors {
	raw, present := obj[key]
	if !present || raw == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError(path)}
	}
	if _, ok := raw.(string); !ok {
		return domain.ValidationErrors{domain.NewInvalidTypeError(path, "string")}
	}
	return nil
}

func optionalString(obj map[string]interface{}, key, path string) domain.ValidationErrors {
	raw, present := obj[key]
	if !present || raw == nil {
		return nil
	}
	if _, ok := raw.(string); !ok {
		return domain.ValidationErrors{domain.NewInvalidTypeError(path, "string or null")}
	}
	return nil
}

func requireStringArray(obj map[string]interface{}, key, path string) domain.ValidationErrors {
	raw, present := obj[key]
	if !present || raw == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError(path)}
	}
	items, ok := raw.([]interface{})
	if !ok {
		return domain.ValidationErrors{domain.NewInvalidTypeError(path, "array of strings")}
	}

	var errors domain.ValidationErrors
	for i, item := range items {
		if _, ok := item.(string); !ok {
			errors = append(errors, domain.NewInvalidTypeError(fmt.Sprintf("%s[%d]", path, i), "string"))
		}
	}
	return errors
}
