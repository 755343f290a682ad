package quizgen

import (
	"context"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
)

// DefaultTemperature is the sampling temperature sent with every quiz prompt.
const DefaultTemperature = 0.7

// QuizGenerator implements domain.QuizGenerator on top of a completion provider.
type QuizGenerator struct {
	provider    domain.CompletionProvider
	temperature float64
}

// NewQuizGenerator creates a generator. A non-positive temperature selects
// DefaultTemperature.
func NewQuizGenerator(provider domain.CompletionProvider, temperature float64) *QuizGenerator {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	return &QuizGenerator{
		provider:    provider,
		temperature: temperature,
	}
}

// GenerateQuiz prompts the completion service once and validates the reply.
// Every failure is a GENERATION_ERROR wrapping the cause.
func (g *QuizGenerator) GenerateQuiz(ctx context.Context, articleText string) (*domain.QuizPayload, error) {
	l := logger.Get()

	completer, err := g.provider.Completer(ctx)
	if err != nil {
		l.Error("Completion service is not available", zap.Error(err))
		return nil, domain.NewGenerationError(err)
	}

	prompt := BuildPrompt(articleText)
	l.Debug("Sending quiz prompt", zap.Int("prompt_length", len(prompt)), zap.Float64("temperature", g.temperature))

	start := time.Now()
	response, err := completer.Complete(ctx, prompt, g.temperature)
	if err != nil {
		l.Error("Completion call failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, domain.NewGenerationError(domain.NewLLMServiceError(err))
	}
	l.Info("Completion received", zap.Int("response_length", len(response)), zap.Duration("duration", time.Since(start)))

	payload, err := ParseQuizPayload(response)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if domainErr, ok := err.(*domain.DomainError); ok && domainErr.Context != nil {
			if snippet, ok := domainErr.Context["snippet"].(string); ok {
				fields = append(fields, zap.String("response_snippet", snippet))
			}
		}
		l.Error("Completion response rejected", fields...)
		return nil, domain.NewGenerationError(err)
	}

	l.Info("Quiz generated", zap.String("title", payload.Title), zap.Int("questions", len(payload.Questions)))
	return payload, nil
}

var _ domain.QuizGenerator = (*QuizGenerator)(nil)
