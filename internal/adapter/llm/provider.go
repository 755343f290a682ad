package llm

import (
	"context"
	"fmt"
	"strings"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultOllamaModel = "llama3"
)

// Provider builds a completion service from configuration on every call, so
// a missing credential surfaces as a generation failure rather than at startup.
type Provider struct {
	cfg config.LLMConfig
}

func NewProvider(cfg config.LLMConfig) *Provider {
	return &Provider{cfg: cfg}
}

// Completer returns a ready completion service or a CONFIGURATION_ERROR.
func (p *Provider) Completer(ctx context.Context) (domain.CompletionService, error) {
	provider := strings.ToLower(strings.TrimSpace(p.cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}

	var (
		svc domain.CompletionService
		err error
	)
	switch provider {
	case ProviderGemini:
		svc, err = newGeminiCompleter(ctx, p.cfg.GeminiAPIKey, modelOrDefault(p.cfg.Model, DefaultGeminiModel))
	case ProviderOpenAI:
		svc, err = newOpenAICompleter(p.cfg.OpenAIAPIKey, p.cfg.OpenAIBaseURL, modelOrDefault(p.cfg.Model, DefaultOpenAIModel))
	case ProviderOllama:
		svc, err = newOllamaCompleter(p.cfg.OllamaServerURL, modelOrDefault(p.cfg.Model, DefaultOllamaModel))
	default:
		return nil, domain.NewConfigurationError(fmt.Sprintf("unsupported LLM provider %q", p.cfg.Provider))
	}
	if err != nil {
		return nil, err
	}

	logger.Get().Debug("Completion service ready", zap.String("provider", provider))

	if p.cfg.Timeout > 0 {
		svc = &timeoutCompleter{next: svc, timeout: p.cfg.Timeout}
	}
	return svc, nil
}

func modelOrDefault(model, fallback string) string {
	if strings.TrimSpace(model) == "" {
		return fallback
	}
	return model
}

var _ domain.CompletionProvider = (*Provider)(nil)
