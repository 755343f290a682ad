package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
)

// langchainCompleter adapts any langchaingo model to domain.CompletionService.
type langchainCompleter struct {
	model llms.Model
}

func (c *langchainCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(temperature))
}

func newGeminiCompleter(ctx context.Context, apiKey, model string) (domain.CompletionService, error) {
	if apiKey == "" {
		return nil, domain.NewConfigurationError("GEMINI_API_KEY not found in environment variables")
	}
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, domain.NewError(domain.CodeConfiguration, "failed to create Gemini client", err)
	}
	return &langchainCompleter{model: client}, nil
}

func newOllamaCompleter(serverURL, model string) (domain.CompletionService, error) {
	if serverURL == "" {
		return nil, domain.NewConfigurationError("OLLAMA_SERVER_URL cannot be empty")
	}
	client, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, domain.NewError(domain.CodeConfiguration, "failed to create Ollama client", err)
	}
	return &langchainCompleter{model: client}, nil
}

// openAICompleter talks to any OpenAI-compatible chat completions endpoint.
type openAICompleter struct {
	client *openai.Client
	model  string
}

func newOpenAICompleter(apiKey, baseURL, model string) (domain.CompletionService, error) {
	if apiKey == "" {
		return nil, domain.NewConfigurationError("OPENAI_API_KEY not found in environment variables")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAICompleter{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (c *openAICompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type timeoutCompleter struct {
	next    domain.CompletionService
	timeout time.Duration
}

func (c *timeoutCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.Complete(ctx, prompt, temperature)
}
