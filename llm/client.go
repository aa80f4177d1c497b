// Package llm provides the language-model capability behind a single
// Client interface. Provider selection (groq, openai, ollama) happens
// once at construction; groq and ollama are reached through their
// OpenAI-compatible chat-completions endpoints.
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"shopquery/config"
	"shopquery/utils"
)

// Client sends a prompt and returns the raw response text. The backend
// is asked for syntactically valid JSON, but callers must still validate.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type chatClient struct {
	client   *openai.Client
	model    string
	provider string
	logger   *utils.Logger
}

// New constructs the client for the configured provider. A missing API
// key, an unknown provider, or an unreachable local Ollama server is a
// configuration error and fails construction.
func New(cfg *config.Config, logger *utils.Logger) (Client, error) {
	switch cfg.LLMProvider {
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("llm: GROQ_API_KEY is required for the groq provider")
		}
		clientCfg := openai.DefaultConfig(cfg.GroqAPIKey)
		clientCfg.BaseURL = "https://api.groq.com/openai/v1"
		logger.Info("[llm] Initialized groq client — model: %s", cfg.GroqModel)
		return &chatClient{
			client:   openai.NewClientWithConfig(clientCfg),
			model:    cfg.GroqModel,
			provider: "groq",
			logger:   logger,
		}, nil

	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("llm: OPENAI_API_KEY is required for the openai provider")
		}
		logger.Info("[llm] Initialized openai client — model: %s", cfg.OpenAIModel)
		return &chatClient{
			client:   openai.NewClient(cfg.OpenAIKey),
			model:    cfg.OpenAIModel,
			provider: "openai",
			logger:   logger,
		}, nil

	case "ollama":
		clientCfg := openai.DefaultConfig("ollama")
		clientCfg.BaseURL = cfg.OllamaHost
		c := &chatClient{
			client:   openai.NewClientWithConfig(clientCfg),
			model:    cfg.OllamaModel,
			provider: "ollama",
			logger:   logger,
		}
		if err := c.ping(); err != nil {
			return nil, fmt.Errorf("llm: ollama server not reachable at %s: %w", cfg.OllamaHost, err)
		}
		logger.Info("[llm] Initialized ollama client — model: %s, host: %s", cfg.OllamaModel, cfg.OllamaHost)
		return c, nil

	default:
		return nil, fmt.Errorf("llm: unsupported provider %q", cfg.LLMProvider)
	}
}

// ping verifies the local server answers before any query is processed.
func (c *chatClient) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.client.ListModels(ctx)
	return err
}

// Complete sends one user message and returns the response content. The
// request asks for a JSON object response so the backend constrains its
// output to structured text.
func (c *chatClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: %s completion: %w", c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: %s returned no choices", c.provider)
	}
	return resp.Choices[0].Message.Content, nil
}
