package provider

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/radworks/radchat/pkg/config"
	"github.com/radworks/radchat/pkg/logger"
)

// GitHubModelsEndpoint is the OpenAI-compatible endpoint backing the hosted
// model catalog.
const GitHubModelsEndpoint = "https://models.inference.ai.azure.com"

// NewModel constructs the configured backing LLM. The model argument
// overrides the configured default when non-empty.
func NewModel(cfg *config.Config, model string) (llms.Model, error) {
	switch cfg.Provider {
	case "github", "openai", "":
		return newOpenAICompatible(cfg, model)
	case "anthropic":
		return newAnthropic(cfg, model)
	case "ollama":
		return newOllama(cfg, model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func newOpenAICompatible(cfg *config.Config, model string) (llms.Model, error) {
	if model == "" {
		model = cfg.OpenAI.Model
	}
	if model == "" {
		model = DefaultModel
	}
	baseURL := cfg.OpenAI.BaseURL
	if baseURL == "" {
		baseURL = GitHubModelsEndpoint
	}
	if cfg.OpenAI.Token == "" {
		return nil, fmt.Errorf("model API token not configured")
	}

	logger.Debug("provider: openai-compatible model %s at %s", model, baseURL)
	llm, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(cfg.OpenAI.Token),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return llm, nil
}

func newAnthropic(cfg *config.Config, model string) (llms.Model, error) {
	if model == "" {
		model = cfg.Anthropic.Model
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	opts := []anthropic.Option{anthropic.WithModel(model)}
	if cfg.Anthropic.Token != "" {
		opts = append(opts, anthropic.WithToken(cfg.Anthropic.Token))
	}
	llm, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create anthropic client: %w", err)
	}
	return llm, nil
}

func newOllama(cfg *config.Config, model string) (llms.Model, error) {
	if model == "" {
		model = cfg.Ollama.Model
	}
	opts := []ollama.Option{ollama.WithModel(model)}
	if cfg.Ollama.URL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.Ollama.URL))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return llm, nil
}
