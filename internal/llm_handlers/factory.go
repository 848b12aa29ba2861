package llmHandlers

import (
	"context"
	"fmt"

	"process-maps-backend/internal/config"
)

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderGroq      Provider = "groq" // OpenAI compatible API
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// New builds the client for the configured provider.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch Provider(cfg.Provider) {
	case ProviderOpenAI:
		return NewLangChainClient(LangChainConfig{
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
		})
	case ProviderGroq:
		return NewLangChainClient(LangChainConfig{
			Model:   cfg.GroqModel,
			BaseURL: cfg.GroqBaseURL,
			APIKey:  cfg.GroqAPIKey,
		})
	case ProviderGemini:
		return NewGenaiGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	case ProviderAnthropic:
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		return nil, fmt.Errorf("unknown provider %s", cfg.Provider)
	}
}
