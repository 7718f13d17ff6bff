package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// ProviderType identifies which generation backend to use.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// DetermineProvider resolves the provider with clear precedence:
// explicit flag, then POMGEN_PROVIDER, then OpenAI when an API key is
// present, with local Ollama as the final fallback.
func DetermineProvider(explicit string) (ProviderType, error) {
	if explicit != "" {
		return ParseProviderName(explicit)
	}
	if env := os.Getenv("POMGEN_PROVIDER"); env != "" {
		if provider, err := ParseProviderName(env); err == nil {
			return provider, nil
		}
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return ProviderOpenAI, nil
	}
	return ProviderOllama, nil
}

// ParseProviderName converts a string provider name to a ProviderType.
func ParseProviderName(name string) (ProviderType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "openai":
		return ProviderOpenAI, nil
	case "ollama", "ollama-local":
		return ProviderOllama, nil
	default:
		return "", fmt.Errorf("unknown provider: %s (supported: openai, ollama)", name)
	}
}

// NewService builds the Service implementation for a provider.
func NewService(ctx context.Context, provider ProviderType, model string) (Service, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIService(model)
	case ProviderOllama:
		return NewOllamaService(ctx, model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
