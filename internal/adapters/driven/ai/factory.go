// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/kotae-cli/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/kotae-cli/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/kotae-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
)

// Supported providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// LLMSettings selects and configures the generation provider.
type LLMSettings struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// IsConfigured reports whether the settings name a usable provider.
// Ollama runs locally and needs no API key.
func (s LLMSettings) IsConfigured() bool {
	if s.Provider == ProviderOllama {
		return true
	}
	return s.Provider != "" && s.APIKey != ""
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(settings LLMSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case ProviderOpenAI:
		return openai.NewLLMService(openai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case ProviderAnthropic:
		return anthropic.NewLLMService(anthropic.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case ProviderOllama:
		return ollama.NewLLMService(ollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'kotae auth' to fix", domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'kotae auth' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}
