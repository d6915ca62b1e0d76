package providers

import (
	"fmt"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/anthropic"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/google"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/openai"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/perplexity"
)

// Default models per provider; all of them support live web grounding
const (
	OpenAIModel     = "gpt-4o"
	AnthropicModel  = "claude-sonnet-4-20250514"
	GoogleModel     = "gemini-2.0-flash"
	PerplexityModel = "sonar"
)

// ModelFor reports the default model used for a provider constant
func ModelFor(provider models.Provider) string {
	switch provider {
	case models.ProviderOpenAI:
		return OpenAIModel
	case models.ProviderAnthropic:
		return AnthropicModel
	case models.ProviderGoogle:
		return GoogleModel
	case models.ProviderPerplexity:
		return PerplexityModel
	}
	return ""
}

// NewProvider creates the adapter for the requested provider. Shared logic
// never branches on provider names beyond this constructor; new providers
// are added as new variants.
func NewProvider(provider models.Provider, cfg *config.Config) (AIProvider, error) {
	switch provider {
	case models.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not configured")
		}
		return openai.NewProvider(cfg, OpenAIModel), nil

	case models.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not configured")
		}
		return anthropic.NewProvider(cfg, AnthropicModel), nil

	case models.ProviderGoogle:
		if cfg.GoogleAIAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_AI_API_KEY is not configured")
		}
		return google.NewProvider(cfg, GoogleModel), nil

	case models.ProviderPerplexity:
		if cfg.PerplexityAPIKey == "" {
			return nil, fmt.Errorf("PERPLEXITY_API_KEY is not configured")
		}
		return perplexity.NewProvider(cfg, PerplexityModel), nil
	}

	return nil, fmt.Errorf("unsupported provider: %s", provider)
}
