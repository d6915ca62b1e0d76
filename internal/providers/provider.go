package providers

import (
	"context"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

// AIProvider is the uniform query contract across AI model providers.
// Each implementation calls its provider's chat/completion endpoint with
// web search enabled and normalizes the answer plus citation metadata.
type AIProvider interface {
	Name() models.Provider
	Query(ctx context.Context, prompt string) (*models.LLMQueryResult, error)
}
