// services/cost_service_test.go
package services

import (
	"math"
	"testing"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

func TestCalculateCost(t *testing.T) {
	svc := NewCostService()

	tests := []struct {
		name      string
		provider  models.Provider
		model     string
		in, out   int
		webSearch bool
		expected  float64
	}{
		{
			name:     "gpt-4o tokens only",
			provider: models.ProviderOpenAI,
			model:    "gpt-4o",
			in:       1_000_000,
			out:      1_000_000,
			expected: 12.50,
		},
		{
			name:      "sonar with web search",
			provider:  models.ProviderPerplexity,
			model:     "sonar",
			in:        100_000,
			out:       100_000,
			webSearch: true,
			expected:  0.1 + 0.1 + 0.008,
		},
		{
			name:     "unknown model falls back to gpt-4o pricing",
			provider: models.ProviderOpenAI,
			model:    "mystery-model",
			in:       1_000_000,
			out:      0,
			expected: 2.50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.CalculateCost(tt.provider, tt.model, tt.in, tt.out, tt.webSearch)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected cost %f, got %f", tt.expected, got)
			}
		})
	}
}
