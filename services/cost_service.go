// services/cost_service.go
package services

import "github.com/brandbeacon/brandbeacon-workflows/internal/models"

type costService struct{}

func NewCostService() CostService {
	return &costService{}
}

// Cost per 1M tokens
var costPerToken = map[string]struct{ input, output float64 }{
	"gpt-4o":                   {input: 2.50, output: 10.00},
	"claude-sonnet-4-20250514": {input: 3.00, output: 15.00},
	"gemini-2.0-flash":         {input: 0.10, output: 0.40},
	"sonar":                    {input: 1.00, output: 1.00}, // Perplexity Sonar pricing (estimated)
}

// Cost per 1000 web searches
var costPerWebSearch = map[models.Provider]float64{
	models.ProviderOpenAI:     35.00,
	models.ProviderAnthropic:  10.00,
	models.ProviderGoogle:     35.00,
	models.ProviderPerplexity: 8.00,
}

func (s *costService) CalculateCost(provider models.Provider, model string, inputTokens, outputTokens int, webSearch bool) float64 {
	modelCosts, exists := costPerToken[model]
	if !exists {
		// Default to GPT-4o costs if model not found
		modelCosts = costPerToken["gpt-4o"]
	}

	inputCost := (float64(inputTokens) / 1_000_000.0) * modelCosts.input
	outputCost := (float64(outputTokens) / 1_000_000.0) * modelCosts.output
	totalCost := inputCost + outputCost

	if webSearch {
		if searchCost, exists := costPerWebSearch[provider]; exists {
			totalCost += searchCost / 1000.0
		}
	}

	return totalCost
}
