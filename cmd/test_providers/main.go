// cmd/test_providers/main.go
//
// Smoke test for the provider adapters against live APIs. Queries each
// requested provider with a sample prompt and runs the response through
// the parser so the full extraction path can be eyeballed.
//
// Usage:
//
//	go run ./cmd/test_providers [OPENAI|ANTHROPIC|GOOGLE|PERPLEXITY ...]
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
	"github.com/brandbeacon/brandbeacon-workflows/internal/parser"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers"
)

const testPrompt = "What are the best CRM tools for small businesses?"

var testBrands = []string{"Salesforce"}
var testCompetitors = []string{"HubSpot", "Zoho", "Pipedrive"}

func main() {
	fmt.Println("Provider adapter smoke test")

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	} else {
		fmt.Println("Loaded .env file")
	}

	cfg := config.Load()

	requested := requestedProviders()
	fmt.Printf("Prompt: %q\n", testPrompt)
	fmt.Printf("Providers: %v\n\n", requested)

	for _, provider := range requested {
		testProvider(provider, cfg)
	}
}

func requestedProviders() []models.Provider {
	if len(os.Args) > 1 {
		var list []models.Provider
		for _, arg := range os.Args[1:] {
			list = append(list, models.Provider(strings.ToUpper(arg)))
		}
		return list
	}
	return []models.Provider{
		models.ProviderOpenAI,
		models.ProviderAnthropic,
		models.ProviderGoogle,
		models.ProviderPerplexity,
	}
}

func testProvider(provider models.Provider, cfg *config.Config) {
	fmt.Printf("=== %s ===\n", provider)

	adapter, err := providers.NewProvider(provider, cfg)
	if err != nil {
		fmt.Printf("Skipped: %v\n\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := adapter.Query(ctx, testPrompt)
	if err != nil {
		fmt.Printf("Query failed: %v\n\n", err)
		return
	}

	fmt.Printf("Answered in %v (%d in / %d out tokens)\n",
		time.Since(start).Round(time.Millisecond), result.Usage.InputTokens, result.Usage.OutputTokens)
	fmt.Printf("Response: %s\n", truncate(result.Response, 200))
	fmt.Printf("API citations: %d\n", len(result.Citations))
	for _, c := range result.Citations {
		fmt.Printf("  - %s (%s)\n", c.URL, c.Domain)
	}

	parsed := parser.NewResponseParser(testBrands, testCompetitors).Parse(result.Response, result.Citations)
	fmt.Printf("Mentions: %d\n", len(parsed.Mentions))
	for _, m := range parsed.Mentions {
		fmt.Printf("  #%d %s (cited=%t, confidence=%.2f)\n", m.RankPosition, m.BrandName, m.IsCited, m.Confidence)
	}
	fmt.Printf("Sources: %d\n\n", len(parsed.Sources))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
