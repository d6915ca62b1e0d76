package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/common"
)

const defaultBaseURL = "https://api.perplexity.ai"

// Provider queries Perplexity's chat completions API. Search grounding is
// native to the sonar models, no tool flag needed.
type Provider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewProvider(cfg *config.Config, model string) *Provider {
	return &Provider{
		apiKey:  cfg.PerplexityAPIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// NewProviderWithBaseURL is used by tests to point the client at a mock server
func NewProviderWithBaseURL(apiKey, model, baseURL string) *Provider {
	return &Provider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (p *Provider) Name() models.Provider {
	return models.ProviderPerplexity
}

func (p *Provider) Query(ctx context.Context, prompt string) (*models.LLMQueryResult, error) {
	start := time.Now()

	payload := Request{
		Model:    p.model,
		Messages: []Message{{Role: "user", Content: prompt}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat completions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat completions API returned status %d", resp.StatusCode)
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode chat completions payload: %w", err)
	}

	// search_results first (they carry titles), then any bare citation
	// URLs not already seen
	citations := common.NewCitationSet()
	for _, result := range response.SearchResults {
		title := result.Title
		citations.Add(result.URL, &title, "")
	}
	for _, rawURL := range response.Citations {
		citations.Add(rawURL, nil, "")
	}

	responseText := ""
	if len(response.Choices) > 0 {
		responseText = response.Choices[0].Message.Content
	}

	return &models.LLMQueryResult{
		Provider:  models.ProviderPerplexity,
		Response:  responseText,
		Citations: citations.Citations(),
		Usage: models.Usage{
			InputTokens:   response.Usage.PromptTokens,
			OutputTokens:  response.Usage.CompletionTokens,
			SearchQueries: response.Usage.NumSearchQueries,
		},
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}
