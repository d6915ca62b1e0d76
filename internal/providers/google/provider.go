package google

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

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Provider queries Gemini's generateContent endpoint with Google Search
// grounding enabled
type Provider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewProvider(cfg *config.Config, model string) *Provider {
	return &Provider{
		apiKey:  cfg.GoogleAIAPIKey,
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
	return models.ProviderGoogle
}

func (p *Provider) Query(ctx context.Context, prompt string) (*models.LLMQueryResult, error) {
	start := time.Now()

	payload := Request{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
		Tools:    []Tool{{}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generateContent request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generateContent API returned status %d", resp.StatusCode)
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode generateContent payload: %w", err)
	}

	responseText := ""
	citations := common.NewCitationSet()
	searchQueries := 0

	// Missing grounding metadata degrades to an empty citation list
	if len(response.Candidates) > 0 {
		candidate := response.Candidates[0]
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				responseText += part.Text
			}
		}
		if metadata := candidate.GroundingMetadata; metadata != nil {
			for _, chunk := range metadata.GroundingChunks {
				if chunk.Web == nil || chunk.Web.URI == "" {
					continue
				}
				title := chunk.Web.Title
				citations.Add(chunk.Web.URI, &title, "")
			}
			searchQueries = len(metadata.WebSearchQueries)
		}
	}

	usage := models.Usage{SearchQueries: searchQueries}
	if response.UsageMetadata != nil {
		usage.InputTokens = response.UsageMetadata.PromptTokenCount
		usage.OutputTokens = response.UsageMetadata.CandidatesTokenCount
	}

	return &models.LLMQueryResult{
		Provider:  models.ProviderGoogle,
		Response:  responseText,
		Citations: citations.Citations(),
		Usage:     usage,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}
