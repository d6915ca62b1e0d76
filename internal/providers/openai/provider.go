package openai

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

const defaultBaseURL = "https://api.openai.com/v1"

// Provider queries OpenAI's Responses API with the web_search tool enabled.
// The chat SDK does not cover the web-search response shape, so this client
// talks to the endpoint directly with typed structs.
type Provider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewProvider(cfg *config.Config, model string) *Provider {
	return &Provider{
		apiKey:  cfg.OpenAIAPIKey,
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
	return models.ProviderOpenAI
}

func (p *Provider) Query(ctx context.Context, prompt string) (*models.LLMQueryResult, error) {
	start := time.Now()

	payload := Request{
		Model: p.model,
		Input: prompt,
		Tools: []Tool{{Type: "web_search"}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/responses", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("responses request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("responses API returned status %d", resp.StatusCode)
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode responses payload: %w", err)
	}

	// Collect answer text and URL citations from message output items,
	// skipping tool-call scaffolding
	responseText := ""
	citations := common.NewCitationSet()

	for _, item := range response.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type != "output_text" {
				continue
			}
			responseText += content.Text
			for _, annotation := range content.Annotations {
				if annotation.Type != "url_citation" {
					continue
				}
				title := annotation.Title
				citations.Add(annotation.URL, &title, "")
			}
		}
	}

	return &models.LLMQueryResult{
		Provider:  models.ProviderOpenAI,
		Response:  responseText,
		Citations: citations.Citations(),
		Usage: models.Usage{
			InputTokens:  response.Usage.InputTokens,
			OutputTokens: response.Usage.OutputTokens,
		},
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}
