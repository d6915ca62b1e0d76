package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/common"
)

const webSearchMaxUses = 5

// Provider queries Anthropic's Messages API with the server-side web
// search tool so answers can cite live sources.
type Provider struct {
	client *anthropic.Client
	model  string
}

func NewProvider(cfg *config.Config, model string) *Provider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.AnthropicAPIKey),
	)

	return &Provider{
		client: &client,
		model:  model,
	}
}

// NewProviderWithBaseURL is used by tests to point the client at a mock server
func NewProviderWithBaseURL(apiKey, model, baseURL string) *Provider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	return &Provider{
		client: &client,
		model:  model,
	}
}

func (p *Provider) Name() models.Provider {
	return models.ProviderAnthropic
}

func (p *Provider) Query(ctx context.Context, prompt string) (*models.LLMQueryResult, error) {
	start := time.Now()

	messages := []anthropic.MessageParam{{
		Content: []anthropic.ContentBlockParamUnion{{
			OfText: &anthropic.TextBlockParam{Text: prompt},
		}},
		Role: anthropic.MessageParamRoleUser,
	}}

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 4096,
		Messages:  messages,
		Tools: []anthropic.ToolUnionParam{{
			OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{
				MaxUses: anthropic.Int(webSearchMaxUses),
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("messages request failed: %w", err)
	}

	// Keep text blocks and their web search citations; drop tool-use and
	// thinking blocks
	var textParts []string
	citations := common.NewCitationSet()

	for _, block := range response.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			textParts = append(textParts, variant.Text)
			for _, citation := range variant.Citations {
				if citation.Type != "web_search_result_location" {
					continue
				}
				title := citation.Title
				citations.Add(citation.URL, &title, citation.CitedText)
			}
		}
	}

	return &models.LLMQueryResult{
		Provider:  models.ProviderAnthropic,
		Response:  strings.Join(textParts, ""),
		Citations: citations.Citations(),
		Usage: models.Usage{
			InputTokens:  int(response.Usage.InputTokens),
			OutputTokens: int(response.Usage.OutputTokens),
		},
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}
