// services/recommendation_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

const recommendationModel = "claude-sonnet-4-20250514"

// Mentions shown to the model are capped; a scan can produce hundreds
const maxMentionExamples = 20

type recommendationService struct {
	cfg             *config.Config
	anthropicClient *anthropic.Client
}

func NewRecommendationService(cfg *config.Config) RecommendationService {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.AnthropicAPIKey),
	)
	return &recommendationService{
		cfg:             cfg,
		anthropicClient: &client,
	}
}

// GenerateRecommendations turns a finished scan's results into actionable
// content advice for the brand team.
func (s *recommendationService) GenerateRecommendations(ctx context.Context, brandName string, summary *ScanSummary, mentions []*models.BrandMention) ([]string, error) {
	fmt.Printf("[GenerateRecommendations] Generating recommendations for brand: %s\n", brandName)

	prompt := s.buildRecommendationPrompt(brandName, summary, mentions)

	response, err := s.anthropicClient.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(recommendationModel),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(variant.Text)
		}
	}

	recommendations := parseRecommendationLines(text.String())
	fmt.Printf("[GenerateRecommendations] Generated %d recommendations for %s\n", len(recommendations), brandName)
	return recommendations, nil
}

func (s *recommendationService) buildRecommendationPrompt(brandName string, summary *ScanSummary, mentions []*models.BrandMention) string {
	var examples strings.Builder
	shown := 0
	for _, m := range mentions {
		if shown >= maxMentionExamples {
			break
		}
		cited := "not cited"
		if m.IsCited {
			cited = "cited"
		}
		fmt.Fprintf(&examples, "- %s (%s, confidence %.2f): %s\n", m.BrandName, cited, m.Confidence, m.Context)
		shown++
	}
	if shown == 0 {
		examples.WriteString("(no mentions were detected)\n")
	}

	return fmt.Sprintf(`You are a GEO (generative engine optimization) consultant.

The brand "%s" was scanned across AI assistants: %d of %d prompt/provider
units answered, yielding %d entity mentions and %d cited sources.

Sample mentions:
%s
Write 3 to 5 concrete content recommendations to improve how often and how
favorably AI assistants mention and cite this brand. Output one
recommendation per line, each starting with "- ". No preamble.`,
		brandName, summary.ProcessedCount, summary.TotalUnits,
		summary.MentionCount, summary.SourceCount, examples.String())
}

func parseRecommendationLines(text string) []string {
	var recommendations []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		if line != "" {
			recommendations = append(recommendations, line)
		}
	}
	return recommendations
}
