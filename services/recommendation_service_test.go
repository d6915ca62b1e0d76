// services/recommendation_service_test.go
package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

func TestParseRecommendationLines(t *testing.T) {
	text := "- Publish comparison pages\n* Earn review citations\n\nPitch industry analysts\n"

	got := parseRecommendationLines(text)

	want := []string{"Publish comparison pages", "Earn review citations", "Pitch industry analysts"}
	if len(got) != len(want) {
		t.Fatalf("expected %d recommendations, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("recommendation %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParseRecommendationLinesEmptyText(t *testing.T) {
	if got := parseRecommendationLines("\n\n  \n"); len(got) != 0 {
		t.Errorf("expected no recommendations for blank text, got %v", got)
	}
}

func TestBuildRecommendationPromptCapsExamples(t *testing.T) {
	svc := &recommendationService{}

	var mentions []*models.BrandMention
	for i := 0; i < maxMentionExamples+10; i++ {
		mentions = append(mentions, &models.BrandMention{
			MentionID: uuid.New(),
			BrandName: "Acme",
			Context:   fmt.Sprintf("mention number %d", i),
		})
	}
	summary := &ScanSummary{TotalUnits: 6, ProcessedCount: 5, FailedCount: 1, MentionCount: len(mentions)}

	prompt := svc.buildRecommendationPrompt("Acme", summary, mentions)

	if n := strings.Count(prompt, "- Acme"); n != maxMentionExamples {
		t.Errorf("expected %d mention examples, got %d", maxMentionExamples, n)
	}
	if !strings.Contains(prompt, `"Acme"`) {
		t.Errorf("prompt should name the brand: %q", prompt)
	}
	if !strings.Contains(prompt, "5 of 6") {
		t.Errorf("prompt should carry the run counts: %q", prompt)
	}
}

func TestBuildRecommendationPromptNoMentions(t *testing.T) {
	svc := &recommendationService{}
	summary := &ScanSummary{TotalUnits: 3}

	prompt := svc.buildRecommendationPrompt("Acme", summary, nil)

	if !strings.Contains(prompt, "no mentions were detected") {
		t.Errorf("prompt should state that no mentions were found: %q", prompt)
	}
}
