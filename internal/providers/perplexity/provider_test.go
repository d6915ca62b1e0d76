package perplexity_test

import (
	"context"
	"strings"
	"testing"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/perplexity"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/testutil"
)

func TestQueryMergesSearchResultsAndCitations(t *testing.T) {
	mock := testutil.NewMockProviderServer()
	defer mock.Close()
	mock.Payload = testutil.PerplexityPayload

	provider := perplexity.NewProviderWithBaseURL("test-key", "sonar", mock.URL())
	result, err := provider.Query(context.Background(), "best widget vendors?")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if result.Provider != models.ProviderPerplexity {
		t.Errorf("Expected provider PERPLEXITY, got %s", result.Provider)
	}
	if result.Response != "Acme is widely recommended for small teams." {
		t.Errorf("Unexpected response text: %q", result.Response)
	}

	// search_results entry wins over the matching bare citation URL; the
	// extra bare URL is appended without a title
	if len(result.Citations) != 2 {
		t.Fatalf("Expected 2 citations, got %d", len(result.Citations))
	}
	first := result.Citations[0]
	if first.URL != "https://www.reviews.example/acme" {
		t.Errorf("search_results should come first, got %s", first.URL)
	}
	if first.Title == nil || *first.Title != "Acme Reviews 2025" {
		t.Errorf("Expected title from search_results")
	}
	if first.Domain != "reviews.example" {
		t.Errorf("Expected www-stripped domain, got %s", first.Domain)
	}
	second := result.Citations[1]
	if second.URL != "https://extra.example/acme-notes" || second.Title != nil {
		t.Errorf("Bare citation should append without title: %+v", second)
	}

	if result.Usage.InputTokens != 8 || result.Usage.OutputTokens != 40 || result.Usage.SearchQueries != 2 {
		t.Errorf("Usage not recorded: %+v", result.Usage)
	}
}

func TestQuerySendsUserMessage(t *testing.T) {
	mock := testutil.NewMockProviderServer()
	defer mock.Close()
	mock.Payload = testutil.PerplexityPayload

	provider := perplexity.NewProviderWithBaseURL("test-key", "sonar", mock.URL())
	if _, err := provider.Query(context.Background(), "prompt text"); err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	req := mock.Requests[0]
	if !strings.HasSuffix(req.URL.Path, "/chat/completions") {
		t.Errorf("Unexpected endpoint path: %s", req.URL.Path)
	}
	if req.Header.Get("Authorization") != "Bearer test-key" {
		t.Errorf("Expected bearer auth header")
	}
	body := string(mock.Bodies[0])
	if !strings.Contains(body, `"sonar"`) || !strings.Contains(body, "prompt text") {
		t.Errorf("Request body missing model or prompt: %s", body)
	}
}

func TestQueryWithoutCitationsDegrades(t *testing.T) {
	mock := testutil.NewMockProviderServer()
	defer mock.Close()
	mock.Payload = []byte(`{
	  "usage": {"prompt_tokens": 1, "completion_tokens": 2},
	  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "No sources."}}]
	}`)

	provider := perplexity.NewProviderWithBaseURL("test-key", "sonar", mock.URL())
	result, err := provider.Query(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Missing citation fields must not fail: %v", err)
	}
	if len(result.Citations) != 0 {
		t.Errorf("Expected empty citations, got %d", len(result.Citations))
	}
}
