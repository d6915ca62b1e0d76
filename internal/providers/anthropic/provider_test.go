package anthropic_test

import (
	"context"
	"testing"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/anthropic"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/testutil"
)

var messagesPayload = []byte(`{
  "id": "msg_1",
  "type": "message",
  "role": "assistant",
  "model": "claude-sonnet-4-20250514",
  "content": [
    {
      "type": "text",
      "text": "Acme is strong in this space. ",
      "citations": [
        {
          "type": "web_search_result_location",
          "url": "https://www.example.com/acme",
          "title": "Acme Study",
          "cited_text": "Acme is strong",
          "encrypted_index": "abc"
        }
      ]
    },
    {
      "type": "text",
      "text": "Widgetco trails behind."
    }
  ],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 9, "output_tokens": 21}
}`)

func TestQueryConcatenatesTextBlocksAndCitations(t *testing.T) {
	mock := testutil.NewMockProviderServer()
	defer mock.Close()
	mock.Payload = messagesPayload

	provider := anthropic.NewProviderWithBaseURL("test-key", "claude-sonnet-4-20250514", mock.URL())
	result, err := provider.Query(context.Background(), "best widget vendors?")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if result.Provider != models.ProviderAnthropic {
		t.Errorf("Expected provider ANTHROPIC, got %s", result.Provider)
	}
	if result.Response != "Acme is strong in this space. Widgetco trails behind." {
		t.Errorf("Text blocks should concatenate, got %q", result.Response)
	}

	if len(result.Citations) != 1 {
		t.Fatalf("Expected 1 citation, got %d", len(result.Citations))
	}
	citation := result.Citations[0]
	if citation.URL != "https://www.example.com/acme" {
		t.Errorf("Unexpected citation URL: %s", citation.URL)
	}
	if citation.Domain != "example.com" {
		t.Errorf("Expected www-stripped domain, got %s", citation.Domain)
	}
	if citation.CitedText != "Acme is strong" {
		t.Errorf("Expected cited text preserved, got %q", citation.CitedText)
	}

	if result.Usage.InputTokens != 9 || result.Usage.OutputTokens != 21 {
		t.Errorf("Usage not recorded: %+v", result.Usage)
	}
}

func TestQueryWithoutCitationsDegrades(t *testing.T) {
	mock := testutil.NewMockProviderServer()
	defer mock.Close()
	mock.Payload = []byte(`{
	  "id": "msg_2",
	  "type": "message",
	  "role": "assistant",
	  "model": "claude-sonnet-4-20250514",
	  "content": [{"type": "text", "text": "No sources used."}],
	  "stop_reason": "end_turn",
	  "usage": {"input_tokens": 3, "output_tokens": 5}
	}`)

	provider := anthropic.NewProviderWithBaseURL("test-key", "claude-sonnet-4-20250514", mock.URL())
	result, err := provider.Query(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Missing citations must not fail: %v", err)
	}
	if len(result.Citations) != 0 {
		t.Errorf("Expected empty citations, got %d", len(result.Citations))
	}
}
