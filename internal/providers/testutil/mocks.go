package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

// SampleConfig returns a config with fake credentials for every provider
func SampleConfig() *config.Config {
	return &config.Config{
		Environment:      "test",
		OpenAIAPIKey:     "test-openai-key",
		AnthropicAPIKey:  "test-anthropic-key",
		GoogleAIAPIKey:   "test-google-key",
		PerplexityAPIKey: "test-perplexity-key",
	}
}

// FakeProvider is a scripted AIProvider for orchestrator tests
type FakeProvider struct {
	ProviderName models.Provider
	QueryFunc    func(ctx context.Context, prompt string) (*models.LLMQueryResult, error)
	Calls        []string
}

func (f *FakeProvider) Name() models.Provider {
	return f.ProviderName
}

func (f *FakeProvider) Query(ctx context.Context, prompt string) (*models.LLMQueryResult, error) {
	f.Calls = append(f.Calls, prompt)
	if f.QueryFunc != nil {
		return f.QueryFunc(ctx, prompt)
	}
	return &models.LLMQueryResult{
		Provider:  f.ProviderName,
		Response:  "stub response",
		Citations: []models.Citation{},
	}, nil
}

// MockProviderServer serves a canned JSON payload for adapter tests
type MockProviderServer struct {
	Server   *httptest.Server
	Status   int
	Payload  []byte
	Requests []*http.Request
	Bodies   [][]byte
}

// NewMockProviderServer creates an HTTP server that answers every request
// with the configured status and payload
func NewMockProviderServer() *MockProviderServer {
	mock := &MockProviderServer{Status: http.StatusOK}

	mock.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, 0)
		if r.Body != nil {
			buf := make([]byte, 1<<20)
			n, _ := r.Body.Read(buf)
			body = buf[:n]
		}
		mock.Requests = append(mock.Requests, r)
		mock.Bodies = append(mock.Bodies, body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(mock.Status)
		if mock.Payload != nil {
			w.Write(mock.Payload)
		}
	}))

	return mock
}

func (m *MockProviderServer) Close() {
	m.Server.Close()
}

func (m *MockProviderServer) URL() string {
	return m.Server.URL
}
