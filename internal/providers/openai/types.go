package openai

// OpenAI Responses API structures for web-search-grounded queries

// Request is the payload for the /v1/responses endpoint
type Request struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Tools []Tool `json:"tools"`
}

type Tool struct {
	Type string `json:"type"`
}

// Response is the /v1/responses result envelope
type Response struct {
	ID     string       `json:"id"`
	Object string       `json:"object"`
	Status string       `json:"status"`
	Output []OutputItem `json:"output"`
	Usage  UsageBlock   `json:"usage"`
}

// OutputItem is one segment of the response output; only "message" items
// carry answer text, the rest is tool-call scaffolding
type OutputItem struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Status  string         `json:"status,omitempty"`
	Content []ContentBlock `json:"content,omitempty"`
}

type ContentBlock struct {
	Type        string       `json:"type"`
	Text        string       `json:"text,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Annotation marks a span of answer text backed by a search result
type Annotation struct {
	Type       string `json:"type"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
	Title      string `json:"title,omitempty"`
	URL        string `json:"url,omitempty"`
}

type UsageBlock struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}
