// internal/models/models.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Provider identifies an AI model provider capable of answering prompts.
type Provider string

const (
	ProviderOpenAI     Provider = "OPENAI"
	ProviderAnthropic  Provider = "ANTHROPIC"
	ProviderGoogle     Provider = "GOOGLE"
	ProviderPerplexity Provider = "PERPLEXITY"
)

// WebSearchProviders is the fixed set of providers used for brand scans.
// All three support live web grounding so answers can cite real sources.
var WebSearchProviders = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderPerplexity}

// Citation is a source reference returned by a provider's grounding metadata
type Citation struct {
	URL       string  `json:"url"`
	Title     *string `json:"title"`
	Domain    string  `json:"domain"`
	CitedText string  `json:"cited_text,omitempty"`
}

// Usage captures token accounting for a single provider call
type Usage struct {
	InputTokens   int `json:"input_tokens"`
	OutputTokens  int `json:"output_tokens"`
	SearchQueries int `json:"search_queries,omitempty"`
}

// LLMQueryResult is the normalized output of one provider query
type LLMQueryResult struct {
	Provider  Provider   `json:"provider"`
	Response  string     `json:"response"`
	Citations []Citation `json:"citations"`
	Usage     Usage      `json:"usage"`
	LatencyMs int64      `json:"latency_ms"`
}

// ExtractedMention is one tracked entity found in a response text
type ExtractedMention struct {
	BrandName    string  `json:"brand_name"`
	RankPosition int     `json:"rank_position"` // 1-based order of first appearance
	Context      string  `json:"context"`
	IsCited      bool    `json:"is_cited"`
	Confidence   float64 `json:"confidence"`
}

// ExtractedSource is a URL referenced by a response, deduplicated by URL
type ExtractedSource struct {
	URL     string  `json:"url"`
	Domain  string  `json:"domain"`
	Title   *string `json:"title"`
	Context string  `json:"context"`
}

// ParsedResponse is the parser output for one response text
type ParsedResponse struct {
	Mentions []ExtractedMention `json:"mentions"`
	Sources  []ExtractedSource  `json:"sources"`
	RawText  string             `json:"raw_text"`
}

// Brand is the tracked brand with its competitor set
type Brand struct {
	BrandID     uuid.UUID    `db:"brand_id" json:"brand_id"`
	Name        string       `db:"name" json:"name"`
	Description *string      `db:"description" json:"description,omitempty"`
	Competitors []Competitor `json:"competitors"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}

type Competitor struct {
	CompetitorID uuid.UUID `db:"competitor_id" json:"competitor_id"`
	BrandID      uuid.UUID `db:"brand_id" json:"brand_id"`
	Name         string    `db:"name" json:"name"`
}

type Topic struct {
	TopicID uuid.UUID `db:"topic_id" json:"topic_id"`
	BrandID uuid.UUID `db:"brand_id" json:"brand_id"`
	Name    string    `db:"name" json:"name"`
}

// Prompt is an immutable question posed to AI models. Read-only to the
// scan pipeline; created by the dashboard CRUD.
type Prompt struct {
	PromptID uuid.UUID `db:"prompt_id" json:"prompt_id"`
	TopicID  uuid.UUID `db:"topic_id" json:"topic_id"`
	Text     string    `db:"text" json:"text"`
}

// LLMResponse is one persisted (prompt, provider) answer
type LLMResponse struct {
	ResponseID   uuid.UUID `db:"response_id" json:"response_id"`
	PromptID     uuid.UUID `db:"prompt_id" json:"prompt_id"`
	Provider     Provider  `db:"provider" json:"provider"`
	ResponseText string    `db:"response_text" json:"response_text"`
	InputTokens  int       `db:"input_tokens" json:"input_tokens"`
	OutputTokens int       `db:"output_tokens" json:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms" json:"latency_ms"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// BrandMention is a persisted entity detection. Exactly one of BrandID
// and CompetitorID is set for recognized names; both are nil when the
// matched name belongs to neither.
type BrandMention struct {
	MentionID    uuid.UUID  `db:"mention_id" json:"mention_id"`
	ResponseID   uuid.UUID  `db:"response_id" json:"response_id"`
	BrandID      *uuid.UUID `db:"brand_id" json:"brand_id,omitempty"`
	CompetitorID *uuid.UUID `db:"competitor_id" json:"competitor_id,omitempty"`
	BrandName    string     `db:"brand_name" json:"brand_name"`
	RankPosition *int       `db:"rank_position" json:"rank_position,omitempty"`
	IsCited      bool       `db:"is_cited" json:"is_cited"`
	Context      string     `db:"context" json:"context"`
	Confidence   float64    `db:"confidence" json:"confidence"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// CitedSource is a persisted source reference for one response
type CitedSource struct {
	SourceID   uuid.UUID `db:"source_id" json:"source_id"`
	ResponseID uuid.UUID `db:"response_id" json:"response_id"`
	URL        string    `db:"url" json:"url"`
	Domain     string    `db:"domain" json:"domain"`
	Title      *string   `db:"title" json:"title,omitempty"`
	Context    string    `db:"context" json:"context"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// JobStatus is the lifecycle state of a scan job
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusActive    JobStatus = "active"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// ScanJob is the durable record of one brand scan across prompts x providers
type ScanJob struct {
	JobID          uuid.UUID  `db:"job_id" json:"job_id"`
	BrandID        uuid.UUID  `db:"brand_id" json:"brand_id"`
	PromptIDs      []string   `json:"prompt_ids"`
	Providers      []Provider `json:"providers"`
	Status         JobStatus  `db:"status" json:"status"`
	Progress       int        `db:"progress" json:"progress"` // 0..100
	ProcessedCount int        `db:"processed_count" json:"processed_count"`
	FailedCount    int        `db:"failed_count" json:"failed_count"`
	FailedReason   *string    `db:"failed_reason" json:"failed_reason,omitempty"`
	ProcessedOn    *time.Time `db:"processed_on" json:"processed_on,omitempty"`
	FinishedOn     *time.Time `db:"finished_on" json:"finished_on,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// VisibilityMetric is a daily aggregate snapshot for one brand
type VisibilityMetric struct {
	MetricID     uuid.UUID `db:"metric_id" json:"metric_id"`
	BrandID      uuid.UUID `db:"brand_id" json:"brand_id"`
	MetricDate   time.Time `db:"metric_date" json:"metric_date"`
	MentionCount int       `db:"mention_count" json:"mention_count"`
	CitationRate float64   `db:"citation_rate" json:"citation_rate"`
	AvgRank      *float64  `db:"avg_rank" json:"avg_rank,omitempty"`
	ShareOfVoice float64   `db:"share_of_voice" json:"share_of_voice"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
