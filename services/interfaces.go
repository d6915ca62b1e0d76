// services/interfaces.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"

	"github.com/brandbeacon/brandbeacon-workflows/internal/database"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
	"github.com/brandbeacon/brandbeacon-workflows/internal/repositories"
)

// RepositoryManager manages all database repositories
type RepositoryManager struct {
	db           *database.Client
	BrandRepo    repositories.BrandRepository
	PromptRepo   repositories.PromptRepository
	ResponseRepo repositories.LLMResponseRepository
	MentionRepo  repositories.BrandMentionRepository
	SourceRepo   repositories.CitedSourceRepository
	ScanJobRepo  repositories.ScanJobRepository
	MetricRepo   repositories.VisibilityMetricRepository
}

// NewRepositoryManager creates a new repository manager with all repositories
func NewRepositoryManager(db *database.Client) *RepositoryManager {
	return &RepositoryManager{
		db:           db,
		BrandRepo:    repositories.NewBrandRepo(db),
		PromptRepo:   repositories.NewPromptRepo(db),
		ResponseRepo: repositories.NewLLMResponseRepo(db),
		MentionRepo:  repositories.NewBrandMentionRepo(db),
		SourceRepo:   repositories.NewCitedSourceRepo(db),
		ScanJobRepo:  repositories.NewScanJobRepo(db),
		MetricRepo:   repositories.NewVisibilityMetricRepo(db),
	}
}

// ScanDetails contains everything a scan run needs about one brand
type ScanDetails struct {
	Brand   *models.Brand
	Prompts []*models.Prompt
}

// ScanSummary is the terminal result of one scan job
type ScanSummary struct {
	JobID          uuid.UUID `json:"job_id"`
	BrandName      string    `json:"brand_name"`
	TotalUnits     int       `json:"total_units"`
	ProcessedCount int       `json:"processed_count"`
	FailedCount    int       `json:"failed_count"`
	MentionCount   int       `json:"mention_count"`
	SourceCount    int       `json:"source_count"`
}

// BrandService loads brand scan context from the database
type BrandService interface {
	// GetBrand resolves the brand record or ErrBrandNotFound
	GetBrand(ctx context.Context, brandID uuid.UUID) (*models.Brand, error)
	// GetScanDetails resolves the brand and its prompt set. An empty
	// promptIDs slice means every prompt tracked for the brand.
	GetScanDetails(ctx context.Context, brandID uuid.UUID, promptIDs []string) (*ScanDetails, error)
}

// ScanRunnerService executes scan jobs: prompts x providers, sequentially
type ScanRunnerService interface {
	RunScan(ctx context.Context, jobID uuid.UUID) (*ScanSummary, error)
}

// IngestionService indexes persisted responses for semantic and keyword
// search. Best effort; callers log failures and move on.
type IngestionService interface {
	IndexScanResponse(ctx context.Context, response *models.LLMResponse, brandName string) error
}

// MetricsService computes daily visibility snapshots from stored mentions
type MetricsService interface {
	ComputeDailySnapshot(ctx context.Context, brandID uuid.UUID, date time.Time) (*models.VisibilityMetric, error)
	ComputeAllBrands(ctx context.Context, date time.Time) (int, error)
}

// TopicGeneratorService suggests tracking topics for a new brand
type TopicGeneratorService interface {
	GenerateTopics(ctx context.Context, brandName string, description string) ([]string, error)
}

// PromptGeneratorService writes natural-language prompts for a topic
type PromptGeneratorService interface {
	GeneratePrompts(ctx context.Context, brandName, topic string, count int) ([]string, error)
}

// RecommendationService turns weak scan results into content advice
type RecommendationService interface {
	GenerateRecommendations(ctx context.Context, brandName string, summary *ScanSummary, mentions []*models.BrandMention) ([]string, error)
}

type CostService interface {
	CalculateCost(provider models.Provider, model string, inputTokens, outputTokens int, webSearch bool) float64
}

// GenerateSchema generates a JSON schema for structured outputs
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var zero T
	schema := reflector.Reflect(zero)

	// Convert to the format expected by OpenAI
	result := map[string]interface{}{
		"type":       "object",
		"properties": schema.Properties,
		"required":   schema.Required,
	}

	if schema.AdditionalProperties != nil {
		result["additionalProperties"] = false
	}

	return result
}
