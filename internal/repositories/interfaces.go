// internal/repositories/interfaces.go
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

// BrandRepository reads tracked brands with their competitor sets.
// Brands are created by the dashboard CRUD; the pipeline only reads them.
type BrandRepository interface {
	GetByID(ctx context.Context, brandID uuid.UUID) (*models.Brand, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// PromptRepository reads the immutable prompt catalog
type PromptRepository interface {
	GetByIDs(ctx context.Context, promptIDs []uuid.UUID) ([]*models.Prompt, error)
	GetByBrand(ctx context.Context, brandID uuid.UUID) ([]*models.Prompt, error)
}

type LLMResponseRepository interface {
	Create(ctx context.Context, response *models.LLMResponse) error
}

type BrandMentionRepository interface {
	BulkCreate(ctx context.Context, mentions []*models.BrandMention) error
	// ListRecentByBrand returns the newest detections of the brand itself,
	// newest first, for recommendation context
	ListRecentByBrand(ctx context.Context, brandID uuid.UUID, limit int) ([]*models.BrandMention, error)
}

type CitedSourceRepository interface {
	BulkCreate(ctx context.Context, sources []*models.CitedSource) error
}

// ScanJobRepository is the durable job record behind the status API.
// Progress updates are monotonically non-decreasing within one job.
type ScanJobRepository interface {
	Create(ctx context.Context, job *models.ScanJob) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*models.ScanJob, error)
	MarkActive(ctx context.Context, jobID uuid.UUID) error
	UpdateProgress(ctx context.Context, jobID uuid.UUID, progress, processedCount, failedCount int) error
	MarkCompleted(ctx context.Context, jobID uuid.UUID, processedCount, failedCount int) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, reason string) error
}

// MentionStats is the raw aggregate used for daily visibility snapshots
type MentionStats struct {
	BrandMentions      int      `db:"brand_mentions"`
	TotalMentions      int      `db:"total_mentions"`
	CitedBrandMentions int      `db:"cited_brand_mentions"`
	AvgRank            *float64 `db:"avg_rank"`
}

type VisibilityMetricRepository interface {
	Upsert(ctx context.Context, metric *models.VisibilityMetric) error
	MentionStatsSince(ctx context.Context, brandID uuid.UUID, since time.Time) (*MentionStats, error)
}
