// services/metrics_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

type metricsService struct {
	repos *RepositoryManager
}

func NewMetricsService(repos *RepositoryManager) MetricsService {
	return &metricsService{repos: repos}
}

// ComputeDailySnapshot aggregates one brand's mentions for the 24 hours
// leading up to date and stores the snapshot. A window with no mentions
// produces a zero snapshot rather than an error.
func (s *metricsService) ComputeDailySnapshot(ctx context.Context, brandID uuid.UUID, date time.Time) (*models.VisibilityMetric, error) {
	metricDate := date.UTC().Truncate(24 * time.Hour)
	since := metricDate.Add(-24 * time.Hour)

	stats, err := s.repos.MetricRepo.MentionStatsSince(ctx, brandID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load mention stats: %w", err)
	}

	metric := &models.VisibilityMetric{
		MetricID:     uuid.New(),
		BrandID:      brandID,
		MetricDate:   metricDate,
		MentionCount: stats.BrandMentions,
		AvgRank:      stats.AvgRank,
		CreatedAt:    time.Now(),
	}
	if stats.BrandMentions > 0 {
		metric.CitationRate = float64(stats.CitedBrandMentions) / float64(stats.BrandMentions)
	}
	if stats.TotalMentions > 0 {
		metric.ShareOfVoice = float64(stats.BrandMentions) / float64(stats.TotalMentions)
	}

	if err := s.repos.MetricRepo.Upsert(ctx, metric); err != nil {
		return nil, fmt.Errorf("failed to store visibility metric: %w", err)
	}

	fmt.Printf("[ComputeDailySnapshot] Brand %s on %s: %d mentions, %.2f SOV, %.2f citation rate\n",
		brandID, metricDate.Format("2006-01-02"), metric.MentionCount, metric.ShareOfVoice, metric.CitationRate)
	return metric, nil
}

// ComputeAllBrands runs the daily snapshot for every tracked brand and
// returns how many snapshots were written. Per-brand failures are logged
// and skipped so one bad brand never blocks the rollup.
func (s *metricsService) ComputeAllBrands(ctx context.Context, date time.Time) (int, error) {
	brandIDs, err := s.repos.BrandRepo.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list brands: %w", err)
	}

	computed := 0
	for _, brandID := range brandIDs {
		if _, err := s.ComputeDailySnapshot(ctx, brandID, date); err != nil {
			fmt.Printf("[ComputeAllBrands] Warning: Failed to compute metrics for brand %s: %v\n", brandID, err)
			continue
		}
		computed++
	}

	fmt.Printf("[ComputeAllBrands] Computed %d/%d brand snapshots\n", computed, len(brandIDs))
	return computed, nil
}
