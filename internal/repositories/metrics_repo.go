package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brandbeacon/brandbeacon-workflows/internal/database"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

type visibilityMetricRepo struct {
	db *database.Client
}

func NewVisibilityMetricRepo(db *database.Client) VisibilityMetricRepository {
	return &visibilityMetricRepo{db: db}
}

// Upsert keeps one row per (brand, date); re-running a day's rollup
// overwrites the previous snapshot.
func (r *visibilityMetricRepo) Upsert(ctx context.Context, metric *models.VisibilityMetric) error {
	_, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO visibility_metrics (
			metric_id, brand_id, metric_date, mention_count,
			citation_rate, avg_rank, share_of_voice, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (brand_id, metric_date) DO UPDATE SET
			mention_count = EXCLUDED.mention_count,
			citation_rate = EXCLUDED.citation_rate,
			avg_rank = EXCLUDED.avg_rank,
			share_of_voice = EXCLUDED.share_of_voice`,
		metric.MetricID, metric.BrandID, metric.MetricDate, metric.MentionCount,
		metric.CitationRate, metric.AvgRank, metric.ShareOfVoice, metric.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert visibility metric: %w", err)
	}
	return nil
}

// MentionStatsSince aggregates mentions for one brand's responses created
// after the cutoff. total_mentions counts every detection row (the brand,
// its competitors, and unrecognized names) so share of voice can be
// computed against the full conversational surface.
func (r *visibilityMetricRepo) MentionStatsSince(ctx context.Context, brandID uuid.UUID, since time.Time) (*MentionStats, error) {
	var stats MentionStats
	err := r.db.DB.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) FILTER (WHERE bm.brand_id = $1) AS brand_mentions,
			COUNT(*) AS total_mentions,
			COUNT(*) FILTER (WHERE bm.brand_id = $1 AND bm.is_cited) AS cited_brand_mentions,
			AVG(bm.rank_position) FILTER (WHERE bm.brand_id = $1) AS avg_rank
		FROM brand_mentions bm
		JOIN llm_responses lr ON lr.response_id = bm.response_id
		JOIN prompts p ON p.prompt_id = lr.prompt_id
		JOIN topics t ON t.topic_id = p.topic_id
		WHERE t.brand_id = $1
		  AND lr.created_at >= $2`, brandID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate mention stats: %w", err)
	}
	return &stats, nil
}
