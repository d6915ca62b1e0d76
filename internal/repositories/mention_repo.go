package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/brandbeacon/brandbeacon-workflows/internal/database"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

type brandMentionRepo struct {
	db *database.Client
}

func NewBrandMentionRepo(db *database.Client) BrandMentionRepository {
	return &brandMentionRepo{db: db}
}

func (r *brandMentionRepo) BulkCreate(ctx context.Context, mentions []*models.BrandMention) error {
	if len(mentions) == 0 {
		return nil
	}

	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO brand_mentions (
			mention_id, response_id, brand_id, competitor_id, brand_name,
			rank_position, is_cited, context, confidence, created_at
		) VALUES (
			:mention_id, :response_id, :brand_id, :competitor_id, :brand_name,
			:rank_position, :is_cited, :context, :confidence, :created_at
		)`, mentions)
	if err != nil {
		return fmt.Errorf("failed to create brand mentions: %w", err)
	}
	return nil
}

func (r *brandMentionRepo) ListRecentByBrand(ctx context.Context, brandID uuid.UUID, limit int) ([]*models.BrandMention, error) {
	var mentions []*models.BrandMention
	err := r.db.DB.SelectContext(ctx, &mentions, `
		SELECT mention_id, response_id, brand_id, competitor_id, brand_name,
		       rank_position, is_cited, context, confidence, created_at
		FROM brand_mentions
		WHERE brand_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, brandID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand mentions: %w", err)
	}
	return mentions, nil
}
