package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/brandbeacon/brandbeacon-workflows/internal/database"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

type brandRepo struct {
	db *database.Client
}

func NewBrandRepo(db *database.Client) BrandRepository {
	return &brandRepo{db: db}
}

// GetByID returns the brand with its competitor list, or nil when the
// brand does not exist
func (r *brandRepo) GetByID(ctx context.Context, brandID uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.DB.GetContext(ctx, &brand, `
		SELECT brand_id, name, description, created_at
		FROM brands
		WHERE brand_id = $1`, brandID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	var competitors []models.Competitor
	err = r.db.DB.SelectContext(ctx, &competitors, `
		SELECT competitor_id, brand_id, name
		FROM competitors
		WHERE brand_id = $1
		ORDER BY name`, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get competitors: %w", err)
	}

	brand.Competitors = competitors
	return &brand, nil
}

// ListIDs returns every tracked brand id, used by the daily metrics rollup
func (r *brandRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.DB.SelectContext(ctx, &ids, `
		SELECT brand_id FROM brands ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand ids: %w", err)
	}
	return ids, nil
}
