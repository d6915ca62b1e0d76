package repositories

import (
	"context"
	"fmt"

	"github.com/brandbeacon/brandbeacon-workflows/internal/database"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

type citedSourceRepo struct {
	db *database.Client
}

func NewCitedSourceRepo(db *database.Client) CitedSourceRepository {
	return &citedSourceRepo{db: db}
}

func (r *citedSourceRepo) BulkCreate(ctx context.Context, sources []*models.CitedSource) error {
	if len(sources) == 0 {
		return nil
	}

	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO cited_sources (
			source_id, response_id, url, domain, title, context, created_at
		) VALUES (
			:source_id, :response_id, :url, :domain, :title, :context, :created_at
		)`, sources)
	if err != nil {
		return fmt.Errorf("failed to create cited sources: %w", err)
	}
	return nil
}
