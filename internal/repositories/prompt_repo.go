package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/brandbeacon/brandbeacon-workflows/internal/database"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

type promptRepo struct {
	db *database.Client
}

func NewPromptRepo(db *database.Client) PromptRepository {
	return &promptRepo{db: db}
}

func (r *promptRepo) GetByIDs(ctx context.Context, promptIDs []uuid.UUID) ([]*models.Prompt, error) {
	ids := make([]string, len(promptIDs))
	for i, id := range promptIDs {
		ids[i] = id.String()
	}

	var prompts []*models.Prompt
	err := r.db.DB.SelectContext(ctx, &prompts, `
		SELECT prompt_id, topic_id, text
		FROM prompts
		WHERE prompt_id = ANY($1)
		ORDER BY prompt_id`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get prompts: %w", err)
	}
	return prompts, nil
}

func (r *promptRepo) GetByBrand(ctx context.Context, brandID uuid.UUID) ([]*models.Prompt, error) {
	var prompts []*models.Prompt
	err := r.db.DB.SelectContext(ctx, &prompts, `
		SELECT p.prompt_id, p.topic_id, p.text
		FROM prompts p
		JOIN topics t ON t.topic_id = p.topic_id
		WHERE t.brand_id = $1
		ORDER BY p.prompt_id`, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prompts for brand: %w", err)
	}
	return prompts, nil
}
