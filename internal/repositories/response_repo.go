package repositories

import (
	"context"
	"fmt"

	"github.com/brandbeacon/brandbeacon-workflows/internal/database"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

type llmResponseRepo struct {
	db *database.Client
}

func NewLLMResponseRepo(db *database.Client) LLMResponseRepository {
	return &llmResponseRepo{db: db}
}

func (r *llmResponseRepo) Create(ctx context.Context, response *models.LLMResponse) error {
	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO llm_responses (
			response_id, prompt_id, provider, response_text,
			input_tokens, output_tokens, latency_ms, created_at
		) VALUES (
			:response_id, :prompt_id, :provider, :response_text,
			:input_tokens, :output_tokens, :latency_ms, :created_at
		)`, response)
	if err != nil {
		return fmt.Errorf("failed to create llm response: %w", err)
	}
	return nil
}
