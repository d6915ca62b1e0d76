package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/brandbeacon/brandbeacon-workflows/internal/database"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

type scanJobRepo struct {
	db *database.Client
}

func NewScanJobRepo(db *database.Client) ScanJobRepository {
	return &scanJobRepo{db: db}
}

type scanJobRow struct {
	JobID          uuid.UUID      `db:"job_id"`
	BrandID        uuid.UUID      `db:"brand_id"`
	PromptIDs      pq.StringArray `db:"prompt_ids"`
	Providers      pq.StringArray `db:"providers"`
	Status         string         `db:"status"`
	Progress       int            `db:"progress"`
	ProcessedCount int            `db:"processed_count"`
	FailedCount    int            `db:"failed_count"`
	FailedReason   *string        `db:"failed_reason"`
	ProcessedOn    *time.Time     `db:"processed_on"`
	FinishedOn     *time.Time     `db:"finished_on"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (row *scanJobRow) toModel() *models.ScanJob {
	providers := make([]models.Provider, len(row.Providers))
	for i, p := range row.Providers {
		providers[i] = models.Provider(p)
	}

	return &models.ScanJob{
		JobID:          row.JobID,
		BrandID:        row.BrandID,
		PromptIDs:      append([]string{}, row.PromptIDs...),
		Providers:      providers,
		Status:         models.JobStatus(row.Status),
		Progress:       row.Progress,
		ProcessedCount: row.ProcessedCount,
		FailedCount:    row.FailedCount,
		FailedReason:   row.FailedReason,
		ProcessedOn:    row.ProcessedOn,
		FinishedOn:     row.FinishedOn,
		CreatedAt:      row.CreatedAt,
	}
}

func (r *scanJobRepo) Create(ctx context.Context, job *models.ScanJob) error {
	providers := make([]string, len(job.Providers))
	for i, p := range job.Providers {
		providers[i] = string(p)
	}

	_, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO scan_jobs (
			job_id, brand_id, prompt_ids, providers, status, progress,
			processed_count, failed_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		job.JobID, job.BrandID, pq.Array(job.PromptIDs), pq.Array(providers),
		job.Status, job.Progress, job.ProcessedCount, job.FailedCount, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create scan job: %w", err)
	}
	return nil
}

// GetByID returns nil when the job id is unknown
func (r *scanJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*models.ScanJob, error) {
	var row scanJobRow
	err := r.db.DB.GetContext(ctx, &row, `
		SELECT job_id, brand_id, prompt_ids, providers, status, progress,
		       processed_count, failed_count, failed_reason,
		       processed_on, finished_on, created_at
		FROM scan_jobs
		WHERE job_id = $1`, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan job: %w", err)
	}
	return row.toModel(), nil
}

func (r *scanJobRepo) MarkActive(ctx context.Context, jobID uuid.UUID) error {
	_, err := r.db.DB.ExecContext(ctx, `
		UPDATE scan_jobs
		SET status = $2, processed_on = NOW()
		WHERE job_id = $1`, jobID, models.JobStatusActive)
	if err != nil {
		return fmt.Errorf("failed to mark scan job active: %w", err)
	}
	return nil
}

// UpdateProgress never moves progress backwards
func (r *scanJobRepo) UpdateProgress(ctx context.Context, jobID uuid.UUID, progress, processedCount, failedCount int) error {
	_, err := r.db.DB.ExecContext(ctx, `
		UPDATE scan_jobs
		SET progress = GREATEST(progress, $2),
		    processed_count = $3,
		    failed_count = $4
		WHERE job_id = $1`, jobID, progress, processedCount, failedCount)
	if err != nil {
		return fmt.Errorf("failed to update scan job progress: %w", err)
	}
	return nil
}

func (r *scanJobRepo) MarkCompleted(ctx context.Context, jobID uuid.UUID, processedCount, failedCount int) error {
	_, err := r.db.DB.ExecContext(ctx, `
		UPDATE scan_jobs
		SET status = $2, progress = 100,
		    processed_count = $3, failed_count = $4,
		    finished_on = NOW()
		WHERE job_id = $1`, jobID, models.JobStatusCompleted, processedCount, failedCount)
	if err != nil {
		return fmt.Errorf("failed to mark scan job completed: %w", err)
	}
	return nil
}

func (r *scanJobRepo) MarkFailed(ctx context.Context, jobID uuid.UUID, reason string) error {
	_, err := r.db.DB.ExecContext(ctx, `
		UPDATE scan_jobs
		SET status = $2, failed_reason = $3, finished_on = NOW()
		WHERE job_id = $1`, jobID, models.JobStatusFailed, reason)
	if err != nil {
		return fmt.Errorf("failed to mark scan job failed: %w", err)
	}
	return nil
}
