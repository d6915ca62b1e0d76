// services/testing_test.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
	"github.com/brandbeacon/brandbeacon-workflows/internal/repositories"
)

// memStore is a shared in-memory backing store for repository fakes
type memStore struct {
	brands    map[uuid.UUID]*models.Brand
	prompts   map[uuid.UUID]*models.Prompt
	responses []*models.LLMResponse
	mentions  []*models.BrandMention
	sources   []*models.CitedSource
	jobs      map[uuid.UUID]*models.ScanJob
	metrics   []*models.VisibilityMetric
	stats     repositories.MentionStats
}

func newTestRepos() (*RepositoryManager, *memStore) {
	store := &memStore{
		brands:  make(map[uuid.UUID]*models.Brand),
		prompts: make(map[uuid.UUID]*models.Prompt),
		jobs:    make(map[uuid.UUID]*models.ScanJob),
	}
	return &RepositoryManager{
		BrandRepo:    &memBrandRepo{store},
		PromptRepo:   &memPromptRepo{store},
		ResponseRepo: &memResponseRepo{store},
		MentionRepo:  &memMentionRepo{store},
		SourceRepo:   &memSourceRepo{store},
		ScanJobRepo:  &memScanJobRepo{store},
		MetricRepo:   &memMetricRepo{store},
	}, store
}

type memBrandRepo struct{ store *memStore }

func (r *memBrandRepo) GetByID(_ context.Context, brandID uuid.UUID) (*models.Brand, error) {
	return r.store.brands[brandID], nil
}

func (r *memBrandRepo) ListIDs(_ context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.store.brands))
	for id := range r.store.brands {
		ids = append(ids, id)
	}
	return ids, nil
}

type memPromptRepo struct{ store *memStore }

func (r *memPromptRepo) GetByIDs(_ context.Context, promptIDs []uuid.UUID) ([]*models.Prompt, error) {
	var prompts []*models.Prompt
	for _, id := range promptIDs {
		if p, ok := r.store.prompts[id]; ok {
			prompts = append(prompts, p)
		}
	}
	return prompts, nil
}

func (r *memPromptRepo) GetByBrand(_ context.Context, brandID uuid.UUID) ([]*models.Prompt, error) {
	var prompts []*models.Prompt
	for _, p := range r.store.prompts {
		prompts = append(prompts, p)
	}
	return prompts, nil
}

type memResponseRepo struct{ store *memStore }

func (r *memResponseRepo) Create(_ context.Context, response *models.LLMResponse) error {
	r.store.responses = append(r.store.responses, response)
	return nil
}

type memMentionRepo struct{ store *memStore }

func (r *memMentionRepo) BulkCreate(_ context.Context, mentions []*models.BrandMention) error {
	r.store.mentions = append(r.store.mentions, mentions...)
	return nil
}

func (r *memMentionRepo) ListRecentByBrand(_ context.Context, brandID uuid.UUID, limit int) ([]*models.BrandMention, error) {
	var out []*models.BrandMention
	for i := len(r.store.mentions) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.store.mentions[i]
		if m.BrandID != nil && *m.BrandID == brandID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memSourceRepo struct{ store *memStore }

func (r *memSourceRepo) BulkCreate(_ context.Context, sources []*models.CitedSource) error {
	r.store.sources = append(r.store.sources, sources...)
	return nil
}

type memScanJobRepo struct{ store *memStore }

func (r *memScanJobRepo) Create(_ context.Context, job *models.ScanJob) error {
	clone := *job
	r.store.jobs[job.JobID] = &clone
	return nil
}

func (r *memScanJobRepo) GetByID(_ context.Context, jobID uuid.UUID) (*models.ScanJob, error) {
	return r.store.jobs[jobID], nil
}

func (r *memScanJobRepo) MarkActive(_ context.Context, jobID uuid.UUID) error {
	now := time.Now()
	job := r.store.jobs[jobID]
	job.Status = models.JobStatusActive
	job.ProcessedOn = &now
	return nil
}

func (r *memScanJobRepo) UpdateProgress(_ context.Context, jobID uuid.UUID, progress, processedCount, failedCount int) error {
	job := r.store.jobs[jobID]
	if progress > job.Progress {
		job.Progress = progress
	}
	job.ProcessedCount = processedCount
	job.FailedCount = failedCount
	return nil
}

func (r *memScanJobRepo) MarkCompleted(_ context.Context, jobID uuid.UUID, processedCount, failedCount int) error {
	now := time.Now()
	job := r.store.jobs[jobID]
	job.Status = models.JobStatusCompleted
	job.Progress = 100
	job.ProcessedCount = processedCount
	job.FailedCount = failedCount
	job.FinishedOn = &now
	return nil
}

func (r *memScanJobRepo) MarkFailed(_ context.Context, jobID uuid.UUID, reason string) error {
	now := time.Now()
	job := r.store.jobs[jobID]
	job.Status = models.JobStatusFailed
	job.FailedReason = &reason
	job.FinishedOn = &now
	return nil
}

type memMetricRepo struct{ store *memStore }

func (r *memMetricRepo) Upsert(_ context.Context, metric *models.VisibilityMetric) error {
	for i, existing := range r.store.metrics {
		if existing.BrandID == metric.BrandID && existing.MetricDate.Equal(metric.MetricDate) {
			r.store.metrics[i] = metric
			return nil
		}
	}
	r.store.metrics = append(r.store.metrics, metric)
	return nil
}

func (r *memMetricRepo) MentionStatsSince(_ context.Context, brandID uuid.UUID, since time.Time) (*repositories.MentionStats, error) {
	stats := r.store.stats
	return &stats, nil
}

// seedBrand adds a brand with competitors and prompts, returning ids
func seedBrand(store *memStore, name string, competitors []string, promptTexts []string) (*models.Brand, []string) {
	brand := &models.Brand{
		BrandID:   uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	for _, c := range competitors {
		brand.Competitors = append(brand.Competitors, models.Competitor{
			CompetitorID: uuid.New(),
			BrandID:      brand.BrandID,
			Name:         c,
		})
	}
	store.brands[brand.BrandID] = brand

	var promptIDs []string
	for _, text := range promptTexts {
		p := &models.Prompt{PromptID: uuid.New(), TopicID: uuid.New(), Text: text}
		store.prompts[p.PromptID] = p
		promptIDs = append(promptIDs, p.PromptID.String())
	}
	return brand, promptIDs
}
