// services/scan_runner_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
	"github.com/brandbeacon/brandbeacon-workflows/internal/parser"
	"github.com/brandbeacon/brandbeacon-workflows/internal/providers"
)

const (
	// At most this many scan jobs execute at once per worker process
	maxConcurrentScans = 2

	// Job starts are limited to scanStartLimit per rolling scanStartWindow
	scanStartLimit  = 10
	scanStartWindow = time.Minute

	// Pacing delay between consecutive (prompt, provider) units
	defaultUnitDelay = 1000 * time.Millisecond
)

type scanRunnerService struct {
	cfg          *config.Config
	repos        *RepositoryManager
	brandService BrandService
	ingestion    IngestionService // optional, best effort
	costService  CostService
	newProvider  func(models.Provider, *config.Config) (providers.AIProvider, error)
	startLimiter *rate.Limiter
	jobSlots     chan struct{}
	unitDelay    time.Duration
}

func NewScanRunnerService(cfg *config.Config, repos *RepositoryManager, brandService BrandService, ingestion IngestionService) ScanRunnerService {
	return &scanRunnerService{
		cfg:          cfg,
		repos:        repos,
		brandService: brandService,
		ingestion:    ingestion,
		costService:  NewCostService(),
		newProvider:  providers.NewProvider,
		startLimiter: rate.NewLimiter(rate.Every(scanStartWindow/scanStartLimit), scanStartLimit),
		jobSlots:     make(chan struct{}, maxConcurrentScans),
		unitDelay:    defaultUnitDelay,
	}
}

// RunScan executes one scan job to completion: every (prompt, provider)
// unit sequentially, tolerating unit-level failures. The job record is the
// single source of truth for status and progress.
func (s *scanRunnerService) RunScan(ctx context.Context, jobID uuid.UUID) (*ScanSummary, error) {
	if err := s.startLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("scan start throttled: %w", err)
	}

	select {
	case s.jobSlots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-s.jobSlots }()

	job, err := s.repos.ScanJobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	fmt.Printf("[RunScan] Starting scan job %s for brand %s: %d prompts x %d providers\n",
		job.JobID, job.BrandID, len(job.PromptIDs), len(job.Providers))

	if err := s.repos.ScanJobRepo.MarkActive(ctx, job.JobID); err != nil {
		return nil, fmt.Errorf("failed to mark job active: %w", err)
	}

	details, err := s.brandService.GetScanDetails(ctx, job.BrandID, job.PromptIDs)
	if err != nil {
		s.failJob(ctx, job.JobID, err)
		return nil, err
	}

	adapters := s.buildAdapters(job.Providers)
	responseParser := parser.NewResponseParser(brandNames(details.Brand), competitorNames(details.Brand))
	resolver := newEntityResolver(details.Brand)

	summary := &ScanSummary{
		JobID:      job.JobID,
		BrandName:  details.Brand.Name,
		TotalUnits: len(details.Prompts) * len(job.Providers),
	}

	unit := 0
	for _, prompt := range details.Prompts {
		for _, provider := range job.Providers {
			if unit > 0 {
				select {
				case <-time.After(s.unitDelay):
				case <-ctx.Done():
					s.failJob(ctx, job.JobID, ctx.Err())
					return nil, ctx.Err()
				}
			}
			unit++

			mentionCount, sourceCount, err := s.processUnit(ctx, adapters[provider], provider, prompt, details.Brand, responseParser, resolver)
			if err != nil {
				summary.FailedCount++
				fmt.Printf("[RunScan] Error processing prompt %s with provider %s: %v\n",
					prompt.PromptID, provider, err)
			} else {
				summary.ProcessedCount++
				summary.MentionCount += mentionCount
				summary.SourceCount += sourceCount
			}

			done := summary.ProcessedCount + summary.FailedCount
			progress := int(math.Round(float64(done) / float64(summary.TotalUnits) * 100))
			if err := s.repos.ScanJobRepo.UpdateProgress(ctx, job.JobID, progress, summary.ProcessedCount, summary.FailedCount); err != nil {
				fmt.Printf("[RunScan] Warning: Failed to update job progress: %v\n", err)
			}
		}
	}

	if err := s.repos.ScanJobRepo.MarkCompleted(ctx, job.JobID, summary.ProcessedCount, summary.FailedCount); err != nil {
		return nil, fmt.Errorf("failed to mark job completed: %w", err)
	}

	fmt.Printf("[RunScan] Completed scan job %s: %d processed, %d failed, %d mentions, %d sources\n",
		job.JobID, summary.ProcessedCount, summary.FailedCount, summary.MentionCount, summary.SourceCount)
	return summary, nil
}

// processUnit handles the complete pipeline for one (prompt, provider) pair
func (s *scanRunnerService) processUnit(
	ctx context.Context,
	adapter providers.AIProvider,
	provider models.Provider,
	prompt *models.Prompt,
	brand *models.Brand,
	responseParser *parser.ResponseParser,
	resolver *entityResolver,
) (int, int, error) {
	if adapter == nil {
		return 0, 0, fmt.Errorf("provider %s is not available", provider)
	}

	result, err := adapter.Query(ctx, prompt.Text)
	if err != nil {
		return 0, 0, fmt.Errorf("provider query failed: %w", err)
	}

	cost := s.costService.CalculateCost(provider, providers.ModelFor(provider), result.Usage.InputTokens, result.Usage.OutputTokens, true)
	fmt.Printf("[processUnit] Provider %s answered prompt %s in %dms (%d in / %d out tokens, $%.6f)\n",
		provider, prompt.PromptID, result.LatencyMs, result.Usage.InputTokens, result.Usage.OutputTokens, cost)

	response := &models.LLMResponse{
		ResponseID:   uuid.New(),
		PromptID:     prompt.PromptID,
		Provider:     provider,
		ResponseText: result.Response,
		InputTokens:  result.Usage.InputTokens,
		OutputTokens: result.Usage.OutputTokens,
		LatencyMs:    result.LatencyMs,
		CreatedAt:    time.Now(),
	}
	if err := s.repos.ResponseRepo.Create(ctx, response); err != nil {
		return 0, 0, fmt.Errorf("failed to store response: %w", err)
	}

	parsed := responseParser.Parse(result.Response, result.Citations)

	mentions := make([]*models.BrandMention, 0, len(parsed.Mentions))
	for _, m := range parsed.Mentions {
		rank := m.RankPosition
		mention := &models.BrandMention{
			MentionID:    uuid.New(),
			ResponseID:   response.ResponseID,
			BrandName:    m.BrandName,
			RankPosition: &rank,
			IsCited:      m.IsCited,
			Context:      m.Context,
			Confidence:   m.Confidence,
			CreatedAt:    time.Now(),
		}
		mention.BrandID, mention.CompetitorID = resolver.resolve(m.BrandName)
		mentions = append(mentions, mention)
	}
	if err := s.repos.MentionRepo.BulkCreate(ctx, mentions); err != nil {
		return 0, 0, fmt.Errorf("failed to store mentions: %w", err)
	}

	sources := make([]*models.CitedSource, 0, len(parsed.Sources))
	for _, src := range parsed.Sources {
		sources = append(sources, &models.CitedSource{
			SourceID:   uuid.New(),
			ResponseID: response.ResponseID,
			URL:        src.URL,
			Domain:     src.Domain,
			Title:      src.Title,
			Context:    src.Context,
			CreatedAt:  time.Now(),
		})
	}
	if err := s.repos.SourceRepo.BulkCreate(ctx, sources); err != nil {
		return 0, 0, fmt.Errorf("failed to store sources: %w", err)
	}

	if s.ingestion != nil {
		if err := s.ingestion.IndexScanResponse(ctx, response, brand.Name); err != nil {
			fmt.Printf("[processUnit] Warning: Failed to index response %s: %v\n", response.ResponseID, err)
		}
	}

	return len(mentions), len(sources), nil
}

func (s *scanRunnerService) buildAdapters(providerList []models.Provider) map[models.Provider]providers.AIProvider {
	adapters := make(map[models.Provider]providers.AIProvider, len(providerList))
	for _, provider := range providerList {
		adapter, err := s.newProvider(provider, s.cfg)
		if err != nil {
			fmt.Printf("[buildAdapters] Warning: Provider %s unavailable: %v\n", provider, err)
			adapters[provider] = nil
			continue
		}
		adapters[provider] = adapter
	}
	return adapters
}

func (s *scanRunnerService) failJob(ctx context.Context, jobID uuid.UUID, cause error) {
	if err := s.repos.ScanJobRepo.MarkFailed(ctx, jobID, cause.Error()); err != nil {
		fmt.Printf("[RunScan] Warning: Failed to mark job %s failed: %v\n", jobID, err)
	}
}

func brandNames(brand *models.Brand) []string {
	return []string{brand.Name}
}

func competitorNames(brand *models.Brand) []string {
	names := make([]string, 0, len(brand.Competitors))
	for _, c := range brand.Competitors {
		names = append(names, c.Name)
	}
	return names
}

// entityResolver maps detected names back onto brand/competitor rows.
// Matching is case-insensitive; unrecognized names resolve to neither.
type entityResolver struct {
	brandID     uuid.UUID
	brandName   string
	competitors map[string]uuid.UUID
}

func newEntityResolver(brand *models.Brand) *entityResolver {
	competitors := make(map[string]uuid.UUID, len(brand.Competitors))
	for _, c := range brand.Competitors {
		competitors[strings.ToLower(c.Name)] = c.CompetitorID
	}
	return &entityResolver{
		brandID:     brand.BrandID,
		brandName:   strings.ToLower(brand.Name),
		competitors: competitors,
	}
}

func (r *entityResolver) resolve(name string) (*uuid.UUID, *uuid.UUID) {
	lower := strings.ToLower(name)
	if lower == r.brandName {
		id := r.brandID
		return &id, nil
	}
	if competitorID, ok := r.competitors[lower]; ok {
		id := competitorID
		return nil, &id
	}
	return nil, nil
}
