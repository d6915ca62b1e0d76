// workflows/scan_processor.go
package workflows

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/services"
)

// ScanEventName triggers one brand scan job
const ScanEventName = "brand.scan"

type ScanProcessor struct {
	scanRunnerService services.ScanRunnerService
	client            inngestgo.Client
	cfg               *config.Config
}

func NewScanProcessor(scanRunnerService services.ScanRunnerService, cfg *config.Config) *ScanProcessor {
	return &ScanProcessor{
		scanRunnerService: scanRunnerService,
		cfg:               cfg,
	}
}

func (p *ScanProcessor) SetClient(client inngestgo.Client) {
	p.client = client
}

func (p *ScanProcessor) ProcessScan() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:   "process-brand-scan",
			Name: "Process Brand Scan - Prompts x Providers Visibility Pipeline",
			// Units are already failure-tolerant inside the run; a function
			// retry would re-query providers for units that succeeded
			Retries: inngestgo.IntPtr(0),
		},
		inngestgo.EventTrigger(ScanEventName, nil),
		func(ctx context.Context, input inngestgo.Input[ScanEvent]) (any, error) {
			jobID, err := uuid.Parse(input.Event.Data.JobID)
			if err != nil {
				return nil, fmt.Errorf("invalid job ID format: %w", err)
			}

			fmt.Printf("[ProcessScan] Starting brand scan pipeline for job: %s\n", jobID)

			summary, err := step.Run(ctx, "run-scan-job", func(ctx context.Context) (*services.ScanSummary, error) {
				return p.scanRunnerService.RunScan(ctx, jobID)
			})
			if err != nil {
				return nil, fmt.Errorf("scan run failed: %w", err)
			}

			fmt.Printf("[ProcessScan] Completed scan job %s: %d/%d units processed, %d failed\n",
				jobID, summary.ProcessedCount, summary.TotalUnits, summary.FailedCount)

			return map[string]interface{}{
				"job_id":          jobID.String(),
				"brand_name":      summary.BrandName,
				"status":          "completed",
				"total_units":     summary.TotalUnits,
				"processed_count": summary.ProcessedCount,
				"failed_count":    summary.FailedCount,
				"mention_count":   summary.MentionCount,
				"source_count":    summary.SourceCount,
			}, nil
		},
	)
	if err != nil {
		panic(fmt.Errorf("failed to create ProcessScan function: %w", err))
	}
	return fn
}

// ScanEvent is the payload of a brand.scan event
type ScanEvent struct {
	JobID       string `json:"job_id"`
	BrandID     string `json:"brand_id"`
	TriggeredBy string `json:"triggered_by,omitempty"`
}
