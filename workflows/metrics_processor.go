// workflows/metrics_processor.go
package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"

	"github.com/brandbeacon/brandbeacon-workflows/services"
)

// MetricsEventName triggers an on-demand metrics rollup for one brand
const MetricsEventName = "metrics.compute"

type MetricsProcessor struct {
	metricsService services.MetricsService
	client         inngestgo.Client
}

func NewMetricsProcessor(metricsService services.MetricsService) *MetricsProcessor {
	return &MetricsProcessor{
		metricsService: metricsService,
	}
}

func (p *MetricsProcessor) SetClient(client inngestgo.Client) {
	p.client = client
}

// DailyMetricsRollup snapshots visibility metrics for every brand once a day
func (p *MetricsProcessor) DailyMetricsRollup() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:      "daily-metrics-rollup",
			Name:    "Daily Visibility Metrics Rollup",
			Retries: inngestgo.IntPtr(3),
		},
		inngestgo.CronTrigger("0 3 * * *"), // Every day at 3 AM UTC
		func(ctx context.Context, input inngestgo.Input[any]) (any, error) {
			now := time.Now()

			computed, err := step.Run(ctx, "compute-all-brand-metrics", func(ctx context.Context) (int, error) {
				return p.metricsService.ComputeAllBrands(ctx, now)
			})
			if err != nil {
				return nil, fmt.Errorf("failed to compute brand metrics: %w", err)
			}

			return map[string]interface{}{
				"execution_date":  now.Format("2006-01-02"),
				"brands_snapshot": computed,
				"message":         fmt.Sprintf("Computed visibility snapshots for %d brands", computed),
			}, nil
		},
	)
	if err != nil {
		panic(fmt.Errorf("failed to create DailyMetricsRollup function: %w", err))
	}
	return fn
}

// ComputeBrandMetrics recomputes one brand's snapshot on demand, typically
// right after a scan finishes
func (p *MetricsProcessor) ComputeBrandMetrics() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:      "compute-brand-metrics",
			Name:    "Compute Brand Visibility Metrics",
			Retries: inngestgo.IntPtr(3),
		},
		inngestgo.EventTrigger(MetricsEventName, nil),
		func(ctx context.Context, input inngestgo.Input[MetricsEvent]) (any, error) {
			brandID, err := uuid.Parse(input.Event.Data.BrandID)
			if err != nil {
				return nil, fmt.Errorf("invalid brand ID format: %w", err)
			}

			metric, err := step.Run(ctx, "compute-brand-snapshot", func(ctx context.Context) (interface{}, error) {
				return p.metricsService.ComputeDailySnapshot(ctx, brandID, time.Now())
			})
			if err != nil {
				return nil, fmt.Errorf("failed to compute brand snapshot: %w", err)
			}

			return map[string]interface{}{
				"brand_id": brandID.String(),
				"metric":   metric,
			}, nil
		},
	)
	if err != nil {
		panic(fmt.Errorf("failed to create ComputeBrandMetrics function: %w", err))
	}
	return fn
}

// MetricsEvent is the payload of a metrics.compute event
type MetricsEvent struct {
	BrandID     string `json:"brand_id"`
	TriggeredBy string `json:"triggered_by,omitempty"`
}
