// services/metrics_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/brandbeacon/brandbeacon-workflows/internal/repositories"
)

func TestComputeDailySnapshot(t *testing.T) {
	repos, store := newTestRepos()
	brand, _ := seedBrand(store, "Acme", []string{"Globex"}, nil)

	avgRank := 1.5
	store.stats = repositories.MentionStats{
		BrandMentions:      8,
		TotalMentions:      20,
		CitedBrandMentions: 2,
		AvgRank:            &avgRank,
	}

	svc := NewMetricsService(repos)
	metric, err := svc.ComputeDailySnapshot(context.Background(), brand.BrandID, time.Now())
	if err != nil {
		t.Fatalf("ComputeDailySnapshot failed: %v", err)
	}

	if metric.MentionCount != 8 {
		t.Errorf("expected mention count 8, got %d", metric.MentionCount)
	}
	if metric.ShareOfVoice != 0.4 {
		t.Errorf("expected share of voice 0.4, got %f", metric.ShareOfVoice)
	}
	if metric.CitationRate != 0.25 {
		t.Errorf("expected citation rate 0.25, got %f", metric.CitationRate)
	}
	if metric.AvgRank == nil || *metric.AvgRank != 1.5 {
		t.Errorf("expected avg rank 1.5, got %v", metric.AvgRank)
	}
	if len(store.metrics) != 1 {
		t.Fatalf("expected 1 stored metric, got %d", len(store.metrics))
	}
}

func TestComputeDailySnapshotEmptyWindow(t *testing.T) {
	repos, store := newTestRepos()
	brand, _ := seedBrand(store, "Acme", nil, nil)

	svc := NewMetricsService(repos)
	metric, err := svc.ComputeDailySnapshot(context.Background(), brand.BrandID, time.Now())
	if err != nil {
		t.Fatalf("empty window must produce a zero snapshot, got error: %v", err)
	}

	if metric.MentionCount != 0 || metric.ShareOfVoice != 0 || metric.CitationRate != 0 {
		t.Errorf("expected zero snapshot, got %+v", metric)
	}
	if metric.AvgRank != nil {
		t.Errorf("expected nil avg rank for empty window, got %v", metric.AvgRank)
	}
}

func TestComputeAllBrands(t *testing.T) {
	repos, store := newTestRepos()
	seedBrand(store, "Acme", nil, nil)
	seedBrand(store, "Globex", nil, nil)

	svc := NewMetricsService(repos)
	computed, err := svc.ComputeAllBrands(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("ComputeAllBrands failed: %v", err)
	}
	if computed != 2 {
		t.Errorf("expected 2 snapshots, got %d", computed)
	}
	if len(store.metrics) != 2 {
		t.Errorf("expected 2 stored metrics, got %d", len(store.metrics))
	}
}
