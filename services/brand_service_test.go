// services/brand_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGetScanDetails(t *testing.T) {
	repos, store := newTestRepos()
	brand, promptIDs := seedBrand(store, "Acme", []string{"Globex", "Initech"}, []string{"best CRM?", "top CRM tools?"})

	svc := NewBrandService(repos)

	details, err := svc.GetScanDetails(context.Background(), brand.BrandID, promptIDs)
	if err != nil {
		t.Fatalf("GetScanDetails failed: %v", err)
	}
	if details.Brand.Name != "Acme" {
		t.Errorf("expected brand Acme, got %s", details.Brand.Name)
	}
	if len(details.Brand.Competitors) != 2 {
		t.Errorf("expected 2 competitors, got %d", len(details.Brand.Competitors))
	}
	if len(details.Prompts) != 2 {
		t.Errorf("expected 2 prompts, got %d", len(details.Prompts))
	}
}

func TestGetScanDetailsAllPromptsWhenUnspecified(t *testing.T) {
	repos, store := newTestRepos()
	brand, _ := seedBrand(store, "Acme", nil, []string{"a", "b", "c"})

	svc := NewBrandService(repos)
	details, err := svc.GetScanDetails(context.Background(), brand.BrandID, nil)
	if err != nil {
		t.Fatalf("GetScanDetails failed: %v", err)
	}
	if len(details.Prompts) != 3 {
		t.Errorf("expected all 3 prompts, got %d", len(details.Prompts))
	}
}

func TestGetScanDetailsBrandNotFound(t *testing.T) {
	repos, _ := newTestRepos()
	svc := NewBrandService(repos)

	_, err := svc.GetScanDetails(context.Background(), uuid.New(), nil)
	if !errors.Is(err, ErrBrandNotFound) {
		t.Errorf("expected ErrBrandNotFound, got %v", err)
	}
}

func TestGetScanDetailsNoPrompts(t *testing.T) {
	repos, store := newTestRepos()
	brand, _ := seedBrand(store, "Acme", nil, nil)

	svc := NewBrandService(repos)
	_, err := svc.GetScanDetails(context.Background(), brand.BrandID, nil)
	if !errors.Is(err, ErrNoPrompts) {
		t.Errorf("expected ErrNoPrompts, got %v", err)
	}
}

func TestGetScanDetailsInvalidPromptID(t *testing.T) {
	repos, store := newTestRepos()
	brand, _ := seedBrand(store, "Acme", nil, []string{"a"})

	svc := NewBrandService(repos)
	_, err := svc.GetScanDetails(context.Background(), brand.BrandID, []string{"not-a-uuid"})
	if err == nil {
		t.Error("expected error for malformed prompt id")
	}
}

func TestGetBrand(t *testing.T) {
	repos, store := newTestRepos()
	brand, _ := seedBrand(store, "Acme", []string{"Globex"}, nil)

	svc := NewBrandService(repos)

	got, err := svc.GetBrand(context.Background(), brand.BrandID)
	if err != nil {
		t.Fatalf("GetBrand failed: %v", err)
	}
	if got.Name != "Acme" {
		t.Errorf("expected brand Acme, got %s", got.Name)
	}
}

func TestGetBrandNotFound(t *testing.T) {
	repos, _ := newTestRepos()
	svc := NewBrandService(repos)

	_, err := svc.GetBrand(context.Background(), uuid.New())
	if !errors.Is(err, ErrBrandNotFound) {
		t.Errorf("expected ErrBrandNotFound, got %v", err)
	}
}
