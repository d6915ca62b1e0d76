// services/brand_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

type brandService struct {
	repos *RepositoryManager
}

func NewBrandService(repos *RepositoryManager) BrandService {
	return &brandService{repos: repos}
}

func (s *brandService) GetBrand(ctx context.Context, brandID uuid.UUID) (*models.Brand, error) {
	brand, err := s.repos.BrandRepo.GetByID(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	return brand, nil
}

func (s *brandService) GetScanDetails(ctx context.Context, brandID uuid.UUID, promptIDs []string) (*ScanDetails, error) {
	fmt.Printf("[GetScanDetails] Fetching scan details for brand: %s\n", brandID)

	brand, err := s.repos.BrandRepo.GetByID(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	prompts, err := s.loadPrompts(ctx, brandID, promptIDs)
	if err != nil {
		return nil, err
	}
	if len(prompts) == 0 {
		return nil, ErrNoPrompts
	}

	fmt.Printf("[GetScanDetails] Successfully loaded brand: %s with %d competitors, %d prompts\n",
		brand.Name, len(brand.Competitors), len(prompts))

	return &ScanDetails{Brand: brand, Prompts: prompts}, nil
}

func (s *brandService) loadPrompts(ctx context.Context, brandID uuid.UUID, promptIDs []string) ([]*models.Prompt, error) {
	if len(promptIDs) == 0 {
		prompts, err := s.repos.PromptRepo.GetByBrand(ctx, brandID)
		if err != nil {
			return nil, fmt.Errorf("failed to get brand prompts: %w", err)
		}
		return prompts, nil
	}

	ids := make([]uuid.UUID, 0, len(promptIDs))
	for _, raw := range promptIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid prompt ID format: %w", err)
		}
		ids = append(ids, id)
	}

	prompts, err := s.repos.PromptRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get prompts: %w", err)
	}
	return prompts, nil
}
