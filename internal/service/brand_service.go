package service

import (
	"context"
	"fmt"
	"strings"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/repository"
)

// BrandService defines the interface for brand management
type BrandService interface {
	List(ctx context.Context, skip int, limit *int) ([]domain.Brand, int, error)
	Paginated(ctx context.Context, req repository.PageRequest) ([]domain.Brand, int, error)
	Get(ctx context.Context, id int64) (*domain.Brand, error)
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id int64) error
}

type brandService struct {
	brands repository.BrandRepository
}

// NewBrandService creates a new instance of BrandService
func NewBrandService(brands repository.BrandRepository) BrandService {
	return &brandService{brands: brands}
}

func (s *brandService) List(ctx context.Context, skip int, limit *int) ([]domain.Brand, int, error) {
	if skip < 0 {
		return nil, 0, invalid("skip", "must not be negative")
	}
	n, err := boundedLimit("limit", limit, DefaultPageLimit, MaxPageLimit)
	if err != nil {
		return nil, 0, err
	}

	brands, total, err := s.brands.List(ctx, skip, n)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, total, nil
}

func (s *brandService) Paginated(ctx context.Context, req repository.PageRequest) ([]domain.Brand, int, error) {
	if err := validatePageRequest(&req); err != nil {
		return nil, 0, err
	}

	brands, total, err := s.brands.Paginated(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, total, nil
}

func (s *brandService) Get(ctx context.Context, id int64) (*domain.Brand, error) {
	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return brand, nil
}

func (s *brandService) Create(ctx context.Context, brand *domain.Brand) error {
	if err := validateBrand(brand); err != nil {
		return err
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

func (s *brandService) Update(ctx context.Context, brand *domain.Brand) error {
	if err := validateBrand(brand); err != nil {
		return err
	}
	if err := s.brands.Update(ctx, brand); err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}
	return nil
}

func (s *brandService) Delete(ctx context.Context, id int64) error {
	if err := s.brands.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	return nil
}

func validateBrand(brand *domain.Brand) error {
	brand.Name = strings.TrimSpace(brand.Name)
	if brand.Name == "" {
		return invalid("name", "is required")
	}
	if len(brand.Name) > 50 {
		return invalid("name", "must be at most 50 characters")
	}
	return nil
}

// validatePageRequest fills in the page defaults and rejects out of range values
func validatePageRequest(req *repository.PageRequest) error {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Size == 0 {
		req.Size = 10
	}
	if req.Page < 1 {
		return invalid("page", "must be at least 1")
	}
	if req.Size < 1 || req.Size > MaxPageLimit {
		return invalid("size", "must be between 1 and %d", MaxPageLimit)
	}
	return nil
}
