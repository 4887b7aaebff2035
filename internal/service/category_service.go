package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/repository"
)

// ErrCategoryCycle is returned when a category would become its own ancestor
var ErrCategoryCycle = errors.New("category cannot be nested under itself or its descendants")

// CategoryService defines the interface for the category tree
type CategoryService interface {
	List(ctx context.Context, filter repository.CategoryFilter, skip int, limit *int) ([]domain.Category, int, error)
	ListMain(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context, filter repository.CategoryFilter, skip int, limit *int) ([]domain.Category, int, error) {
	if skip < 0 {
		return nil, 0, invalid("skip", "must not be negative")
	}
	n, err := boundedLimit("limit", limit, DefaultPageLimit, MaxPageLimit)
	if err != nil {
		return nil, 0, err
	}

	categories, total, err := s.categories.List(ctx, filter, skip, n)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// ListMain returns every active root category
func (s *categoryService) ListMain(ctx context.Context) ([]domain.Category, error) {
	active := true
	categories, _, err := s.categories.List(ctx, repository.CategoryFilter{IsActive: &active, MainOnly: true}, 0, MaxPageLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list main categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, category *domain.Category) error {
	if err := s.validate(ctx, category); err != nil {
		return err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *categoryService) Update(ctx context.Context, category *domain.Category) error {
	if err := s.validate(ctx, category); err != nil {
		return err
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// validate checks the name and that the parent exists and is not a descendant
func (s *categoryService) validate(ctx context.Context, category *domain.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return invalid("category_name", "is required")
	}

	if category.ParentCategoryID == nil {
		return nil
	}

	parentID := *category.ParentCategoryID
	if category.ID != 0 && parentID == category.ID {
		return ErrCategoryCycle
	}

	ancestors, err := s.categories.AncestorIDs(ctx, parentID)
	if err != nil {
		return fmt.Errorf("failed to check parent category: %w", err)
	}
	if len(ancestors) == 0 {
		return fmt.Errorf("parent category %d: %w", parentID, repository.ErrCategoryNotFound)
	}

	if category.ID != 0 {
		for _, ancestor := range ancestors {
			if ancestor == category.ID {
				return ErrCategoryCycle
			}
		}
	}

	return nil
}
