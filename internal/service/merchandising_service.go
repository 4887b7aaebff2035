package service

import (
	"context"
	"fmt"
	"strings"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/repository"
)

// MerchandisingService manages the stock, specification and promotion records around a product
type MerchandisingService interface {
	GetInventory(ctx context.Context, productID int64) (*domain.Inventory, error)
	SaveInventory(ctx context.Context, inventory *domain.Inventory) error
	GetSpecification(ctx context.Context, productID int64) (*domain.TechnicalSpecification, error)
	SaveSpecification(ctx context.Context, spec *domain.TechnicalSpecification) error
	ListPromotions(ctx context.Context, skip int, limit *int) ([]domain.Promotion, int, error)
	GetPromotion(ctx context.Context, id int64) (*domain.Promotion, error)
	CreatePromotion(ctx context.Context, promotion *domain.Promotion) error
	UpdatePromotion(ctx context.Context, promotion *domain.Promotion) error
	DeletePromotion(ctx context.Context, id int64) error
}

type merchandisingService struct {
	inventory  repository.InventoryRepository
	specs      repository.SpecificationRepository
	promotions repository.PromotionRepository
}

// NewMerchandisingService creates a new instance of MerchandisingService
func NewMerchandisingService(
	inventory repository.InventoryRepository,
	specs repository.SpecificationRepository,
	promotions repository.PromotionRepository,
) MerchandisingService {
	return &merchandisingService{
		inventory:  inventory,
		specs:      specs,
		promotions: promotions,
	}
}

func (s *merchandisingService) GetInventory(ctx context.Context, productID int64) (*domain.Inventory, error) {
	inventory, err := s.inventory.FindByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return inventory, nil
}

func (s *merchandisingService) SaveInventory(ctx context.Context, inventory *domain.Inventory) error {
	switch {
	case inventory.AvailableQuantity < 0:
		return invalid("available_quantity", "must not be negative")
	case inventory.ReservedQuantity < 0:
		return invalid("reserved_quantity", "must not be negative")
	case inventory.MinimumStockLevel < 0:
		return invalid("minimum_stock_level", "must not be negative")
	case inventory.MaximumStockLevel != nil && *inventory.MaximumStockLevel < inventory.MinimumStockLevel:
		return invalid("maximum_stock_level", "must not be below minimum_stock_level")
	}

	if err := s.inventory.Upsert(ctx, inventory); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

func (s *merchandisingService) GetSpecification(ctx context.Context, productID int64) (*domain.TechnicalSpecification, error) {
	spec, err := s.specs.FindByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get technical specification: %w", err)
	}
	return spec, nil
}

func (s *merchandisingService) SaveSpecification(ctx context.Context, spec *domain.TechnicalSpecification) error {
	if err := s.specs.Upsert(ctx, spec); err != nil {
		return fmt.Errorf("failed to save technical specification: %w", err)
	}
	return nil
}

func (s *merchandisingService) ListPromotions(ctx context.Context, skip int, limit *int) ([]domain.Promotion, int, error) {
	if skip < 0 {
		return nil, 0, invalid("skip", "must not be negative")
	}
	n, err := boundedLimit("limit", limit, DefaultPageLimit, MaxPageLimit)
	if err != nil {
		return nil, 0, err
	}

	promotions, total, err := s.promotions.List(ctx, skip, n)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list promotions: %w", err)
	}
	return promotions, total, nil
}

func (s *merchandisingService) GetPromotion(ctx context.Context, id int64) (*domain.Promotion, error) {
	promotion, err := s.promotions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}
	return promotion, nil
}

func (s *merchandisingService) CreatePromotion(ctx context.Context, promotion *domain.Promotion) error {
	if promotion.Status == "" {
		promotion.Status = domain.PromotionStatusActive
	}
	if err := validatePromotion(promotion); err != nil {
		return err
	}
	if err := s.promotions.Create(ctx, promotion); err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}
	return nil
}

func (s *merchandisingService) UpdatePromotion(ctx context.Context, promotion *domain.Promotion) error {
	if err := validatePromotion(promotion); err != nil {
		return err
	}
	if err := s.promotions.Update(ctx, promotion); err != nil {
		return fmt.Errorf("failed to update promotion: %w", err)
	}
	return nil
}

func (s *merchandisingService) DeletePromotion(ctx context.Context, id int64) error {
	if err := s.promotions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	return nil
}

func validatePromotion(p *domain.Promotion) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return invalid("promotion_name", "is required")
	}
	if !p.Type.Valid() {
		return invalid("promotion_type", "must be one of percentage, fixed_amount, bundle")
	}
	if p.Status != domain.PromotionStatusActive && p.Status != domain.PromotionStatusInactive {
		return invalid("status", "must be one of active, inactive")
	}
	if p.ProductID == nil && p.CategoryID == nil {
		return invalid("product_id", "a promotion must target a product or a category")
	}
	if p.EndDate.Before(p.StartDate) {
		return invalid("end_date", "must not be before start_date")
	}

	switch p.Type {
	case domain.PromotionTypePercentage:
		pct := p.DiscountPercentage
		if !pct.Valid || pct.Decimal.IsNegative() || pct.Decimal.GreaterThan(hundred) {
			return invalid("discount_percentage", "must be between 0 and 100")
		}
	case domain.PromotionTypeFixedAmount:
		if !p.DiscountAmount.Valid || p.DiscountAmount.Decimal.IsNegative() {
			return invalid("discount_amount", "must be a non-negative amount")
		}
	}
	return nil
}
