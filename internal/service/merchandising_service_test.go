package service

import (
	"context"
	"testing"
	"time"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMerchandisingFixture() (MerchandisingService, *mockInventoryRepository, *mockPromotionRepository) {
	inventory := newMockInventoryRepository()
	promotions := newMockPromotionRepository()
	return NewMerchandisingService(inventory, newMockSpecificationRepository(), promotions), inventory, promotions
}

func TestMerchandisingService_SaveInventory(t *testing.T) {
	svc, repo, _ := newMerchandisingFixture()
	ctx := context.Background()

	tests := []struct {
		name      string
		inventory domain.Inventory
		field     string
	}{
		{"negative available", domain.Inventory{ProductID: 1, AvailableQuantity: -1}, "available_quantity"},
		{"negative reserved", domain.Inventory{ProductID: 1, ReservedQuantity: -3}, "reserved_quantity"},
		{"negative minimum", domain.Inventory{ProductID: 1, MinimumStockLevel: -1}, "minimum_stock_level"},
		{"maximum below minimum", domain.Inventory{ProductID: 1, MinimumStockLevel: 10, MaximumStockLevel: intPtr(5)}, "maximum_stock_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inventory := tt.inventory
			err := svc.SaveInventory(ctx, &inventory)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	require.NoError(t, svc.SaveInventory(ctx, &domain.Inventory{ProductID: 1, AvailableQuantity: 12, MinimumStockLevel: 2, MaximumStockLevel: intPtr(50)}))
	assert.Equal(t, 12, repo.rows[1].AvailableQuantity)

	_, err := svc.GetInventory(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrInventoryNotFound)
}

func TestMerchandisingService_PromotionValidation(t *testing.T) {
	svc, _, _ := newMerchandisingFixture()
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	valid := func() *domain.Promotion {
		return &domain.Promotion{
			Name:               "Summer",
			ProductID:          int64Ptr(1),
			Type:               domain.PromotionTypePercentage,
			DiscountPercentage: decimal.NewNullDecimal(decimal.NewFromInt(10)),
			StartDate:          start,
			EndDate:            start.Add(24 * time.Hour),
		}
	}

	tests := []struct {
		name   string
		mutate func(p *domain.Promotion)
		field  string
	}{
		{"missing name", func(p *domain.Promotion) { p.Name = " " }, "promotion_name"},
		{"unknown type", func(p *domain.Promotion) { p.Type = "bogo" }, "promotion_type"},
		{"unknown status", func(p *domain.Promotion) { p.Status = "paused" }, "status"},
		{"no target", func(p *domain.Promotion) { p.ProductID = nil }, "product_id"},
		{"inverted window", func(p *domain.Promotion) { p.EndDate = start.Add(-time.Hour) }, "end_date"},
		{"percentage above 100", func(p *domain.Promotion) {
			p.DiscountPercentage = decimal.NewNullDecimal(decimal.NewFromInt(101))
		}, "discount_percentage"},
		{"fixed amount missing", func(p *domain.Promotion) { p.Type = domain.PromotionTypeFixedAmount }, "discount_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := svc.CreatePromotion(ctx, p)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	p := valid()
	require.NoError(t, svc.CreatePromotion(ctx, p))
	assert.Equal(t, domain.PromotionStatusActive, p.Status)

	bundle := valid()
	bundle.Type = domain.PromotionTypeBundle
	bundle.DiscountPercentage = decimal.NullDecimal{}
	require.NoError(t, svc.CreatePromotion(ctx, bundle))

	promotions, total, err := svc.ListPromotions(ctx, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, promotions, 2)

	require.NoError(t, svc.DeletePromotion(ctx, p.ID))
	_, err = svc.GetPromotion(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrPromotionNotFound)
}
