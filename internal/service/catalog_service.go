package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageLimit        = 100
	MaxPageLimit            = 100
	DefaultSuggestionLimit  = 4
	DefaultQuickSearchLimit = 5
	MaxLookupLimit          = 10
)

var (
	suggestionLowerBand = decimal.RequireFromString("0.8")
	suggestionUpperBand = decimal.RequireFromString("1.2")
	hundred             = decimal.NewFromInt(100)
)

// CatalogQuery is a catalog listing request as received from a client
type CatalogQuery struct {
	Search      string
	CategoryIDs []int64
	BrandIDs    []int64
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	SortBy      string
	SortOrder   string
	Attributes  map[string][]string
	Skip        int
	Limit       *int
}

// CatalogService defines the interface for the product catalog
type CatalogService interface {
	Search(ctx context.Context, query CatalogQuery) (*domain.ProductPage, error)
	List(ctx context.Context, query CatalogQuery) (*domain.ProductPage, error)
	GetDetail(ctx context.Context, id int64) (*domain.DetailedProduct, error)
	Suggestions(ctx context.Context, id int64, limit *int) ([]domain.ProductListItem, error)
	QuickSearch(ctx context.Context, search string, limit *int) ([]domain.ProductQuickView, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type catalogService struct {
	products   repository.ProductRepository
	inventory  repository.InventoryRepository
	specs      repository.SpecificationRepository
	promotions repository.PromotionRepository
	now        func() time.Time
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	specs repository.SpecificationRepository,
	promotions repository.PromotionRepository,
) CatalogService {
	return &catalogService{
		products:   products,
		inventory:  inventory,
		specs:      specs,
		promotions: promotions,
		now:        time.Now,
	}
}

// Search returns a page of the filtered catalog together with facets over the whole filtered set
func (s *catalogService) Search(ctx context.Context, query CatalogQuery) (*domain.ProductPage, error) {
	return s.search(ctx, query, true)
}

// List returns a page of the filtered catalog without facets
func (s *catalogService) List(ctx context.Context, query CatalogQuery) (*domain.ProductPage, error) {
	return s.search(ctx, query, false)
}

func (s *catalogService) search(ctx context.Context, query CatalogQuery, withFacets bool) (*domain.ProductPage, error) {
	filter, err := query.toFilter()
	if err != nil {
		return nil, err
	}

	if query.Skip < 0 {
		return nil, invalid("skip", "must not be negative")
	}

	limit := DefaultPageLimit
	if query.Limit != nil {
		if *query.Limit < 0 {
			return nil, invalid("limit", "must not be negative")
		}
		limit = *query.Limit
	}

	page, err := s.products.Search(ctx, filter, query.Skip, limit, withFacets)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}

	return page, nil
}

// toFilter validates the client query and converts it into a filter
func (q CatalogQuery) toFilter() (domain.ProductFilter, error) {
	filter := domain.ProductFilter{
		Search:      q.Search,
		CategoryIDs: q.CategoryIDs,
		BrandIDs:    q.BrandIDs,
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
	}

	switch domain.SortField(q.SortBy) {
	case domain.SortFieldNone, domain.SortFieldPrice, domain.SortFieldName:
		filter.SortBy = domain.SortField(q.SortBy)
	default:
		return filter, invalid("sort_by", "must be one of price, name")
	}

	switch strings.ToLower(q.SortOrder) {
	case "", "asc":
	case "desc":
		filter.Descending = true
	default:
		return filter, invalid("sort_order", "must be one of asc, desc")
	}

	if q.MinPrice != nil && q.MinPrice.IsNegative() {
		return filter, invalid("min_price", "must not be negative")
	}
	if q.MaxPrice != nil && q.MaxPrice.IsNegative() {
		return filter, invalid("max_price", "must not be negative")
	}

	if len(q.Attributes) > 0 {
		filter.Attributes = make(map[domain.AttributeKey][]string, len(q.Attributes))
		for name, values := range q.Attributes {
			key := domain.AttributeKey(name)
			if err := key.Validate(); err != nil {
				return filter, invalid("attributes", "%v", err)
			}
			filter.Attributes[key] = values
		}
	}

	return filter, nil
}

// GetDetail assembles the product detail view with stock, specification and pricing
func (s *catalogService) GetDetail(ctx context.Context, id int64) (*domain.DetailedProduct, error) {
	item, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	inventory, err := s.inventory.FindByProductID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrInventoryNotFound) {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	spec, err := s.specs.FindByProductID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrSpecificationNotFound) {
		return nil, fmt.Errorf("failed to get technical specification: %w", err)
	}

	var categoryIDs []int64
	for _, categoryID := range []*int64{item.CategoryID, item.SubcategoryID} {
		if categoryID != nil {
			categoryIDs = append(categoryIDs, *categoryID)
		}
	}

	now := s.now()
	promotions, err := s.promotions.ActiveFor(ctx, id, categoryIDs, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get active promotions: %w", err)
	}

	return assembleDetail(*item, inventory, spec, promotions, now), nil
}

// assembleDetail derives sale state, current price and stock status.
// The largest single discount wins and the price never drops below zero.
func assembleDetail(
	item domain.ProductListItem,
	inventory *domain.Inventory,
	spec *domain.TechnicalSpecification,
	promotions []domain.Promotion,
	now time.Time,
) *domain.DetailedProduct {
	active := []domain.Promotion{}
	best := decimal.Zero
	for i := range promotions {
		if !promotions[i].ActiveAt(now) {
			continue
		}
		active = append(active, promotions[i])
		if discount := promotions[i].Discount(item.RegularPrice); discount.GreaterThan(best) {
			best = discount
		}
	}

	current := item.RegularPrice.Sub(best)
	if current.IsNegative() {
		current = decimal.Zero
	}

	return &domain.DetailedProduct{
		ProductListItem:  item,
		Inventory:        inventory,
		TechnicalSpecs:   spec,
		ActivePromotions: active,
		StockStatus:      inventory.StockStatus(),
		IsOnSale:         len(active) > 0,
		CurrentPrice:     current.Round(2),
	}
}

// Suggestions returns active products similar to the reference product
func (s *catalogService) Suggestions(ctx context.Context, id int64, limit *int) ([]domain.ProductListItem, error) {
	n, err := boundedLimit("limit", limit, DefaultSuggestionLimit, MaxLookupLimit)
	if err != nil {
		return nil, err
	}

	ref, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reference product: %w", err)
	}

	items, err := s.products.Suggestions(ctx, repository.SuggestionCriteria{
		ExcludeID:     ref.ID,
		CategoryID:    ref.CategoryID,
		SubcategoryID: ref.SubcategoryID,
		BrandID:       ref.BrandID,
		MinPrice:      ref.RegularPrice.Mul(suggestionLowerBand),
		MaxPrice:      ref.RegularPrice.Mul(suggestionUpperBand),
		Limit:         n,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}

	return items, nil
}

// QuickSearch resolves the search bar dropdown
func (s *catalogService) QuickSearch(ctx context.Context, search string, limit *int) ([]domain.ProductQuickView, error) {
	if search == "" {
		return nil, invalid("search", "is required")
	}

	n, err := boundedLimit("limit", limit, DefaultQuickSearchLimit, MaxLookupLimit)
	if err != nil {
		return nil, err
	}

	results, err := s.products.QuickSearch(ctx, search, n)
	if err != nil {
		return nil, fmt.Errorf("failed to quick search: %w", err)
	}

	return results, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.Status == "" {
		product.Status = domain.ProductStatusActive
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func validateProduct(product *domain.Product) error {
	if !product.Status.Valid() {
		return invalid("status", "unknown product status %q", product.Status)
	}
	if product.RegularPrice.IsNegative() {
		return invalid("regular_price", "must not be negative")
	}
	if product.SalePrice.Valid && product.SalePrice.Decimal.IsNegative() {
		return invalid("sale_price", "must not be negative")
	}
	if err := product.Attributes.Validate(); err != nil {
		return invalid("attributes", "%v", err)
	}
	return nil
}
