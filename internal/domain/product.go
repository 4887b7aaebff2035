package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the lifecycle state of a product in the catalog
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusOutOfStock   ProductStatus = "out_of_stock"
	ProductStatusByOrder      ProductStatus = "by_order"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Valid reports whether s is one of the known product statuses
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusOutOfStock, ProductStatusByOrder, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product represents a product in the catalog
type Product struct {
	ID              int64               `json:"product_id" db:"product_id"`
	Code            string              `json:"product_code" db:"product_code"`
	Name            string              `json:"name" db:"name"`
	Description     *string             `json:"description" db:"description"`
	RegularPrice    decimal.Decimal     `json:"regular_price" db:"regular_price"`
	SalePrice       decimal.NullDecimal `json:"sale_price" db:"sale_price"`
	BrandID         *int64              `json:"brand_id" db:"brand_id"`
	UnitOfMeasure   string              `json:"unit_of_measure" db:"unit_of_measure"`
	ImageURL        *string             `json:"image_url" db:"image_url"`
	ImageURLDetails *string             `json:"image_url_details" db:"image_url_details"`
	Status          ProductStatus       `json:"status" db:"status"`
	CategoryID      *int64              `json:"category_id" db:"category_id"`
	SubcategoryID   *int64              `json:"subcategory_id" db:"subcategory_id"`
	Attributes      Attributes          `json:"attributes"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" db:"updated_at"`
}

// ProductListItem is a product row joined with the names of its brand and categories
type ProductListItem struct {
	Product
	BrandName          *string `json:"brand_name"`
	CategoryName       *string `json:"category_name"`
	SubcategoryName    *string `json:"subcategory_name"`
	ParentCategoryName *string `json:"parent_category_name"`
}

// ProductQuickView is the reduced projection returned by the search bar dropdown
type ProductQuickView struct {
	ID           int64               `json:"product_id"`
	Code         string              `json:"product_code"`
	Name         string              `json:"name"`
	Description  *string             `json:"description"`
	RegularPrice decimal.Decimal     `json:"regular_price"`
	SalePrice    decimal.NullDecimal `json:"sale_price"`
	ImageURL     *string             `json:"image_url"`
}

// TechnicalSpecification holds the descriptive specification of a product
type TechnicalSpecification struct {
	ID                     int64   `json:"spec_id" db:"spec_id"`
	ProductID              int64   `json:"product_id" db:"product_id"`
	StandardCompliance     *string `json:"standard_compliance" db:"standard_compliance"`
	CertificationDetails   *string `json:"certification_details" db:"certification_details"`
	UsageRecommendations   *string `json:"usage_recommendations" db:"usage_recommendations"`
	InstallationGuidelines *string `json:"installation_guidelines" db:"installation_guidelines"`
	TechnicalDrawingURL    *string `json:"technical_drawing_url" db:"technical_drawing_url"`
	SafetyInformation      *string `json:"safety_information" db:"safety_information"`
}

// Stock status labels shown on the product detail page
const (
	StockStatusInStock    = "In Stock"
	StockStatusOutOfStock = "Out of Stock"
	StockStatusUnknown    = "No stock information"
)

// DetailedProduct is the assembled product detail view
type DetailedProduct struct {
	ProductListItem
	Inventory        *Inventory              `json:"inventory"`
	TechnicalSpecs   *TechnicalSpecification `json:"technical_specs"`
	ActivePromotions []Promotion             `json:"active_promotions"`
	StockStatus      string                  `json:"stock_status"`
	IsOnSale         bool                    `json:"is_on_sale"`
	CurrentPrice     decimal.Decimal         `json:"current_price"`
}
