package domain

import "time"

// Inventory tracks the stock levels of a single product
type Inventory struct {
	ID                int64      `json:"inventory_id" db:"inventory_id"`
	ProductID         int64      `json:"product_id" db:"product_id"`
	AvailableQuantity int        `json:"available_quantity" db:"available_quantity"`
	ReservedQuantity  int        `json:"reserved_quantity" db:"reserved_quantity"`
	MinimumStockLevel int        `json:"minimum_stock_level" db:"minimum_stock_level"`
	MaximumStockLevel *int       `json:"maximum_stock_level" db:"maximum_stock_level"`
	WarehouseLocation *string    `json:"warehouse_location" db:"warehouse_location"`
	WarehouseID       *int64     `json:"warehouse_id" db:"warehouse_id"`
	LastRestockDate   *time.Time `json:"last_restock_date" db:"last_restock_date"`
	LastCountDate     *time.Time `json:"last_count_date" db:"last_count_date"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// StockStatus derives the label shown to customers.
// A nil inventory means the product has no inventory row at all.
func (i *Inventory) StockStatus() string {
	if i == nil {
		return StockStatusUnknown
	}
	if i.AvailableQuantity > 0 {
		return StockStatusInStock
	}
	return StockStatusOutOfStock
}
