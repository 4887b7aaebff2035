package domain

import "time"

// Category represents a node of the self-referential category tree
type Category struct {
	ID               int64     `json:"category_id" db:"category_id"`
	Name             string    `json:"category_name" db:"category_name"`
	ParentCategoryID *int64    `json:"parent_category_id" db:"parent_category_id"`
	Description      *string   `json:"description" db:"description"`
	DisplayOrder     int       `json:"display_order" db:"display_order"`
	ImageURL         *string   `json:"image_url" db:"image_url"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// IsMain reports whether the category is a root of the tree
func (c *Category) IsMain() bool {
	return c.ParentCategoryID == nil
}

// Brand represents a product brand
type Brand struct {
	ID          int64   `json:"brand_id" db:"brand_id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
}
