package domain

import "github.com/shopspring/decimal"

// SortField is a column the catalog listing can be ordered by
type SortField string

const (
	SortFieldNone  SortField = ""
	SortFieldPrice SortField = "price"
	SortFieldName  SortField = "name"
)

// ProductFilter describes the constraints of a catalog query.
// Zero values mean "no constraint".
type ProductFilter struct {
	Search      string
	CategoryIDs []int64
	BrandIDs    []int64
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	SortBy      SortField
	Descending  bool
	Attributes  map[AttributeKey][]string
}

// PriceRange is the min/max regular price over a filtered set
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

type BrandFacet struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CategoryFacet struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ParentName *string `json:"parent_name"`
	Count      int     `json:"count"`
}

type AttributeValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type AttributeFacet struct {
	Name   AttributeKey          `json:"name"`
	Values []AttributeValueCount `json:"values"`
}

// FilterValues are the facet counts computed over the whole filtered set
type FilterValues struct {
	Brands     []BrandFacet     `json:"brands"`
	Categories []CategoryFacet  `json:"categories"`
	Attributes []AttributeFacet `json:"attributes"`
	PriceRange PriceRange       `json:"price_range"`
}

// ProductPage is one page of a catalog query plus the size of the filtered set
type ProductPage struct {
	Items        []ProductListItem
	Total        int
	FilterValues *FilterValues
}
