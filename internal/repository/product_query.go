package repository

import (
	"fmt"
	"sort"
	"strings"

	"pvc-shop/internal/domain"
)

// whereClause accumulates AND-ed predicates with positional arguments
type whereClause struct {
	conditions []string
	args       []interface{}
}

// arg registers a value and returns its placeholder
func (w *whereClause) arg(value interface{}) string {
	w.args = append(w.args, value)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereClause) add(condition string) {
	w.conditions = append(w.conditions, condition)
}

// String renders the clause, or an empty string when nothing constrains the query
func (w *whereClause) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

// next returns the placeholder index that the next argument will take
func (w *whereClause) next() int {
	return len(w.args) + 1
}

// buildProductFilter translates a catalog filter into a predicate over the products alias p
func buildProductFilter(filter domain.ProductFilter) *whereClause {
	w := &whereClause{}

	if search := filter.Search; search != "" {
		p := w.arg(containsPattern(search))
		w.add(fmt.Sprintf("(p.name ILIKE %[1]s OR p.product_code ILIKE %[1]s OR p.description ILIKE %[1]s)", p))
	}

	if len(filter.CategoryIDs) > 0 {
		p := w.arg(filter.CategoryIDs)
		w.add(fmt.Sprintf("(p.category_id = ANY(%[1]s) OR p.subcategory_id = ANY(%[1]s))", p))
	}

	if len(filter.BrandIDs) > 0 {
		w.add(fmt.Sprintf("p.brand_id = ANY(%s)", w.arg(filter.BrandIDs)))
	}

	if filter.MinPrice != nil {
		w.add(fmt.Sprintf("p.regular_price >= %s", w.arg(*filter.MinPrice)))
	}

	if filter.MaxPrice != nil {
		w.add(fmt.Sprintf("p.regular_price <= %s", w.arg(*filter.MaxPrice)))
	}

	keys := make([]domain.AttributeKey, 0, len(filter.Attributes))
	for key := range filter.Attributes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, key := range keys {
		values := filter.Attributes[key]
		if len(values) == 0 {
			continue
		}
		w.add(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM product_attributes fa WHERE fa.product_id = p.product_id AND fa.attr_key = %s AND fa.attr_value = ANY(%s))",
			w.arg(string(key)), w.arg(values),
		))
	}

	return w
}

// Sort columns allowed in the catalog listing
var productSortColumns = map[domain.SortField]string{
	domain.SortFieldPrice: "p.regular_price",
	domain.SortFieldName:  "p.name",
}

// productOrderBy renders a deterministic ORDER BY ending with the primary key
func productOrderBy(field domain.SortField, descending bool) string {
	column, ok := productSortColumns[field]
	if !ok {
		return "ORDER BY p.product_id ASC"
	}
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, p.product_id ASC", column, direction)
}

// productListColumns selects a product row together with its brand and category names
const productListColumns = `
	p.product_id, p.product_code, p.name, p.description, p.regular_price, p.sale_price,
	p.brand_id, p.unit_of_measure, p.image_url, p.image_url_details, p.status,
	p.category_id, p.subcategory_id, p.created_at, p.updated_at,
	b.name, c.category_name, sc.category_name, pc.category_name`

const productListJoins = `
	FROM products p
	LEFT JOIN brands b ON b.brand_id = p.brand_id
	LEFT JOIN categories c ON c.category_id = p.category_id
	LEFT JOIN categories sc ON sc.category_id = p.subcategory_id
	LEFT JOIN categories pc ON pc.category_id = c.parent_category_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProductListItem(row rowScanner) (domain.ProductListItem, error) {
	var item domain.ProductListItem
	err := row.Scan(
		&item.ID,
		&item.Code,
		&item.Name,
		&item.Description,
		&item.RegularPrice,
		&item.SalePrice,
		&item.BrandID,
		&item.UnitOfMeasure,
		&item.ImageURL,
		&item.ImageURLDetails,
		&item.Status,
		&item.CategoryID,
		&item.SubcategoryID,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.BrandName,
		&item.CategoryName,
		&item.SubcategoryName,
		&item.ParentCategoryName,
	)
	return item, err
}
