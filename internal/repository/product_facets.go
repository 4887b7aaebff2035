package repository

import (
	"context"
	"fmt"

	"pvc-shop/internal/domain"
)

// loadFilterValues computes every facet over the set matched by where.
// All queries run against q so they observe the same snapshot as the page.
func loadFilterValues(ctx context.Context, q queryer, where *whereClause) (*domain.FilterValues, error) {
	values := &domain.FilterValues{}

	priceRange, err := loadPriceRange(ctx, q, where)
	if err != nil {
		return nil, err
	}
	values.PriceRange = priceRange

	if values.Brands, err = loadBrandFacets(ctx, q, where); err != nil {
		return nil, err
	}
	if values.Categories, err = loadCategoryFacets(ctx, q, where); err != nil {
		return nil, err
	}
	if values.Attributes, err = loadAttributeFacets(ctx, q, where); err != nil {
		return nil, err
	}

	return values, nil
}

func loadPriceRange(ctx context.Context, q queryer, where *whereClause) (domain.PriceRange, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MIN(p.regular_price), 0), COALESCE(MAX(p.regular_price), 0)
		FROM products p
		%s
	`, where)

	var priceRange domain.PriceRange
	if err := q.QueryRowContext(ctx, query, where.args...).Scan(&priceRange.Min, &priceRange.Max); err != nil {
		return priceRange, fmt.Errorf("failed to compute price range: %w", err)
	}
	return priceRange, nil
}

func loadBrandFacets(ctx context.Context, q queryer, where *whereClause) ([]domain.BrandFacet, error) {
	query := fmt.Sprintf(`
		SELECT b.brand_id, b.name, COUNT(*)
		FROM products p
		JOIN brands b ON b.brand_id = p.brand_id
		%s
		GROUP BY b.brand_id, b.name
		ORDER BY b.name ASC, b.brand_id ASC
	`, where)

	rows, err := q.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to compute brand facets: %w", err)
	}
	defer rows.Close()

	brands := []domain.BrandFacet{}
	for rows.Next() {
		var facet domain.BrandFacet
		if err := rows.Scan(&facet.ID, &facet.Name, &facet.Count); err != nil {
			return nil, fmt.Errorf("failed to scan brand facet: %w", err)
		}
		brands = append(brands, facet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brand facets: %w", err)
	}

	return brands, nil
}

// loadCategoryFacets groups by the primary category and reports the name of its parent
func loadCategoryFacets(ctx context.Context, q queryer, where *whereClause) ([]domain.CategoryFacet, error) {
	query := fmt.Sprintf(`
		SELECT c.category_id, c.category_name, pc.category_name, COUNT(*)
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		LEFT JOIN categories pc ON pc.category_id = c.parent_category_id
		%s
		GROUP BY c.category_id, c.category_name, pc.category_name
		ORDER BY c.display_order ASC, c.category_name ASC, c.category_id ASC
	`, where)

	rows, err := q.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category facets: %w", err)
	}
	defer rows.Close()

	categories := []domain.CategoryFacet{}
	for rows.Next() {
		var facet domain.CategoryFacet
		if err := rows.Scan(&facet.ID, &facet.Name, &facet.ParentName, &facet.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category facet: %w", err)
		}
		categories = append(categories, facet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category facets: %w", err)
	}

	return categories, nil
}

// loadAttributeFacets counts every stored value independently, so each element of a
// multi-valued attribute contributes to its own bucket
func loadAttributeFacets(ctx context.Context, q queryer, where *whereClause) ([]domain.AttributeFacet, error) {
	query := fmt.Sprintf(`
		SELECT pa.attr_key, pa.attr_value, COUNT(*)
		FROM product_attributes pa
		JOIN products p ON p.product_id = pa.product_id
		%s
		GROUP BY pa.attr_key, pa.attr_value
		ORDER BY pa.attr_key COLLATE "C" ASC, pa.attr_value COLLATE "C" ASC
	`, where)

	rows, err := q.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to compute attribute facets: %w", err)
	}
	defer rows.Close()

	attributes := []domain.AttributeFacet{}
	for rows.Next() {
		var (
			key   domain.AttributeKey
			count domain.AttributeValueCount
		)
		if err := rows.Scan(&key, &count.Value, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan attribute facet: %w", err)
		}
		if n := len(attributes); n == 0 || attributes[n-1].Name != key {
			attributes = append(attributes, domain.AttributeFacet{Name: key})
		}
		last := &attributes[len(attributes)-1]
		last.Values = append(last.Values, count)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attribute facets: %w", err)
	}

	return attributes, nil
}
