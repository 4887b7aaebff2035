package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pvc-shop/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductCodeDuplicate = errors.New("product with this code already exists")
)

// SuggestionCriteria selects products similar to a reference product
type SuggestionCriteria struct {
	ExcludeID     int64
	CategoryID    *int64
	SubcategoryID *int64
	BrandID       *int64
	MinPrice      decimal.Decimal
	MaxPrice      decimal.Decimal
	Limit         int
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.ProductListItem, error)
	Search(ctx context.Context, filter domain.ProductFilter, skip, limit int, withFacets bool) (*domain.ProductPage, error)
	Suggestions(ctx context.Context, criteria SuggestionCriteria) ([]domain.ProductListItem, error)
	QuickSearch(ctx context.Context, search string, limit int) ([]domain.ProductQuickView, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a product and its attributes in one transaction
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (product_code, name, description, regular_price, sale_price, brand_id,
			unit_of_measure, image_url, image_url_details, status, category_id, subcategory_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING product_id, created_at, updated_at
	`

	err = tx.QueryRowContext(
		ctx,
		query,
		product.Code,
		product.Name,
		product.Description,
		product.RegularPrice,
		product.SalePrice,
		product.BrandID,
		product.UnitOfMeasure,
		product.ImageURL,
		product.ImageURLDetails,
		product.Status,
		product.CategoryID,
		product.SubcategoryID,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return translateProductWriteError("create", err)
	}

	if err := insertAttributes(ctx, tx, product.ID, product.Attributes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product: %w", err)
	}

	return nil
}

// Update replaces the product row and its whole attribute set
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE products
		SET product_code = $2, name = $3, description = $4, regular_price = $5, sale_price = $6,
		    brand_id = $7, unit_of_measure = $8, image_url = $9, image_url_details = $10,
		    status = $11, category_id = $12, subcategory_id = $13
		WHERE product_id = $1
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowContext(
		ctx,
		query,
		product.ID,
		product.Code,
		product.Name,
		product.Description,
		product.RegularPrice,
		product.SalePrice,
		product.BrandID,
		product.UnitOfMeasure,
		product.ImageURL,
		product.ImageURLDetails,
		product.Status,
		product.CategoryID,
		product.SubcategoryID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return translateProductWriteError("update", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_attributes WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("failed to clear product attributes: %w", err)
	}

	if err := insertAttributes(ctx, tx, product.ID, product.Attributes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product: %w", err)
	}

	return nil
}

// Delete removes a product; attributes, inventory and specifications cascade
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return expectOneRow(result, ErrProductNotFound)
}

// FindByID retrieves a product with its brand and category names
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.ProductListItem, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.product_id = $1`, productListColumns, productListJoins)

	item, err := scanProductListItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	items := []domain.ProductListItem{item}
	if err := attachAttributes(ctx, r.db, items); err != nil {
		return nil, err
	}

	return &items[0], nil
}

// Search returns one page of the filtered catalog, the size of the filtered set and,
// when requested, its facets. Everything is read from a single snapshot.
func (r *productRepository) Search(ctx context.Context, filter domain.ProductFilter, skip, limit int, withFacets bool) (*domain.ProductPage, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin catalog snapshot: %w", err)
	}
	defer tx.Rollback()

	where := buildProductFilter(filter)
	page := &domain.ProductPage{}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products p %s", where)
	if err := tx.QueryRowContext(ctx, countQuery, where.args...).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		%s
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, productListColumns, productListJoins, where, productOrderBy(filter.SortBy, filter.Descending), where.next(), where.next()+1)

	args := append(append([]interface{}{}, where.args...), limit, skip)
	if page.Items, err = queryProductListItems(ctx, tx, query, args...); err != nil {
		return nil, err
	}

	if err := attachAttributes(ctx, tx, page.Items); err != nil {
		return nil, err
	}

	if withFacets {
		if page.FilterValues, err = loadFilterValues(ctx, tx, where); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to close catalog snapshot: %w", err)
	}

	return page, nil
}

// Suggestions finds active products in the same category band, same brand first
func (r *productRepository) Suggestions(ctx context.Context, criteria SuggestionCriteria) ([]domain.ProductListItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE p.product_id <> $1
		  AND p.status = 'active'
		  AND p.regular_price BETWEEN $2 AND $3
		  AND (p.category_id = $4 OR p.subcategory_id = $5)
		ORDER BY COALESCE(p.brand_id = $6, FALSE) DESC, p.regular_price ASC, p.product_id ASC
		LIMIT $7
	`, productListColumns, productListJoins)

	items, err := queryProductListItems(ctx, r.db, query,
		criteria.ExcludeID,
		criteria.MinPrice,
		criteria.MaxPrice,
		criteria.CategoryID,
		criteria.SubcategoryID,
		criteria.BrandID,
		criteria.Limit,
	)
	if err != nil {
		return nil, err
	}

	if err := attachAttributes(ctx, r.db, items); err != nil {
		return nil, err
	}

	return items, nil
}

// QuickSearch matches active products by name, code or description
func (r *productRepository) QuickSearch(ctx context.Context, search string, limit int) ([]domain.ProductQuickView, error) {
	query := `
		SELECT p.product_id, p.product_code, p.name, p.description, p.regular_price, p.sale_price, p.image_url
		FROM products p
		WHERE p.status = 'active'
		  AND (p.name ILIKE $1 OR p.product_code ILIKE $1 OR p.description ILIKE $1)
		ORDER BY p.name ASC, p.product_id ASC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, containsPattern(search), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to quick search products: %w", err)
	}
	defer rows.Close()

	results := []domain.ProductQuickView{}
	for rows.Next() {
		var view domain.ProductQuickView
		err := rows.Scan(
			&view.ID,
			&view.Code,
			&view.Name,
			&view.Description,
			&view.RegularPrice,
			&view.SalePrice,
			&view.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		results = append(results, view)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quick search results: %w", err)
	}

	return results, nil
}

func queryProductListItems(ctx context.Context, q queryer, query string, args ...interface{}) ([]domain.ProductListItem, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	items := []domain.ProductListItem{}
	for rows.Next() {
		item, err := scanProductListItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return items, nil
}

// attachAttributes loads the attribute rows of every item in one query
func attachAttributes(ctx context.Context, q queryer, items []domain.ProductListItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, len(items))
	index := make(map[int64]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
		index[items[i].ID] = i
		items[i].Attributes = domain.Attributes{}
	}

	query := `
		SELECT product_id, attr_key, attr_value, multi_valued
		FROM product_attributes
		WHERE product_id = ANY($1)
		ORDER BY product_id, attr_key, position
	`

	rows, err := q.QueryContext(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load product attributes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID int64
			key       domain.AttributeKey
			value     string
			multi     bool
		)
		if err := rows.Scan(&productID, &key, &value, &multi); err != nil {
			return fmt.Errorf("failed to scan product attribute: %w", err)
		}
		attrs := items[index[productID]].Attributes
		current := attrs[key]
		current.Multi = multi
		current.Values = append(current.Values, value)
		attrs[key] = current
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating product attributes: %w", err)
	}

	return nil
}

func insertAttributes(ctx context.Context, tx execer, productID int64, attributes domain.Attributes) error {
	query := `
		INSERT INTO product_attributes (product_id, attr_key, attr_value, multi_valued, position)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, key := range attributes.Keys() {
		value := attributes[key]
		for position, v := range value.Values {
			if _, err := tx.ExecContext(ctx, query, productID, string(key), v, value.Multi, position); err != nil {
				return fmt.Errorf("failed to store attribute %q: %w", key, err)
			}
		}
	}

	return nil
}

func translateProductWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return ErrProductCodeDuplicate
	case isForeignKeyViolation(err):
		return ErrInvalidReference
	case isCheckViolation(err):
		return ErrConstraintViolation
	}
	return fmt.Errorf("failed to %s product: %w", op, err)
}
