package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pvc-shop/internal/domain"
)

var (
	ErrBrandNotFound = errors.New("brand not found")
)

// PageRequest is a page-numbered listing request with free-text search and a sort column
type PageRequest struct {
	Search     string
	Sort       string
	Descending bool
	Page       int
	Size       int
}

// Offset converts the 1-based page number into a row offset
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

func (p PageRequest) direction() string {
	if p.Descending {
		return "DESC"
	}
	return "ASC"
}

// BrandRepository defines the interface for brand data access
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Brand, error)
	List(ctx context.Context, skip, limit int) ([]domain.Brand, int, error)
	Paginated(ctx context.Context, req PageRequest) ([]domain.Brand, int, error)
}

type brandRepository struct {
	db *sql.DB
}

// NewBrandRepository creates a new instance of BrandRepository
func NewBrandRepository(db *sql.DB) BrandRepository {
	return &brandRepository{db: db}
}

// Sort columns allowed in the paginated brand listing
var brandSortColumns = map[string]string{
	"brand_id": "brand_id",
	"name":     "name",
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	query := `INSERT INTO brands (name, description) VALUES ($1, $2) RETURNING brand_id`

	if err := r.db.QueryRowContext(ctx, query, brand.Name, brand.Description).Scan(&brand.ID); err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	query := `UPDATE brands SET name = $2, description = $3 WHERE brand_id = $1`

	result, err := r.db.ExecContext(ctx, query, brand.ID, brand.Name, brand.Description)
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}

	return expectOneRow(result, ErrBrandNotFound)
}

func (r *brandRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE brand_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	return expectOneRow(result, ErrBrandNotFound)
}

func (r *brandRepository) FindByID(ctx context.Context, id int64) (*domain.Brand, error) {
	query := `SELECT brand_id, name, description FROM brands WHERE brand_id = $1`

	brand := &domain.Brand{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&brand.ID, &brand.Name, &brand.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to find brand by ID: %w", err)
	}

	return brand, nil
}

// List retrieves brands in id order
func (r *brandRepository) List(ctx context.Context, skip, limit int) ([]domain.Brand, int, error) {
	return r.list(ctx, &whereClause{}, "brand_id ASC", skip, limit)
}

// Paginated retrieves one page of brands matching the search, sorted by a whitelisted column
func (r *brandRepository) Paginated(ctx context.Context, req PageRequest) ([]domain.Brand, int, error) {
	column, ok := brandSortColumns[req.Sort]
	if !ok {
		column = "brand_id"
	}

	where := &whereClause{}
	if search := strings.TrimSpace(req.Search); search != "" {
		p := where.arg(containsPattern(search))
		where.add(fmt.Sprintf("(name ILIKE %[1]s OR description ILIKE %[1]s)", p))
	}

	order := fmt.Sprintf("%s %s, brand_id ASC", column, req.direction())
	return r.list(ctx, where, order, req.Offset(), req.Size)
}

func (r *brandRepository) list(ctx context.Context, where *whereClause, orderBy string, skip, limit int) ([]domain.Brand, int, error) {
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM brands %s", where)
	if err := r.db.QueryRowContext(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT brand_id, name, description
		FROM brands
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, orderBy, where.next(), where.next()+1)

	rows, err := r.db.QueryContext(ctx, query, append(where.args, limit, skip)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []domain.Brand{}
	for rows.Next() {
		var brand domain.Brand
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Description); err != nil {
			return nil, 0, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating brands: %w", err)
	}

	return brands, total, nil
}
