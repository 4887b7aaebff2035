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
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryFilter narrows the category listing
type CategoryFilter struct {
	Search   string
	IsActive *bool
	MainOnly bool
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context, filter CategoryFilter, skip, limit int) ([]domain.Category, int, error)
	AncestorIDs(ctx context.Context, id int64) ([]int64, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `category_id, category_name, parent_category_id, description, display_order,
	image_url, is_active, created_at, updated_at`

// Create inserts a new category into the database using parameterized queries
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (category_name, parent_category_id, description, display_order, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING category_id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		category.Name,
		category.ParentCategoryID,
		category.Description,
		category.DisplayOrder,
		category.ImageURL,
		category.IsActive,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Update updates an existing category in the database using parameterized queries
func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET category_name = $2, parent_category_id = $3, description = $4, display_order = $5,
		    image_url = $6, is_active = $7
		WHERE category_id = $1
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		category.ID,
		category.Name,
		category.ParentCategoryID,
		category.Description,
		category.DisplayOrder,
		category.ImageURL,
		category.IsActive,
	).Scan(&category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrCategoryNotFound
		case isForeignKeyViolation(err):
			return ErrInvalidReference
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// Delete removes a category; children and products keep existing with a NULL reference
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE category_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return expectOneRow(result, ErrCategoryNotFound)
}

// FindByID retrieves a category by ID using parameterized queries
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE category_id = $1`, categoryColumns)

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return &category, nil
}

// List retrieves categories ordered by display order and name
func (r *categoryRepository) List(ctx context.Context, filter CategoryFilter, skip, limit int) ([]domain.Category, int, error) {
	where := &whereClause{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		p := where.arg(containsPattern(search))
		where.add(fmt.Sprintf("(category_name ILIKE %[1]s OR description ILIKE %[1]s)", p))
	}
	if filter.IsActive != nil {
		where.add(fmt.Sprintf("is_active = %s", where.arg(*filter.IsActive)))
	}
	if filter.MainOnly {
		where.add("parent_category_id IS NULL")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM categories %s", where)
	if err := r.db.QueryRowContext(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM categories
		%s
		ORDER BY display_order ASC, category_name ASC, category_id ASC
		LIMIT $%d OFFSET $%d
	`, categoryColumns, where, where.next(), where.next()+1)

	rows, err := r.db.QueryContext(ctx, query, append(where.args, limit, skip)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, total, nil
}

// AncestorIDs returns id followed by every category above it in the tree
func (r *categoryRepository) AncestorIDs(ctx context.Context, id int64) ([]int64, error) {
	query := `
		WITH RECURSIVE chain AS (
			SELECT category_id, parent_category_id
			FROM categories
			WHERE category_id = $1
			UNION
			SELECT c.category_id, c.parent_category_id
			FROM categories c
			JOIN chain ON c.category_id = chain.parent_category_id
		)
		SELECT category_id FROM chain
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to walk category ancestors: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var ancestor int64
		if err := rows.Scan(&ancestor); err != nil {
			return nil, fmt.Errorf("failed to scan category ancestor: %w", err)
		}
		ids = append(ids, ancestor)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category ancestors: %w", err)
	}

	return ids, nil
}

func scanCategory(row rowScanner) (domain.Category, error) {
	var category domain.Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.ParentCategoryID,
		&category.Description,
		&category.DisplayOrder,
		&category.ImageURL,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	return category, err
}
