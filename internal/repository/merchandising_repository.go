package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pvc-shop/internal/domain"
)

var (
	ErrInventoryNotFound     = errors.New("inventory not found")
	ErrPromotionNotFound     = errors.New("promotion not found")
	ErrSpecificationNotFound = errors.New("technical specification not found")
)

// InventoryRepository defines the interface for stock level data access
type InventoryRepository interface {
	FindByProductID(ctx context.Context, productID int64) (*domain.Inventory, error)
	Upsert(ctx context.Context, inventory *domain.Inventory) error
}

// PromotionRepository defines the interface for promotion data access
type PromotionRepository interface {
	Create(ctx context.Context, promotion *domain.Promotion) error
	Update(ctx context.Context, promotion *domain.Promotion) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Promotion, error)
	List(ctx context.Context, skip, limit int) ([]domain.Promotion, int, error)
	ActiveFor(ctx context.Context, productID int64, categoryIDs []int64, at time.Time) ([]domain.Promotion, error)
}

// SpecificationRepository defines the interface for technical specification data access
type SpecificationRepository interface {
	FindByProductID(ctx context.Context, productID int64) (*domain.TechnicalSpecification, error)
	Upsert(ctx context.Context, spec *domain.TechnicalSpecification) error
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) FindByProductID(ctx context.Context, productID int64) (*domain.Inventory, error) {
	query := `
		SELECT inventory_id, product_id, available_quantity, reserved_quantity, minimum_stock_level,
		       maximum_stock_level, warehouse_location, warehouse_id, last_restock_date, last_count_date, updated_at
		FROM inventory
		WHERE product_id = $1
	`

	inventory := &domain.Inventory{}
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&inventory.ID,
		&inventory.ProductID,
		&inventory.AvailableQuantity,
		&inventory.ReservedQuantity,
		&inventory.MinimumStockLevel,
		&inventory.MaximumStockLevel,
		&inventory.WarehouseLocation,
		&inventory.WarehouseID,
		&inventory.LastRestockDate,
		&inventory.LastCountDate,
		&inventory.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to find inventory: %w", err)
	}

	return inventory, nil
}

// Upsert creates or replaces the single inventory row of a product
func (r *inventoryRepository) Upsert(ctx context.Context, inventory *domain.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, available_quantity, reserved_quantity, minimum_stock_level,
			maximum_stock_level, warehouse_location, warehouse_id, last_restock_date, last_count_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id) DO UPDATE SET
			available_quantity = EXCLUDED.available_quantity,
			reserved_quantity = EXCLUDED.reserved_quantity,
			minimum_stock_level = EXCLUDED.minimum_stock_level,
			maximum_stock_level = EXCLUDED.maximum_stock_level,
			warehouse_location = EXCLUDED.warehouse_location,
			warehouse_id = EXCLUDED.warehouse_id,
			last_restock_date = EXCLUDED.last_restock_date,
			last_count_date = EXCLUDED.last_count_date
		RETURNING inventory_id, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		inventory.ProductID,
		inventory.AvailableQuantity,
		inventory.ReservedQuantity,
		inventory.MinimumStockLevel,
		inventory.MaximumStockLevel,
		inventory.WarehouseLocation,
		inventory.WarehouseID,
		inventory.LastRestockDate,
		inventory.LastCountDate,
	).Scan(&inventory.ID, &inventory.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to upsert inventory: %w", err)
	}

	return nil
}

type promotionRepository struct {
	db *sql.DB
}

// NewPromotionRepository creates a new instance of PromotionRepository
func NewPromotionRepository(db *sql.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

const promotionColumns = `promotion_id, product_id, category_id, promotion_name, promotion_type,
	discount_percentage, discount_amount, minimum_purchase, start_date, end_date, status, created_at, updated_at`

func (r *promotionRepository) Create(ctx context.Context, promotion *domain.Promotion) error {
	query := `
		INSERT INTO promotions (product_id, category_id, promotion_name, promotion_type, discount_percentage,
			discount_amount, minimum_purchase, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING promotion_id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		promotion.ProductID,
		promotion.CategoryID,
		promotion.Name,
		promotion.Type,
		promotion.DiscountPercentage,
		promotion.DiscountAmount,
		promotion.MinimumPurchase,
		promotion.StartDate,
		promotion.EndDate,
		promotion.Status,
	).Scan(&promotion.ID, &promotion.CreatedAt, &promotion.UpdatedAt)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return ErrInvalidReference
		case isCheckViolation(err):
			return ErrConstraintViolation
		}
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	return nil
}

func (r *promotionRepository) Update(ctx context.Context, promotion *domain.Promotion) error {
	query := `
		UPDATE promotions
		SET product_id = $2, category_id = $3, promotion_name = $4, promotion_type = $5,
		    discount_percentage = $6, discount_amount = $7, minimum_purchase = $8,
		    start_date = $9, end_date = $10, status = $11
		WHERE promotion_id = $1
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		promotion.ID,
		promotion.ProductID,
		promotion.CategoryID,
		promotion.Name,
		promotion.Type,
		promotion.DiscountPercentage,
		promotion.DiscountAmount,
		promotion.MinimumPurchase,
		promotion.StartDate,
		promotion.EndDate,
		promotion.Status,
	).Scan(&promotion.CreatedAt, &promotion.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrPromotionNotFound
		case isForeignKeyViolation(err):
			return ErrInvalidReference
		case isCheckViolation(err):
			return ErrConstraintViolation
		}
		return fmt.Errorf("failed to update promotion: %w", err)
	}

	return nil
}

func (r *promotionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE promotion_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	return expectOneRow(result, ErrPromotionNotFound)
}

func (r *promotionRepository) FindByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	query := fmt.Sprintf(`SELECT %s FROM promotions WHERE promotion_id = $1`, promotionColumns)

	promotion, err := scanPromotion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to find promotion by ID: %w", err)
	}

	return &promotion, nil
}

func (r *promotionRepository) List(ctx context.Context, skip, limit int) ([]domain.Promotion, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM promotions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count promotions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM promotions
		ORDER BY start_date DESC, promotion_id ASC
		LIMIT $1 OFFSET $2
	`, promotionColumns)

	promotions, err := r.query(ctx, query, limit, skip)
	if err != nil {
		return nil, 0, err
	}

	return promotions, total, nil
}

// ActiveFor returns the promotions in effect at the given instant that target the
// product directly or any of the given categories
func (r *promotionRepository) ActiveFor(ctx context.Context, productID int64, categoryIDs []int64, at time.Time) ([]domain.Promotion, error) {
	if categoryIDs == nil {
		categoryIDs = []int64{}
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM promotions
		WHERE status = 'active'
		  AND start_date <= $3 AND end_date >= $3
		  AND (product_id = $1 OR category_id = ANY($2))
		ORDER BY promotion_id ASC
	`, promotionColumns)

	return r.query(ctx, query, productID, categoryIDs, at)
}

func (r *promotionRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Promotion, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	defer rows.Close()

	promotions := []domain.Promotion{}
	for rows.Next() {
		promotion, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		promotions = append(promotions, promotion)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating promotions: %w", err)
	}

	return promotions, nil
}

func scanPromotion(row rowScanner) (domain.Promotion, error) {
	var promotion domain.Promotion
	err := row.Scan(
		&promotion.ID,
		&promotion.ProductID,
		&promotion.CategoryID,
		&promotion.Name,
		&promotion.Type,
		&promotion.DiscountPercentage,
		&promotion.DiscountAmount,
		&promotion.MinimumPurchase,
		&promotion.StartDate,
		&promotion.EndDate,
		&promotion.Status,
		&promotion.CreatedAt,
		&promotion.UpdatedAt,
	)
	return promotion, err
}

type specificationRepository struct {
	db *sql.DB
}

// NewSpecificationRepository creates a new instance of SpecificationRepository
func NewSpecificationRepository(db *sql.DB) SpecificationRepository {
	return &specificationRepository{db: db}
}

func (r *specificationRepository) FindByProductID(ctx context.Context, productID int64) (*domain.TechnicalSpecification, error) {
	query := `
		SELECT spec_id, product_id, standard_compliance, certification_details, usage_recommendations,
		       installation_guidelines, technical_drawing_url, safety_information
		FROM technical_specifications
		WHERE product_id = $1
	`

	spec := &domain.TechnicalSpecification{}
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&spec.ID,
		&spec.ProductID,
		&spec.StandardCompliance,
		&spec.CertificationDetails,
		&spec.UsageRecommendations,
		&spec.InstallationGuidelines,
		&spec.TechnicalDrawingURL,
		&spec.SafetyInformation,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpecificationNotFound
		}
		return nil, fmt.Errorf("failed to find technical specification: %w", err)
	}

	return spec, nil
}

// Upsert creates or replaces the single specification row of a product
func (r *specificationRepository) Upsert(ctx context.Context, spec *domain.TechnicalSpecification) error {
	query := `
		INSERT INTO technical_specifications (product_id, standard_compliance, certification_details,
			usage_recommendations, installation_guidelines, technical_drawing_url, safety_information)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id) DO UPDATE SET
			standard_compliance = EXCLUDED.standard_compliance,
			certification_details = EXCLUDED.certification_details,
			usage_recommendations = EXCLUDED.usage_recommendations,
			installation_guidelines = EXCLUDED.installation_guidelines,
			technical_drawing_url = EXCLUDED.technical_drawing_url,
			safety_information = EXCLUDED.safety_information
		RETURNING spec_id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		spec.ProductID,
		spec.StandardCompliance,
		spec.CertificationDetails,
		spec.UsageRecommendations,
		spec.InstallationGuidelines,
		spec.TechnicalDrawingURL,
		spec.SafetyInformation,
	).Scan(&spec.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to upsert technical specification: %w", err)
	}

	return nil
}
