package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromotionType string

const (
	PromotionTypePercentage  PromotionType = "percentage"
	PromotionTypeFixedAmount PromotionType = "fixed_amount"
	PromotionTypeBundle      PromotionType = "bundle"
)

func (t PromotionType) Valid() bool {
	switch t {
	case PromotionTypePercentage, PromotionTypeFixedAmount, PromotionTypeBundle:
		return true
	}
	return false
}

type PromotionStatus string

const (
	PromotionStatusActive   PromotionStatus = "active"
	PromotionStatusInactive PromotionStatus = "inactive"
)

// Promotion is a discount scoped to a product or to a whole category
type Promotion struct {
	ID                 int64               `json:"promotion_id" db:"promotion_id"`
	ProductID          *int64              `json:"product_id" db:"product_id"`
	CategoryID         *int64              `json:"category_id" db:"category_id"`
	Name               string              `json:"promotion_name" db:"promotion_name"`
	Type               PromotionType       `json:"promotion_type" db:"promotion_type"`
	DiscountPercentage decimal.NullDecimal `json:"discount_percentage" db:"discount_percentage"`
	DiscountAmount     decimal.NullDecimal `json:"discount_amount" db:"discount_amount"`
	MinimumPurchase    decimal.NullDecimal `json:"minimum_purchase" db:"minimum_purchase"`
	StartDate          time.Time           `json:"start_date" db:"start_date"`
	EndDate            time.Time           `json:"end_date" db:"end_date"`
	Status             PromotionStatus     `json:"status" db:"status"`
	CreatedAt          time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" db:"updated_at"`
}

// ActiveAt reports whether the promotion applies at the given instant.
// Both ends of the validity window are inclusive.
func (p *Promotion) ActiveAt(now time.Time) bool {
	if p.Status != PromotionStatusActive {
		return false
	}
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// Discount returns the absolute discount the promotion grants on price.
// Bundle promotions never change the unit price.
func (p *Promotion) Discount(price decimal.Decimal) decimal.Decimal {
	switch p.Type {
	case PromotionTypePercentage:
		if p.DiscountPercentage.Valid && p.DiscountPercentage.Decimal.IsPositive() {
			return price.Mul(p.DiscountPercentage.Decimal).Div(decimal.NewFromInt(100))
		}
	case PromotionTypeFixedAmount:
		if p.DiscountAmount.Valid && p.DiscountAmount.Decimal.IsPositive() {
			return p.DiscountAmount.Decimal
		}
	}
	return decimal.Zero
}
