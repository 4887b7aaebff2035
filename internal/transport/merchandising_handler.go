package transport

import (
	"net/http"
	"time"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/middleware"
	"pvc-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryRequest is the body of the inventory upsert
type InventoryRequest struct {
	AvailableQuantity int        `json:"available_quantity" validate:"gte=0"`
	ReservedQuantity  int        `json:"reserved_quantity" validate:"gte=0"`
	MinimumStockLevel int        `json:"minimum_stock_level" validate:"gte=0"`
	MaximumStockLevel *int       `json:"maximum_stock_level" validate:"omitempty,gte=0"`
	WarehouseLocation *string    `json:"warehouse_location" validate:"omitempty,max=100"`
	WarehouseID       *int64     `json:"warehouse_id" validate:"omitempty,gt=0"`
	LastRestockDate   *time.Time `json:"last_restock_date"`
	LastCountDate     *time.Time `json:"last_count_date"`
}

// SpecificationRequest is the body of the technical specification upsert
type SpecificationRequest struct {
	StandardCompliance     *string `json:"standard_compliance" validate:"omitempty,max=255"`
	CertificationDetails   *string `json:"certification_details"`
	UsageRecommendations   *string `json:"usage_recommendations"`
	InstallationGuidelines *string `json:"installation_guidelines"`
	TechnicalDrawingURL    *string `json:"technical_drawing_url" validate:"omitempty,max=255"`
	SafetyInformation      *string `json:"safety_information"`
}

// PromotionRequest is the body of promotion create and update
type PromotionRequest struct {
	ProductID          *int64                 `json:"product_id" validate:"omitempty,gt=0"`
	CategoryID         *int64                 `json:"category_id" validate:"omitempty,gt=0"`
	Name               string                 `json:"promotion_name" validate:"required,max=100"`
	Type               domain.PromotionType   `json:"promotion_type" validate:"required,oneof=percentage fixed_amount bundle"`
	DiscountPercentage decimal.NullDecimal    `json:"discount_percentage"`
	DiscountAmount     decimal.NullDecimal    `json:"discount_amount"`
	MinimumPurchase    decimal.NullDecimal    `json:"minimum_purchase"`
	StartDate          time.Time              `json:"start_date" validate:"required"`
	EndDate            time.Time              `json:"end_date" validate:"required"`
	Status             domain.PromotionStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (req PromotionRequest) promotion(id int64) *domain.Promotion {
	return &domain.Promotion{
		ID:                 id,
		ProductID:          req.ProductID,
		CategoryID:         req.CategoryID,
		Name:               req.Name,
		Type:               req.Type,
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		MinimumPurchase:    req.MinimumPurchase,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Status:             req.Status,
	}
}

// MerchandisingHandler serves inventory, technical specifications and promotions
type MerchandisingHandler struct {
	merchandising service.MerchandisingService
	logger        *zap.Logger
}

// NewMerchandisingHandler creates a new MerchandisingHandler
func NewMerchandisingHandler(merchandising service.MerchandisingService, logger *zap.Logger) *MerchandisingHandler {
	return &MerchandisingHandler{
		merchandising: merchandising,
		logger:        logger,
	}
}

// RegisterRoutes registers the inventory, technical specification and promotion routes
func (h *MerchandisingHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Route("/inventory/product/{product_id}", func(r chi.Router) {
		r.Get("/", h.GetInventory)
		r.With(guards.Authenticate, guards.Staff).Put("/", h.SaveInventory)
	})

	r.Route("/technical-specifications/product/{product_id}", func(r chi.Router) {
		r.Get("/", h.GetSpecification)
		r.With(guards.Authenticate, guards.Staff).Put("/", h.SaveSpecification)
	})

	r.Route("/promotions", func(r chi.Router) {
		r.Get("/", h.ListPromotions)
		r.Get("/{id}", h.GetPromotion)

		r.Group(func(r chi.Router) {
			r.Use(guards.Authenticate, guards.Admin)
			r.Post("/", h.CreatePromotion)
			r.Put("/{id}", h.UpdatePromotion)
			r.Delete("/{id}", h.DeletePromotion)
		})
	})
}

func (h *MerchandisingHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	productID, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}

	inventory, err := h.merchandising.GetInventory(r.Context(), productID)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "get inventory")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, inventory)
}

func (h *MerchandisingHandler) SaveInventory(w http.ResponseWriter, r *http.Request) {
	productID, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}
	var req InventoryRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	inventory := &domain.Inventory{
		ProductID:         productID,
		AvailableQuantity: req.AvailableQuantity,
		ReservedQuantity:  req.ReservedQuantity,
		MinimumStockLevel: req.MinimumStockLevel,
		MaximumStockLevel: req.MaximumStockLevel,
		WarehouseLocation: req.WarehouseLocation,
		WarehouseID:       req.WarehouseID,
		LastRestockDate:   req.LastRestockDate,
		LastCountDate:     req.LastCountDate,
	}
	if err := h.merchandising.SaveInventory(r.Context(), inventory); err != nil {
		respondServiceError(w, r, h.logger, err, "save inventory")
		return
	}

	h.logger.Info("Inventory saved",
		zap.Int64("product_id", productID),
		zap.Int("available_quantity", inventory.AvailableQuantity),
	)
	middleware.RespondWithJSON(w, http.StatusOK, inventory)
}

func (h *MerchandisingHandler) GetSpecification(w http.ResponseWriter, r *http.Request) {
	productID, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}

	spec, err := h.merchandising.GetSpecification(r.Context(), productID)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "get technical specification")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, spec)
}

func (h *MerchandisingHandler) SaveSpecification(w http.ResponseWriter, r *http.Request) {
	productID, ok := idParam(w, r, "product_id")
	if !ok {
		return
	}
	var req SpecificationRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	spec := &domain.TechnicalSpecification{
		ProductID:              productID,
		StandardCompliance:     req.StandardCompliance,
		CertificationDetails:   req.CertificationDetails,
		UsageRecommendations:   req.UsageRecommendations,
		InstallationGuidelines: req.InstallationGuidelines,
		TechnicalDrawingURL:    req.TechnicalDrawingURL,
		SafetyInformation:      req.SafetyInformation,
	}
	if err := h.merchandising.SaveSpecification(r.Context(), spec); err != nil {
		respondServiceError(w, r, h.logger, err, "save technical specification")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, spec)
}

func (h *MerchandisingHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := skipLimit(w, r)
	if !ok {
		return
	}

	promotions, total, err := h.merchandising.ListPromotions(r.Context(), skip, limit)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "list promotions")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ListResponse[domain.Promotion]{Data: promotions, Total: total})
}

func (h *MerchandisingHandler) GetPromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	promotion, err := h.merchandising.GetPromotion(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "get promotion")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, promotion)
}

func (h *MerchandisingHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req PromotionRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	promotion := req.promotion(0)
	if err := h.merchandising.CreatePromotion(r.Context(), promotion); err != nil {
		respondServiceError(w, r, h.logger, err, "create promotion")
		return
	}

	h.logger.Info("Promotion created", zap.Int64("promotion_id", promotion.ID), zap.String("type", string(promotion.Type)))
	middleware.RespondWithJSON(w, http.StatusCreated, promotion)
}

func (h *MerchandisingHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req PromotionRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	promotion := req.promotion(id)
	if promotion.Status == "" {
		promotion.Status = domain.PromotionStatusActive
	}
	if err := h.merchandising.UpdatePromotion(r.Context(), promotion); err != nil {
		respondServiceError(w, r, h.logger, err, "update promotion")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, promotion)
}

func (h *MerchandisingHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.merchandising.DeletePromotion(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err, "delete promotion")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
