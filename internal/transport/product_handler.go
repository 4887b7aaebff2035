package transport

import (
	"net/http"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/middleware"
	"pvc-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductFilterRequest is the body of the catalog listing endpoints
type ProductFilterRequest struct {
	Skip        int                 `json:"skip" validate:"gte=0"`
	Limit       *int                `json:"limit" validate:"omitempty,gte=0"`
	Search      string              `json:"search" validate:"max=100"`
	CategoryIDs []int64             `json:"category_ids" validate:"omitempty,dive,gt=0"`
	BrandIDs    []int64             `json:"brand_ids" validate:"omitempty,dive,gt=0"`
	MinPrice    *decimal.Decimal    `json:"min_price"`
	MaxPrice    *decimal.Decimal    `json:"max_price"`
	SortBy      string              `json:"sort_by" validate:"omitempty,oneof=price name"`
	SortOrder   string              `json:"sort_order" validate:"omitempty,oneof=asc desc ASC DESC"`
	Attributes  map[string][]string `json:"attributes" validate:"omitempty,dive,keys,attribute_key,endkeys,dive,required,max=100"`
}

func (req ProductFilterRequest) query() service.CatalogQuery {
	return service.CatalogQuery{
		Search:      req.Search,
		CategoryIDs: req.CategoryIDs,
		BrandIDs:    req.BrandIDs,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
		Attributes:  req.Attributes,
		Skip:        req.Skip,
		Limit:       req.Limit,
	}
}

// ProductListResponse is a catalog page with the facets of the whole filtered set
type ProductListResponse struct {
	Data         []domain.ProductListItem `json:"data"`
	Total        int                      `json:"total"`
	FilterValues *domain.FilterValues     `json:"filter_values"`
}

// ProductRequest is the body of product create and update
type ProductRequest struct {
	Code            string               `json:"product_code" validate:"required,max=50"`
	Name            string               `json:"name" validate:"required,max=100"`
	Description     *string              `json:"description"`
	RegularPrice    decimal.Decimal      `json:"regular_price"`
	SalePrice       decimal.NullDecimal  `json:"sale_price"`
	BrandID         *int64               `json:"brand_id" validate:"omitempty,gt=0"`
	UnitOfMeasure   string               `json:"unit_of_measure" validate:"required,max=30"`
	ImageURL        *string              `json:"image_url" validate:"omitempty,max=255"`
	ImageURLDetails *string              `json:"image_url_details" validate:"omitempty,max=255"`
	Status          domain.ProductStatus `json:"status" validate:"omitempty,oneof=active out_of_stock by_order discontinued"`
	CategoryID      *int64               `json:"category_id" validate:"omitempty,gt=0"`
	SubcategoryID   *int64               `json:"subcategory_id" validate:"omitempty,gt=0"`
	Attributes      domain.Attributes    `json:"attributes"`
}

func (req ProductRequest) product(id int64) *domain.Product {
	return &domain.Product{
		ID:              id,
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		RegularPrice:    req.RegularPrice,
		SalePrice:       req.SalePrice,
		BrandID:         req.BrandID,
		UnitOfMeasure:   req.UnitOfMeasure,
		ImageURL:        req.ImageURL,
		ImageURLDetails: req.ImageURLDetails,
		Status:          req.Status,
		CategoryID:      req.CategoryID,
		SubcategoryID:   req.SubcategoryID,
		Attributes:      req.Attributes,
	}
}

// ProductHandler serves the product catalog
type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.Search)
		r.Post("/paginated", h.List)
		r.Get("/search/quick", h.QuickSearch)
		r.Get("/{id}", h.GetDetail)
		r.Get("/{id}/suggested", h.Suggestions)

		r.Group(func(r chi.Router) {
			r.Use(guards.Authenticate, guards.Staff)
			r.Post("/create", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// Search returns a filtered page together with the filter values of the whole set
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req ProductFilterRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	page, err := h.catalog.Search(r.Context(), req.query())
	if err != nil {
		respondServiceError(w, r, h.logger, err, "search products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Data:         page.Items,
		Total:        page.Total,
		FilterValues: page.FilterValues,
	})
}

// List returns a filtered page without filter values
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var req ProductFilterRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	page, err := h.catalog.List(r.Context(), req.query())
	if err != nil {
		respondServiceError(w, r, h.logger, err, "list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ListResponse[domain.ProductListItem]{
		Data:  page.Items,
		Total: page.Total,
	})
}

func (h *ProductHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.catalog.GetDetail(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

func (h *ProductHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return
	}

	items, err := h.catalog.Suggestions(r.Context(), id, limit)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "get suggested products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DataResponse[domain.ProductListItem]{Data: items})
}

func (h *ProductHandler) QuickSearch(w http.ResponseWriter, r *http.Request) {
	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return
	}

	results, err := h.catalog.QuickSearch(r.Context(), r.URL.Query().Get("search"), limit)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "search products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DataResponse[domain.ProductQuickView]{Data: results})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	product := req.product(0)
	if err := h.catalog.CreateProduct(r.Context(), product); err != nil {
		respondServiceError(w, r, h.logger, err, "create product")
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID), zap.String("product_code", product.Code))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	product := req.product(id)
	if product.Status == "" {
		product.Status = domain.ProductStatusActive
	}
	if err := h.catalog.UpdateProduct(r.Context(), product); err != nil {
		respondServiceError(w, r, h.logger, err, "update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err, "delete product")
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}
