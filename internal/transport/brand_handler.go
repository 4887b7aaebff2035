package transport

import (
	"net/http"
	"strings"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/middleware"
	"pvc-shop/internal/repository"
	"pvc-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BrandRequest is the body of brand create and update
type BrandRequest struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description"`
}

// PageRequestBody is the body of the page-numbered listing endpoints
type PageRequestBody struct {
	Search string `json:"search" validate:"max=100"`
	Sort   string `json:"sort" validate:"max=50"`
	Order  string `json:"order" validate:"omitempty,oneof=asc desc ASC DESC"`
	Page   int    `json:"page" validate:"gte=0"`
	Size   int    `json:"size" validate:"gte=0,lte=100"`
}

func (req PageRequestBody) pageRequest() repository.PageRequest {
	return repository.PageRequest{
		Search:     req.Search,
		Sort:       req.Sort,
		Descending: strings.EqualFold(req.Order, "desc"),
		Page:       req.Page,
		Size:       req.Size,
	}
}

// BrandHandler serves brands
type BrandHandler struct {
	brands service.BrandService
	logger *zap.Logger
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brands service.BrandService, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		brands: brands,
		logger: logger,
	}
}

// RegisterRoutes registers all brand routes
func (h *BrandHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Route("/brands", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/paginated", h.Paginated)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(guards.Authenticate, guards.Admin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := skipLimit(w, r)
	if !ok {
		return
	}

	brands, total, err := h.brands.List(r.Context(), skip, limit)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "list brands")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ListResponse[domain.Brand]{Data: brands, Total: total})
}

func (h *BrandHandler) Paginated(w http.ResponseWriter, r *http.Request) {
	var req PageRequestBody
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	brands, total, err := h.brands.Paginated(r.Context(), req.pageRequest())
	if err != nil {
		respondServiceError(w, r, h.logger, err, "list brands")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ListResponse[domain.Brand]{Data: brands, Total: total})
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	brand, err := h.brands.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "get brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BrandRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	brand := &domain.Brand{Name: req.Name, Description: req.Description}
	if err := h.brands.Create(r.Context(), brand); err != nil {
		respondServiceError(w, r, h.logger, err, "create brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, brand)
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req BrandRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	brand := &domain.Brand{ID: id, Name: req.Name, Description: req.Description}
	if err := h.brands.Update(r.Context(), brand); err != nil {
		respondServiceError(w, r, h.logger, err, "update brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.brands.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err, "delete brand")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
