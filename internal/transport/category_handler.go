package transport

import (
	"net/http"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/middleware"
	"pvc-shop/internal/repository"
	"pvc-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryRequest is the body of category create and update
type CategoryRequest struct {
	Name             string  `json:"category_name" validate:"required,max=100"`
	ParentCategoryID *int64  `json:"parent_category_id" validate:"omitempty,gt=0"`
	Description      *string `json:"description"`
	DisplayOrder     int     `json:"display_order"`
	ImageURL         *string `json:"image_url" validate:"omitempty,max=255"`
	IsActive         *bool   `json:"is_active"`
}

func (req CategoryRequest) category(id int64) *domain.Category {
	category := &domain.Category{
		ID:               id,
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
		Description:      req.Description,
		DisplayOrder:     req.DisplayOrder,
		ImageURL:         req.ImageURL,
		IsActive:         true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	return category
}

// CategoryHandler serves the category tree
type CategoryHandler struct {
	categories service.CategoryService
	logger     *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/main", h.ListMain)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(guards.Authenticate, guards.Admin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List supports the search, is_active and is_main query filters
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := skipLimit(w, r)
	if !ok {
		return
	}
	isActive, ok := boolQuery(w, r, "is_active")
	if !ok {
		return
	}
	isMain, ok := boolQuery(w, r, "is_main")
	if !ok {
		return
	}

	filter := repository.CategoryFilter{
		Search:   r.URL.Query().Get("search"),
		IsActive: isActive,
		MainOnly: isMain != nil && *isMain,
	}

	categories, total, err := h.categories.List(r.Context(), filter, skip, limit)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ListResponse[domain.Category]{Data: categories, Total: total})
}

func (h *CategoryHandler) ListMain(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListMain(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err, "list main categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DataResponse[domain.Category]{Data: categories})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "get category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	category := req.category(0)
	if err := h.categories.Create(r.Context(), category); err != nil {
		respondServiceError(w, r, h.logger, err, "create category")
		return
	}

	h.logger.Info("Category created", zap.Int64("category_id", category.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	category := req.category(id)
	if err := h.categories.Update(r.Context(), category); err != nil {
		respondServiceError(w, r, h.logger, err, "update category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err, "delete category")
		return
	}

	h.logger.Info("Category deleted", zap.Int64("category_id", id))
	w.WriteHeader(http.StatusNoContent)
}
