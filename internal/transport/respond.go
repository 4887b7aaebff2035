package transport

import (
	"errors"
	"net/http"
	"strconv"

	"pvc-shop/internal/middleware"
	"pvc-shop/internal/repository"
	"pvc-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Guards are the authentication and role middleware applied to write routes
type Guards struct {
	Authenticate func(http.Handler) http.Handler
	Admin        func(http.Handler) http.Handler
	Staff        func(http.Handler) http.Handler
}

// ListResponse is the envelope of listing endpoints
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// DataResponse wraps a list that carries no total
type DataResponse[T any] struct {
	Data []T `json:"data"`
}

var notFoundErrors = []error{
	repository.ErrProductNotFound,
	repository.ErrCategoryNotFound,
	repository.ErrBrandNotFound,
	repository.ErrInventoryNotFound,
	repository.ErrPromotionNotFound,
	repository.ErrSpecificationNotFound,
	repository.ErrUserNotFound,
	repository.ErrInvalidReference,
}

var conflictErrors = []error{
	repository.ErrProductCodeDuplicate,
	repository.ErrUserAlreadyExists,
}

// respondServiceError maps a service error onto the HTTP error envelope.
// Unrecognised errors are logged and reported as 500 without their text.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error, action string) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{{
			Field:   validationErr.Field,
			Message: validationErr.Message,
		}})
		return
	}

	for _, target := range []error{service.ErrCategoryCycle, repository.ErrConstraintViolation} {
		if errors.Is(err, target) {
			middleware.RespondWithError(w, http.StatusBadRequest, target.Error())
			return
		}
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			middleware.RespondWithError(w, http.StatusNotFound, target.Error())
			return
		}
	}

	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			middleware.RespondWithError(w, http.StatusConflict, target.Error())
			return
		}
	}

	logger.Error("Request failed",
		zap.String("action", action),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	middleware.RespondWithError(w, http.StatusInternalServerError, "failed to "+action)
}

// decodeBody decodes and validates a JSON body, writing the 400 response itself on failure
func decodeBody(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed", zap.String("path", r.URL.Path), zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// idParam parses a positive integer path parameter
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{{
			Field:   name,
			Message: "must be a positive integer",
		}})
		return 0, false
	}
	return id, true
}

// intQuery parses an optional integer query parameter
func intQuery(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{{
			Field:   name,
			Message: "must be an integer",
		}})
		return nil, false
	}
	return &n, true
}

// boolQuery parses an optional boolean query parameter
func boolQuery(w http.ResponseWriter, r *http.Request, name string) (*bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{{
			Field:   name,
			Message: "must be a boolean",
		}})
		return nil, false
	}
	return &b, true
}

// skipLimit reads the skip and limit query parameters shared by the listing endpoints
func skipLimit(w http.ResponseWriter, r *http.Request) (int, *int, bool) {
	skip, ok := intQuery(w, r, "skip")
	if !ok {
		return 0, nil, false
	}
	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return 0, nil, false
	}
	if skip == nil {
		return 0, limit, true
	}
	return *skip, limit, true
}
