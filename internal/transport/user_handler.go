package transport

import (
	"net/http"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/middleware"
	"pvc-shop/internal/repository"
	"pvc-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserPageRequestBody is the body of the paginated user listing
type UserPageRequestBody struct {
	PageRequestBody
	Role *domain.UserType `json:"role" validate:"omitempty,oneof=customer distributor administrator employee"`
}

// UserListResponse is the envelope of the paginated user listing
type UserListResponse struct {
	Items      []domain.User `json:"items"`
	TotalCount int           `json:"total_count"`
}

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Route("/users", func(r chi.Router) {
		r.Use(guards.Authenticate)
		r.Get("/me", h.GetProfile)

		r.Group(func(r chi.Router) {
			r.Use(guards.Admin)
			r.Post("/paginated", h.Paginated)
			r.Get("/{id}", h.GetUser)
		})
	})
}

// Paginated lists users with their role profiles
func (h *UserHandler) Paginated(w http.ResponseWriter, r *http.Request) {
	var req UserPageRequestBody
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	users, total, err := h.userService.Paginated(r.Context(), repository.UserPageRequest{
		PageRequest: req.pageRequest(),
		Role:        req.Role,
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err, "list users")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, UserListResponse{Items: users, TotalCount: total})
}

// GetUser returns one user by id
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{{Field: "id", Message: "must be a UUID"}})
		return
	}

	h.respondWithUser(w, r, userID)
}

// GetProfile returns the user the bearer token was issued to
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		h.logger.Warn("Token subject is not a user id", zap.String("subject", userIDStr))
		middleware.RespondWithError(w, http.StatusUnauthorized, "invalid token subject")
		return
	}

	h.respondWithUser(w, r, userID)
}

func (h *UserHandler) respondWithUser(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "get user")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}
