package service

import (
	"context"
	"fmt"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/repository"

	"github.com/google/uuid"
)

// UserService defines the interface for the user read path
type UserService interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	Paginated(ctx context.Context, req repository.UserPageRequest) ([]domain.User, int, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetUserByID retrieves a user with its role profile
func (s *userService) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Paginated lists users, optionally restricted to one role
func (s *userService) Paginated(ctx context.Context, req repository.UserPageRequest) ([]domain.User, int, error) {
	if err := validatePageRequest(&req.PageRequest); err != nil {
		return nil, 0, err
	}
	if req.Role != nil && !req.Role.Valid() {
		return nil, 0, invalid("role", "must be one of customer, distributor, administrator, employee")
	}

	users, total, err := s.userRepo.Paginated(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
