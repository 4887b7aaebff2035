package service

import (
	"context"
	"testing"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetUserByID(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user := &domain.User{
		Email:    "ana@example.com",
		IsActive: true,
		Role:     domain.UserTypeCustomer,
		Profile:  domain.Customer{MembershipLevel: "gold"},
	}
	require.NoError(t, repo.Create(ctx, user))

	found, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)
	assert.Equal(t, domain.Customer{MembershipLevel: "gold"}, found.Profile)

	_, err = svc.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserService_PaginatedDefaultsAndValidation(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	_, _, err := svc.Paginated(ctx, repository.UserPageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastReq.Page)
	assert.Equal(t, 10, repo.lastReq.Size)

	bogus := domain.UserType("guest")
	_, _, err = svc.Paginated(ctx, repository.UserPageRequest{Role: &bogus})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Paginated(ctx, repository.UserPageRequest{PageRequest: repository.PageRequest{Size: MaxPageLimit + 1}})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Paginated(ctx, repository.UserPageRequest{PageRequest: repository.PageRequest{Page: -2}})
	assert.ErrorIs(t, err, ErrValidation)
}

// Feature: catalog-api, Property: role filter only returns users of that role
func TestProperty_UserRoleFilter(t *testing.T) {
	roles := []domain.UserType{
		domain.UserTypeCustomer,
		domain.UserTypeDistributor,
		domain.UserTypeAdministrator,
		domain.UserTypeEmployee,
	}

	properties := gopter.NewProperties(nil)

	properties.Property("every listed user carries the requested role", prop.ForAll(
		func(assignments []int, pick int) bool {
			repo := newMockUserRepository()
			svc := NewUserService(repo)
			ctx := context.Background()

			expected := 0
			for i, a := range assignments {
				role := roles[a]
				if a == pick {
					expected++
				}
				if err := repo.Create(ctx, &domain.User{Email: uuid.NewString() + "@example.com", Role: role, IsActive: i%2 == 0}); err != nil {
					return false
				}
			}

			role := roles[pick]
			users, total, err := svc.Paginated(ctx, repository.UserPageRequest{Role: &role})
			if err != nil || total != expected {
				t.Logf("FAIL: expected %d users with role %s, got %d (err %v)", expected, role, total, err)
				return false
			}
			for _, u := range users {
				if u.Role != role {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(roles)-1)),
		gen.IntRange(0, len(roles)-1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
