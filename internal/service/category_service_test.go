package service

import (
	"context"
	"testing"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateValidatesParent(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	err := svc.Create(ctx, &domain.Category{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	root := &domain.Category{Name: " Pipes ", IsActive: true}
	require.NoError(t, svc.Create(ctx, root))
	assert.Equal(t, "Pipes", root.Name)

	child := &domain.Category{Name: "Pressure", ParentCategoryID: int64Ptr(root.ID), IsActive: true}
	require.NoError(t, svc.Create(ctx, child))

	orphan := &domain.Category{Name: "Lost", ParentCategoryID: int64Ptr(999)}
	err = svc.Create(ctx, orphan)
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestCategoryService_UpdateRejectsCycles(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	a := &domain.Category{Name: "A"}
	require.NoError(t, svc.Create(ctx, a))
	b := &domain.Category{Name: "B", ParentCategoryID: int64Ptr(a.ID)}
	require.NoError(t, svc.Create(ctx, b))
	c := &domain.Category{Name: "C", ParentCategoryID: int64Ptr(b.ID)}
	require.NoError(t, svc.Create(ctx, c))

	tests := []struct {
		name   string
		id     int64
		parent int64
	}{
		{"self parent", a.ID, a.ID},
		{"direct child as parent", a.ID, b.ID},
		{"grandchild as parent", a.ID, c.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Update(ctx, &domain.Category{ID: tt.id, Name: "A", ParentCategoryID: int64Ptr(tt.parent)})
			assert.ErrorIs(t, err, ErrCategoryCycle)
		})
	}

	// moving C directly under A is fine
	require.NoError(t, svc.Update(ctx, &domain.Category{ID: c.ID, Name: "C", ParentCategoryID: int64Ptr(a.ID)}))
}

func TestCategoryService_ListMain(t *testing.T) {
	repo := newMockCategoryRepository()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	active := &domain.Category{Name: "Fittings", IsActive: true}
	require.NoError(t, svc.Create(ctx, active))
	require.NoError(t, svc.Create(ctx, &domain.Category{Name: "Archive", IsActive: false}))
	require.NoError(t, svc.Create(ctx, &domain.Category{Name: "Elbows", IsActive: true, ParentCategoryID: int64Ptr(active.ID)}))

	main, err := svc.ListMain(ctx)
	require.NoError(t, err)
	require.Len(t, main, 1)
	assert.Equal(t, "Fittings", main[0].Name)

	_, _, err = svc.List(ctx, repository.CategoryFilter{}, -1, nil)
	assert.ErrorIs(t, err, ErrValidation)
}
