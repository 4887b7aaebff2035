package repository

import (
	"context"
	"testing"

	"pvc-shop/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_ListFilters(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(testDB)

	pipes := mustCreateCategory(t, "Pipes", nil)
	fittings := mustCreateCategory(t, "Fittings", nil)
	pressure := mustCreateCategory(t, "Pressure pipes", &pipes.ID)

	fittings.IsActive = false
	fittings.DisplayOrder = 5
	require.NoError(t, repo.Update(ctx, fittings))

	all, total, err := repo.List(ctx, CategoryFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []int64{pipes.ID, pressure.ID, fittings.ID}, categoryIDs(all))

	active := true
	activeOnly, total, err := repo.List(ctx, CategoryFilter{IsActive: &active}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []int64{pipes.ID, pressure.ID}, categoryIDs(activeOnly))

	main, total, err := repo.List(ctx, CategoryFilter{MainOnly: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []int64{pipes.ID, fittings.ID}, categoryIDs(main))

	searched, total, err := repo.List(ctx, CategoryFilter{Search: "PIPE"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []int64{pressure.ID}, categoryIDs(searched))
}

func TestCategoryRepository_AncestorIDs(t *testing.T) {
	resetDB(t)
	repo := NewCategoryRepository(testDB)

	root := mustCreateCategory(t, "Root", nil)
	middle := mustCreateCategory(t, "Middle", &root.ID)
	leaf := mustCreateCategory(t, "Leaf", &middle.ID)

	ancestors, err := repo.AncestorIDs(context.Background(), leaf.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{leaf.ID, middle.ID, root.ID}, ancestors)

	ancestors, err = repo.AncestorIDs(context.Background(), 9999)
	require.NoError(t, err)
	assert.Empty(t, ancestors)
}

func TestCategoryRepository_NotFoundAndReferences(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(testDB)

	_, err := repo.FindByID(ctx, 77)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 77), ErrCategoryNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Category{ID: 77, Name: "Ghost"}), ErrCategoryNotFound)

	missing := int64(77)
	assert.ErrorIs(t, repo.Create(ctx, &domain.Category{Name: "Orphan", ParentCategoryID: &missing}), ErrInvalidReference)
}

func TestCategoryRepository_DeleteKeepsProducts(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	category := mustCreateCategory(t, "Valves", nil)
	product := mustCreateProduct(t, productFixture{code: "V1", name: "Ball valve", price: "9", category: category})

	require.NoError(t, NewCategoryRepository(testDB).Delete(ctx, category.ID))

	found, err := NewProductRepository(testDB).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CategoryID)
	assert.Nil(t, found.CategoryName)
}

func categoryIDs(categories []domain.Category) []int64 {
	out := make([]int64, len(categories))
	for i, c := range categories {
		out[i] = c.ID
	}
	return out
}
