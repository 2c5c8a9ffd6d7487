package repository

import (
	"context"
	"testing"

	"product-catalog/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProductRepositoryTests exercises the behaviour every ProductRepository
// implementation shares. newRepo must return an empty repository.
func runProductRepositoryTests(t *testing.T, newRepo func(t *testing.T) ProductRepository) {
	ctx := context.Background()

	t.Run("Read empty", func(t *testing.T) {
		products, err := newRepo(t).Read(ctx)

		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("Create and read back", func(t *testing.T) {
		repo := newRepo(t)

		latte, err := repo.Create(ctx, model.ProductInput{Name: model.Ptr("Latte"), Price: model.Ptr(2.45)})
		require.NoError(t, err)
		assert.NotEmpty(t, latte.ID)
		assert.Equal(t, "Latte", latte.Name)
		require.NotNil(t, latte.Price)
		assert.InDelta(t, 2.45, *latte.Price, 1e-9)

		tea, err := repo.Create(ctx, model.ProductInput{Name: model.Ptr("Tea")})
		require.NoError(t, err)
		assert.Nil(t, tea.Price)
		assert.NotEqual(t, latte.ID, tea.ID)

		got, err := repo.ReadByID(ctx, latte.ID.String())
		require.NoError(t, err)
		assert.Equal(t, latte, got)

		products, err := repo.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Product{latte, tea}, products)
	})

	t.Run("Create from empty payload", func(t *testing.T) {
		created, err := newRepo(t).Create(ctx, model.ProductInput{})

		require.NoError(t, err)
		assert.Equal(t, "", created.Name)
		assert.Nil(t, created.Price)
	})

	t.Run("Update applies only present fields", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, model.ProductInput{Name: model.Ptr("Latte"), Price: model.Ptr(2.45)})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID.String(), model.ProductInput{Price: model.Ptr(3.0)})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Latte", updated.Name)
		require.NotNil(t, updated.Price)
		assert.InDelta(t, 3.0, *updated.Price, 1e-9)

		updated, err = repo.Update(ctx, created.ID.String(), model.ProductInput{Name: model.Ptr("Flat white")})
		require.NoError(t, err)
		assert.Equal(t, "Flat white", updated.Name)
		assert.InDelta(t, 3.0, *updated.Price, 1e-9)

		got, err := repo.ReadByID(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("Delete returns the removed product", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, model.ProductInput{Name: model.Ptr("Latte")})
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, created, deleted)

		_, err = repo.ReadByID(ctx, created.ID.String())
		assert.ErrorIs(t, err, model.ErrProductNotFound)

		products, err := repo.Read(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Unknown id", func(t *testing.T) {
		repo := newRepo(t)
		const missing = "does-not-exist"

		_, err := repo.ReadByID(ctx, missing)
		assert.Same(t, model.ErrProductNotFound, err)

		_, err = repo.Update(ctx, missing, model.ProductInput{Name: model.Ptr("x")})
		assert.Same(t, model.ErrProductNotFound, err)

		_, err = repo.Delete(ctx, missing)
		assert.Same(t, model.ErrProductNotFound, err)
	})
}
