package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct_SlugCollisions(t *testing.T) {
	env := newTestEnv(t)

	a := env.product(t, env.tees, "Happy Wife", "20.55")
	b := env.product(t, env.tees, "Happy Wife", "21.00")
	c := env.product(t, env.tees, "Happy  Wife", "22.00")
	d := env.product(t, env.mugs, "Happy Wife", "19.95")

	assert.Equal(t, "happy-wife-t-shirts", a.Slug)
	assert.Equal(t, "happy-wife-t-shirts-2", b.Slug)
	assert.Equal(t, "happy-wife-t-shirts-3", c.Slug)
	assert.Equal(t, "happy-wife-mugs", d.Slug)
	assert.Equal(t, models.DefaultProductImage, a.Image)
}

func TestCreateProduct_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.CreateProduct(ctx, NewProductInput{CategoryID: env.mugs.ID, Name: "Mug", UnitPrice: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.catalog.CreateProduct(ctx, NewProductInput{CategoryID: env.mugs.ID, Name: " ", UnitPrice: decimal.RequireFromString("1")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.catalog.CreateProduct(ctx, NewProductInput{CategoryID: 9999, Name: "Mug", UnitPrice: decimal.RequireFromString("1")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.CreateCategory(ctx, models.CategoryMugs)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.catalog.CreateCategory(ctx, "Hats")
	assert.ErrorIs(t, err, ErrValidation)

	cats, err := env.catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestProductsByCategory_Paging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i, price := range []string{"30.00", "10.00", "20.00", "10.00", "5.00"} {
		env.product(t, env.mugs, fmt.Sprintf("Mug %d", i), price)
	}
	env.product(t, env.tees, "Tee", "1.00")

	page, err := env.catalog.ProductsByCategory(ctx, env.mugs.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.EqualValues(t, 3, page.TotalPages())
	assert.False(t, page.HasPrev())
	assert.True(t, page.HasNext())
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Mug 4", page.Items[0].Name)
	assert.Equal(t, "Mug 1", page.Items[1].Name)

	page, err = env.catalog.ProductsByCategory(ctx, env.mugs.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Mug 3", page.Items[0].Name)
	assert.Equal(t, "Mug 2", page.Items[1].Name)

	page, err = env.catalog.ProductsByCategory(ctx, env.mugs.ID, 3, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.False(t, page.HasNext())

	page, err = env.catalog.ProductsByCategory(ctx, env.mugs.ID, math.MaxInt, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Items, "a page far past the end is empty, not page one")
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrev())
	require.NotNil(t, page.Category)
	assert.Equal(t, env.mugs.ID, page.Category.ID)

	_, err = env.catalog.ProductsByCategory(ctx, 9999, 1, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mug := env.product(t, env.mugs, "Coffee First", "19.95")

	assert.ErrorIs(t, env.catalog.UpdatePrice(ctx, mug.ID, decimal.RequireFromString("1.999")), ErrValidation)
	assert.ErrorIs(t, env.catalog.UpdatePrice(ctx, 9999, decimal.RequireFromString("1.00")), ErrNotFound)

	require.NoError(t, env.catalog.UpdatePrice(ctx, mug.ID, decimal.RequireFromString("17.50")))
	got, err := env.catalog.Product(ctx, mug.ID)
	require.NoError(t, err)
	assert.Equal(t, "17.50", got.UnitPrice.StringFixed(2))
	require.NotNil(t, got.Category)
	assert.Equal(t, models.CategoryMugs, got.Category.Name)
}
