package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRecipe(t *testing.T) *Recipe {
	t.Helper()
	r, err := NewRecipe(uuid.New(), uuid.New(), "Sourdough Loaf", decimal.NewFromInt(5))
	require.NoError(t, err)
	return r
}

func TestNewRecipe(t *testing.T) {
	tenantID := uuid.New()
	menuItemID := uuid.New()

	t.Run("creates recipe successfully", func(t *testing.T) {
		r, err := NewRecipe(tenantID, menuItemID, "Sourdough Loaf", decimal.NewFromInt(5))

		require.NoError(t, err)
		assert.Equal(t, menuItemID, r.MenuItemID)
		assert.True(t, r.Active)
		assert.False(t, r.IsDefault)
		assert.Empty(t, r.Ingredients)

		events := r.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeRecipeCreated, events[0].EventType())
	})

	t.Run("fails with non-positive yield", func(t *testing.T) {
		_, err := NewRecipe(tenantID, menuItemID, "Sourdough Loaf", decimal.Zero)
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewRecipe(tenantID, menuItemID, " ", decimal.NewFromInt(5))
		require.Error(t, err)
	})
}

func TestRecipe_AddIngredient(t *testing.T) {
	t.Run("adds ingredient lines in order", func(t *testing.T) {
		r := createTestRecipe(t)

		flour := uuid.New()
		_, err := r.AddIngredient(flour, decimal.NewFromInt(10), "kg", decimal.NewFromInt(10))
		require.NoError(t, err)
		_, err = r.AddIngredient(uuid.New(), decimal.NewFromInt(6), "l", decimal.Zero)
		require.NoError(t, err)

		require.Len(t, r.Ingredients, 2)
		assert.Equal(t, 0, r.Ingredients[0].SequenceOrder)
		assert.Equal(t, 1, r.Ingredients[1].SequenceOrder)
		assert.Equal(t, flour, r.Ingredients[0].CatalogItemID)
	})

	t.Run("rejects duplicate ingredient", func(t *testing.T) {
		r := createTestRecipe(t)
		flour := uuid.New()

		_, err := r.AddIngredient(flour, decimal.NewFromInt(10), "kg", decimal.Zero)
		require.NoError(t, err)

		_, err = r.AddIngredient(flour, decimal.NewFromInt(5), "kg", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already present")
	})

	t.Run("rejects negative wastage", func(t *testing.T) {
		r := createTestRecipe(t)

		_, err := r.AddIngredient(uuid.New(), decimal.NewFromInt(1), "kg", decimal.NewFromInt(-5))
		require.Error(t, err)
	})
}

func TestRecipe_RemoveIngredient(t *testing.T) {
	r := createTestRecipe(t)
	ing, err := r.AddIngredient(uuid.New(), decimal.NewFromInt(1), "kg", decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, r.RemoveIngredient(ing.ID))
	assert.Empty(t, r.Ingredients)

	require.Error(t, r.RemoveIngredient(uuid.New()))
}

func TestRecipe_DefaultFlag(t *testing.T) {
	r := createTestRecipe(t)
	r.ClearDomainEvents()

	r.MarkDefault()
	assert.True(t, r.IsDefault)

	events := r.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeRecipeDefaultChanged, events[0].EventType())

	// marking again is a no-op
	r.MarkDefault()
	assert.Len(t, r.GetDomainEvents(), 1)

	r.UnmarkDefault()
	assert.False(t, r.IsDefault)
}

func TestRecipe_Deactivate(t *testing.T) {
	r := createTestRecipe(t)
	r.MarkDefault()
	require.True(t, r.IsResolvable())

	r.Deactivate()

	assert.False(t, r.Active)
	assert.False(t, r.IsDefault)
	assert.False(t, r.IsResolvable())
}

func TestRecipe_UpdateYield(t *testing.T) {
	r := createTestRecipe(t)

	require.NoError(t, r.UpdateYield(decimal.NewFromInt(8)))
	assert.Equal(t, "8", r.YieldQuantity.String())

	require.Error(t, r.UpdateYield(decimal.Zero))
}
