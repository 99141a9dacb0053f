package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogItem(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates item and normalizes code", func(t *testing.T) {
		item, err := NewCatalogItem(tenantID, " flour ", "Bread Flour", ItemKindIngredient, "kg")

		require.NoError(t, err)
		assert.Equal(t, "FLOUR", item.Code)
		assert.Equal(t, ItemKindIngredient, item.Kind)
		assert.True(t, item.Active)
		assert.True(t, item.Price.IsZero())

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCatalogItemCreated, events[0].EventType())
	})

	t.Run("fails with invalid kind", func(t *testing.T) {
		_, err := NewCatalogItem(tenantID, "FLOUR", "Bread Flour", ItemKind("bogus"), "kg")
		require.Error(t, err)
	})

	t.Run("fails with empty unit", func(t *testing.T) {
		_, err := NewCatalogItem(tenantID, "FLOUR", "Bread Flour", ItemKindIngredient, " ")
		require.Error(t, err)
	})
}

func TestItemKind(t *testing.T) {
	assert.True(t, ItemKindMenuItem.IsValid())
	assert.False(t, ItemKind("bogus").IsValid())

	assert.False(t, ItemKindMenuItem.IsTrackable())
	assert.True(t, ItemKindInventory.IsTrackable())
	assert.True(t, ItemKindIngredient.IsTrackable())
}

func TestCatalogItem_Update(t *testing.T) {
	item, err := NewCatalogItem(uuid.New(), "FLOUR", "Bread Flour", ItemKindIngredient, "kg")
	require.NoError(t, err)

	require.NoError(t, item.Update("Strong Bread Flour", "g"))
	assert.Equal(t, "Strong Bread Flour", item.Name)
	assert.Equal(t, "g", item.Unit)

	require.Error(t, item.Update("", "g"))
}

func TestCatalogItem_SetPrice(t *testing.T) {
	item, err := NewCatalogItem(uuid.New(), "LOAF", "Sourdough Loaf", ItemKindMenuItem, "pcs")
	require.NoError(t, err)

	require.NoError(t, item.SetPrice(decimal.NewFromFloat(6.50)))
	assert.Equal(t, "6.5", item.Price.String())

	require.Error(t, item.SetPrice(decimal.NewFromInt(-1)))
}

func TestCatalogItem_Lifecycle(t *testing.T) {
	item, err := NewCatalogItem(uuid.New(), "LOAF", "Sourdough Loaf", ItemKindMenuItem, "pcs")
	require.NoError(t, err)

	assert.True(t, item.IsSellable())
	assert.False(t, item.IsTrackable())

	item.Deactivate()
	assert.False(t, item.Active)
	assert.False(t, item.IsSellable())

	item.Activate()
	assert.True(t, item.IsSellable())
}
