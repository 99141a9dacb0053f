package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockEntry(t *testing.T) {
	tenantID := uuid.New()
	branchID := uuid.New()
	itemID := uuid.New()

	t.Run("creates inbound entry", func(t *testing.T) {
		entry, err := NewStockEntry(
			tenantID, branchID, itemID,
			EntryTypePurchase,
			decimal.NewFromInt(10),
			decimal.NewFromInt(5),
			decimal.NewFromInt(15),
		)

		require.NoError(t, err)
		assert.Equal(t, EntryTypePurchase, entry.EntryType)
		assert.Equal(t, "10", entry.Quantity.String())
		assert.Equal(t, "5", entry.PreviousQuantity.String())
		assert.Equal(t, "15", entry.NewQuantity.String())
		assert.True(t, entry.IsInbound())
		assert.True(t, entry.Reference.IsZero())
	})

	t.Run("creates outbound entry with negative quantity", func(t *testing.T) {
		entry, err := NewStockEntry(
			tenantID, branchID, itemID,
			EntryTypeSale,
			decimal.NewFromFloat(-8.8),
			decimal.NewFromInt(10),
			decimal.NewFromFloat(1.2),
		)

		require.NoError(t, err)
		assert.True(t, entry.IsOutbound())
	})

	t.Run("rejects mismatched running balance", func(t *testing.T) {
		_, err := NewStockEntry(
			tenantID, branchID, itemID,
			EntryTypePurchase,
			decimal.NewFromInt(10),
			decimal.NewFromInt(5),
			decimal.NewFromInt(14),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "previous quantity plus entry quantity")
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewStockEntry(
			tenantID, branchID, itemID,
			EntryTypeAdjustment,
			decimal.Zero,
			decimal.NewFromInt(5),
			decimal.NewFromInt(5),
		)

		require.Error(t, err)
	})

	t.Run("rejects negative quantity for inbound type", func(t *testing.T) {
		_, err := NewStockEntry(
			tenantID, branchID, itemID,
			EntryTypePurchase,
			decimal.NewFromInt(-10),
			decimal.NewFromInt(15),
			decimal.NewFromInt(5),
		)

		require.Error(t, err)
	})

	t.Run("rejects positive quantity for outbound type", func(t *testing.T) {
		_, err := NewStockEntry(
			tenantID, branchID, itemID,
			EntryTypeWaste,
			decimal.NewFromInt(10),
			decimal.NewFromInt(5),
			decimal.NewFromInt(15),
		)

		require.Error(t, err)
	})

	t.Run("adjustment accepts either sign", func(t *testing.T) {
		_, err := NewStockEntry(
			tenantID, branchID, itemID,
			EntryTypeAdjustment,
			decimal.NewFromInt(3),
			decimal.NewFromInt(5),
			decimal.NewFromInt(8),
		)
		require.NoError(t, err)

		_, err = NewStockEntry(
			tenantID, branchID, itemID,
			EntryTypeAdjustment,
			decimal.NewFromInt(-3),
			decimal.NewFromInt(5),
			decimal.NewFromInt(2),
		)
		require.NoError(t, err)
	})

	t.Run("rejects invalid entry type", func(t *testing.T) {
		_, err := NewStockEntry(
			tenantID, branchID, itemID,
			EntryType("BOGUS"),
			decimal.NewFromInt(10),
			decimal.NewFromInt(0),
			decimal.NewFromInt(10),
		)

		require.Error(t, err)
	})
}

func TestStockEntry_WithCost(t *testing.T) {
	entry, err := NewStockEntry(
		uuid.New(), uuid.New(), uuid.New(),
		EntryTypeSale,
		decimal.NewFromInt(-4),
		decimal.NewFromInt(10),
		decimal.NewFromInt(6),
	)
	require.NoError(t, err)

	entry.WithCost(decimal.NewFromFloat(2.5))

	assert.Equal(t, "2.5", entry.UnitCost.String())
	// total cost is always positive, sign lives on the quantity
	assert.Equal(t, "10", entry.TotalCost.String())
}

func TestMovementRef(t *testing.T) {
	orderID := uuid.New()

	ref := OrderRef(orderID)
	assert.Equal(t, ReferenceKindOrder, ref.Kind)
	assert.Equal(t, orderID, ref.ID)
	assert.False(t, ref.IsZero())

	assert.True(t, MovementRef{}.IsZero())
	assert.True(t, TransferRef(uuid.New()).Kind.IsValid())
	assert.True(t, StockCountRef(uuid.New()).Kind.IsValid())
	assert.True(t, ManualRef(uuid.New()).Kind.IsValid())
	assert.False(t, ReferenceKind("BOGUS").IsValid())
}

func TestEntryTypeDirections(t *testing.T) {
	inbound := []EntryType{EntryTypePurchase, EntryTypeTransferIn, EntryTypeReturn, EntryTypeProduction}
	for _, et := range inbound {
		assert.True(t, et.IsInbound(), et.String())
		assert.False(t, et.IsOutbound(), et.String())
	}

	outbound := []EntryType{EntryTypeSale, EntryTypeWaste, EntryTypeTransferOut, EntryTypePurchaseReturn}
	for _, et := range outbound {
		assert.True(t, et.IsOutbound(), et.String())
		assert.False(t, et.IsInbound(), et.String())
	}

	assert.False(t, EntryTypeAdjustment.IsInbound())
	assert.False(t, EntryTypeAdjustment.IsOutbound())
	assert.True(t, EntryTypeAdjustment.IsValid())
}

func TestInsufficientStockError(t *testing.T) {
	itemID := uuid.New()
	err := NewInsufficientStockError([]Shortage{
		{
			CatalogItemID: itemID,
			ItemName:      "Flour",
			Unit:          "kg",
			Required:      decimal.NewFromInt(11),
			Available:     decimal.NewFromInt(10),
		},
	})

	assert.Equal(t, "INSUFFICIENT_STOCK", err.Code())
	assert.Contains(t, err.Error(), "Flour")
	assert.Contains(t, err.Error(), "need 11")
	assert.Contains(t, err.Error(), "have 10")
	assert.Equal(t, "1", err.Shortages[0].Missing().String())
}
