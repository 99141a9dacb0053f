package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(uuid.New(), uuid.New(), "ORD-20260901-0001")
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	tenantID := uuid.New()
	branchID := uuid.New()

	t.Run("creates order successfully", func(t *testing.T) {
		order, err := NewOrder(tenantID, branchID, "ORD-0001")

		require.NoError(t, err)
		assert.Equal(t, OrderStatusPlaced, order.Status)
		assert.Equal(t, branchID, order.BranchID)
		assert.False(t, order.InventoryDeducted)
		assert.True(t, order.TotalAmount.IsZero())
		assert.False(t, order.PlacedAt.IsZero())

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("fails with empty order number", func(t *testing.T) {
		_, err := NewOrder(tenantID, branchID, "  ")
		require.Error(t, err)
	})

	t.Run("fails with nil branch", func(t *testing.T) {
		_, err := NewOrder(tenantID, uuid.Nil, "ORD-0001")
		require.Error(t, err)
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("adds items and recalculates total", func(t *testing.T) {
		order := createTestOrder(t)

		_, err := order.AddItem(uuid.New(), "Sourdough Loaf", decimal.NewFromInt(4), decimal.NewFromFloat(6.50))
		require.NoError(t, err)
		_, err = order.AddItem(uuid.New(), "Espresso", decimal.NewFromInt(2), decimal.NewFromFloat(3.00))
		require.NoError(t, err)

		assert.Len(t, order.Items, 2)
		assert.Equal(t, "32", order.TotalAmount.String())
	})

	t.Run("rejects items on a cancelled order", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Cancel("customer left"))

		_, err := order.AddItem(uuid.New(), "Espresso", decimal.NewFromInt(1), decimal.NewFromInt(3))
		require.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order := createTestOrder(t)

		_, err := order.AddItem(uuid.New(), "Espresso", decimal.Zero, decimal.NewFromInt(3))
		require.Error(t, err)
	})
}

func TestOrder_InventoryDeductedFlag(t *testing.T) {
	order := createTestOrder(t)

	order.MarkInventoryDeducted()
	assert.True(t, order.InventoryDeducted)

	// idempotent: marking twice emits one event
	order.MarkInventoryDeducted()
	deductedEvents := 0
	for _, ev := range order.GetDomainEvents() {
		if ev.EventType() == EventTypeOrderInventoryDeducted {
			deductedEvents++
		}
	}
	assert.Equal(t, 1, deductedEvents)

	// first clear reverts, second clear reports nothing to do
	assert.True(t, order.ClearInventoryDeducted())
	assert.False(t, order.ClearInventoryDeducted())
}

func TestOrder_StatusTransitions(t *testing.T) {
	t.Run("placed order can complete", func(t *testing.T) {
		order := createTestOrder(t)

		require.NoError(t, order.Complete())
		assert.Equal(t, OrderStatusCompleted, order.Status)
		assert.NotNil(t, order.CompletedAt)
	})

	t.Run("placed order can cancel", func(t *testing.T) {
		order := createTestOrder(t)

		require.NoError(t, order.Cancel("kitchen out of service"))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.NotNil(t, order.CancelledAt)
		assert.Equal(t, "kitchen out of service", order.CancelReason)
	})

	t.Run("terminal states reject transitions", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Complete())

		require.Error(t, order.Cancel("too late"))

		order2 := createTestOrder(t)
		require.NoError(t, order2.Cancel("changed mind"))
		require.Error(t, order2.Complete())
	})
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusPlaced.IsValid())
	assert.False(t, OrderStatus("BOGUS").IsValid())
	assert.True(t, OrderStatusPlaced.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusPlaced.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPlaced))
}
