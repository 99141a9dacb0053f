package ordering

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced            = "OrderPlaced"
	EventTypeOrderCompleted         = "OrderCompleted"
	EventTypeOrderCancelled         = "OrderCancelled"
	EventTypeOrderInventoryDeducted = "OrderInventoryDeducted"
)

// OrderPlacedEvent is published when an order is persisted with its deductions
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	BranchID    uuid.UUID       `json:"branch_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BranchID:        o.BranchID,
		TotalAmount:     o.TotalAmount,
		ItemCount:       len(o.Items),
	}
}

// OrderCompletedEvent is published when an order is completed
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	BranchID    uuid.UUID `json:"branch_id"`
}

// NewOrderCompletedEvent creates a new OrderCompletedEvent
func NewOrderCompletedEvent(o *Order) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BranchID:        o.BranchID,
	}
}

// OrderCancelledEvent is published when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	BranchID    uuid.UUID `json:"branch_id"`
	Reason      string    `json:"reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BranchID:        o.BranchID,
		Reason:          reason,
	}
}

// OrderInventoryDeductedEvent is published when ingredient stock is deducted for an order
type OrderInventoryDeductedEvent struct {
	shared.BaseDomainEvent
	OrderID  uuid.UUID `json:"order_id"`
	BranchID uuid.UUID `json:"branch_id"`
}

// NewOrderInventoryDeductedEvent creates a new OrderInventoryDeductedEvent
func NewOrderInventoryDeductedEvent(o *Order) *OrderInventoryDeductedEvent {
	return &OrderInventoryDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderInventoryDeducted, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		BranchID:        o.BranchID,
	}
}
