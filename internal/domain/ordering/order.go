package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPlaced:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // terminal
	}
	return false
}

// OrderItem is one ordered line: a sellable catalog item and a quantity
type OrderItem struct {
	shared.BaseEntity
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CatalogItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName      string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes         string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Order is a customer order at a branch. It is the aggregate root for
// fulfillment: placing an order deducts ingredient stock, cancelling it
// restores the stock through compensating ledger entries.
//
// InventoryDeducted records whether the placement deduction has been
// applied and not yet reverted. Reversal checks and clears it so a
// double-cancel never restores stock twice.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber       string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_number_tenant"`
	BranchID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status            OrderStatus     `gorm:"type:varchar(20);not null"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	InventoryDeducted bool            `gorm:"not null;default:false"`
	Notes             string          `gorm:"type:varchar(255)"`
	PlacedAt          time.Time       `gorm:"type:timestamptz;not null"`
	CompletedAt       *time.Time      `gorm:"type:timestamptz"`
	CancelledAt       *time.Time      `gorm:"type:timestamptz"`
	CancelReason      string          `gorm:"type:varchar(255)"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order for a branch
func NewOrder(tenantID, branchID uuid.UUID, orderNumber string) (*Order, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		BranchID:            branchID,
		Status:              OrderStatusPlaced,
		TotalAmount:         decimal.Zero,
		PlacedAt:            time.Now(),
		Items:               make([]OrderItem, 0),
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// AddItem appends an ordered line and recalculates the total
func (o *Order) AddItem(catalogItemID uuid.UUID, itemName string, quantity, unitPrice decimal.Decimal) (*OrderItem, error) {
	if o.Status != OrderStatusPlaced {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a closed order")
	}
	if catalogItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Catalog item ID cannot be empty")
	}
	if strings.TrimSpace(itemName) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := OrderItem{
		BaseEntity:    shared.NewBaseEntity(),
		OrderID:       o.ID,
		CatalogItemID: catalogItemID,
		ItemName:      itemName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		Amount:        quantity.Mul(unitPrice),
	}
	o.Items = append(o.Items, item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return &o.Items[len(o.Items)-1], nil
}

// MarkInventoryDeducted records that ingredient stock was deducted for this order
func (o *Order) MarkInventoryDeducted() {
	if o.InventoryDeducted {
		return
	}
	o.InventoryDeducted = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderInventoryDeductedEvent(o))
}

// ClearInventoryDeducted records that the deduction was compensated.
// Returns false when there is nothing to revert, so callers can make
// reversal idempotent.
func (o *Order) ClearInventoryDeducted() bool {
	if !o.InventoryDeducted {
		return false
	}
	o.InventoryDeducted = false
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return true
}

// Complete marks the order as served and paid
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be completed from status "+o.Status.String())
	}
	now := time.Now()
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderCompletedEvent(o))
	return nil
}

// Cancel marks the order as cancelled. Stock reversal is the service
// layer's concern and happens in the same transaction.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be cancelled from status "+o.Status.String())
	}
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))
	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}
