package inventory

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInventoryRecord = "InventoryRecord"

// Event type constants
const (
	EventTypeStockMovementApplied = "StockMovementApplied"
	EventTypeStockBelowMinimum    = "StockBelowMinimum"
	EventTypeInventoryCostChanged = "InventoryCostChanged"
)

// StockMovementAppliedEvent is published after a ledger entry is written
type StockMovementAppliedEvent struct {
	shared.BaseDomainEvent
	RecordID      uuid.UUID       `json:"record_id"`
	BranchID      uuid.UUID       `json:"branch_id"`
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	EntryType     EntryType       `json:"entry_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	NewQuantity   decimal.Decimal `json:"new_quantity"`
	ReferenceKind ReferenceKind   `json:"reference_kind,omitempty"`
	ReferenceID   uuid.UUID       `json:"reference_id,omitempty"`
}

// NewStockMovementAppliedEvent creates a new StockMovementAppliedEvent
func NewStockMovementAppliedEvent(r *InventoryRecord, entry *StockEntry) *StockMovementAppliedEvent {
	return &StockMovementAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementApplied, AggregateTypeInventoryRecord, r.ID, r.TenantID),
		RecordID:        r.ID,
		BranchID:        r.BranchID,
		CatalogItemID:   r.CatalogItemID,
		EntryType:       entry.EntryType,
		Quantity:        entry.Quantity,
		NewQuantity:     entry.NewQuantity,
		ReferenceKind:   entry.Reference.Kind,
		ReferenceID:     entry.Reference.ID,
	}
}

// StockBelowMinimumEvent is published when a movement drops stock under the alert threshold
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	RecordID        uuid.UUID       `json:"record_id"`
	BranchID        uuid.UUID       `json:"branch_id"`
	CatalogItemID   uuid.UUID       `json:"catalog_item_id"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	MinStockLevel   decimal.Decimal `json:"min_stock_level"`
}

// NewStockBelowMinimumEvent creates a new StockBelowMinimumEvent
func NewStockBelowMinimumEvent(r *InventoryRecord) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, AggregateTypeInventoryRecord, r.ID, r.TenantID),
		RecordID:        r.ID,
		BranchID:        r.BranchID,
		CatalogItemID:   r.CatalogItemID,
		CurrentQuantity: r.CurrentQuantity,
		MinStockLevel:   r.MinStockLevel,
	}
}

// InventoryCostChangedEvent is published when the weighted average cost moves
type InventoryCostChangedEvent struct {
	shared.BaseDomainEvent
	RecordID      uuid.UUID       `json:"record_id"`
	BranchID      uuid.UUID       `json:"branch_id"`
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	OldCost       decimal.Decimal `json:"old_cost"`
	NewCost       decimal.Decimal `json:"new_cost"`
}

// NewInventoryCostChangedEvent creates a new InventoryCostChangedEvent
func NewInventoryCostChangedEvent(r *InventoryRecord, oldCost, newCost decimal.Decimal) *InventoryCostChangedEvent {
	return &InventoryCostChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryCostChanged, AggregateTypeInventoryRecord, r.ID, r.TenantID),
		RecordID:        r.ID,
		BranchID:        r.BranchID,
		CatalogItemID:   r.CatalogItemID,
		OldCost:         oldCost,
		NewCost:         newCost,
	}
}
