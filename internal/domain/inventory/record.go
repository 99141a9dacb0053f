package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryRecord holds the current stock level for one catalog item at one
// branch. It is the aggregate root for stock movements; the composite
// identifier is BranchID + CatalogItemID. Records are created lazily on the
// first movement for a pair and never physically deleted.
//
// The record is a materialized running sum of the StockEntry ledger: after
// every movement CurrentQuantity equals the sum of all signed entry
// quantities for this (branch, item).
type InventoryRecord struct {
	shared.TenantAggregateRoot
	BranchID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_record_branch_item,priority:2"`
	CatalogItemID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_record_branch_item,priority:3"`
	CurrentQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStockLevel     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AverageCost       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // moving weighted average
	LastPurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastRestockedAt   *time.Time      `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewInventoryRecord creates an empty record for a branch-item pair
func NewInventoryRecord(tenantID, branchID, catalogItemID uuid.UUID) (*InventoryRecord, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if catalogItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Catalog item ID cannot be empty")
	}

	return &InventoryRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BranchID:            branchID,
		CatalogItemID:       catalogItemID,
		CurrentQuantity:     decimal.Zero,
		MinStockLevel:       decimal.Zero,
		AverageCost:         decimal.Zero,
		LastPurchasePrice:   decimal.Zero,
	}, nil
}

// ApplyInbound increases stock and recalculates the moving weighted average
// cost when a unit cost is supplied:
//
//	new_avg = (old_avg*old_qty + unit_cost*qty) / (old_qty + qty)
//
// Returns the quantity before and after the movement for the ledger entry.
func (r *InventoryRecord) ApplyInbound(quantity decimal.Decimal, unitCost *decimal.Decimal) (previous, current decimal.Decimal, err error) {
	if !quantity.IsPositive() {
		return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Inbound quantity must be positive")
	}

	previous = r.CurrentQuantity
	current = previous.Add(quantity)

	if unitCost != nil {
		if unitCost.IsNegative() {
			return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
		}
		oldCost := r.AverageCost
		if previous.IsPositive() {
			totalValue := previous.Mul(r.AverageCost).Add(quantity.Mul(*unitCost))
			r.AverageCost = totalValue.Div(current).Round(4)
		} else {
			r.AverageCost = *unitCost
		}
		r.LastPurchasePrice = *unitCost
		if !oldCost.Equal(r.AverageCost) {
			r.AddDomainEvent(NewInventoryCostChangedEvent(r, oldCost, r.AverageCost))
		}
	}

	now := time.Now()
	r.CurrentQuantity = current
	r.LastRestockedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return previous, current, nil
}

// ApplyOutbound decreases stock. Fails when the movement would drive the
// quantity negative; the record is left unchanged in that case.
func (r *InventoryRecord) ApplyOutbound(quantity decimal.Decimal) (previous, current decimal.Decimal, err error) {
	if !quantity.IsPositive() {
		return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Outbound quantity must be positive")
	}
	if r.CurrentQuantity.LessThan(quantity) {
		return decimal.Zero, decimal.Zero, shared.ErrInsufficientStock
	}

	previous = r.CurrentQuantity
	current = previous.Sub(quantity)

	r.CurrentQuantity = current
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	if r.IsBelowMinimum() {
		r.AddDomainEvent(NewStockBelowMinimumEvent(r))
	}

	return previous, current, nil
}

// ApplyOutboundClamped decreases stock by at most the on-hand quantity.
// Used for waste write-offs, which cap at zero instead of failing.
// The applied quantity may be less than requested, or zero.
func (r *InventoryRecord) ApplyOutboundClamped(quantity decimal.Decimal) (previous, current, applied decimal.Decimal, err error) {
	if !quantity.IsPositive() {
		return decimal.Zero, decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Outbound quantity must be positive")
	}

	applied = quantity
	if r.CurrentQuantity.LessThan(quantity) {
		applied = r.CurrentQuantity
	}
	if applied.IsZero() {
		return r.CurrentQuantity, r.CurrentQuantity, decimal.Zero, nil
	}

	previous, current, err = r.ApplyOutbound(applied)
	return previous, current, applied, err
}

// SetMinStockLevel sets the low-stock alert threshold
func (r *InventoryRecord) SetMinStockLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum stock level cannot be negative")
	}
	r.MinStockLevel = level
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// IsBelowMinimum returns true if the quantity is under the alert threshold
func (r *InventoryRecord) IsBelowMinimum() bool {
	return r.MinStockLevel.IsPositive() && r.CurrentQuantity.LessThan(r.MinStockLevel)
}

// CanFulfill returns true if on-hand stock covers the requested quantity
func (r *InventoryRecord) CanFulfill(quantity decimal.Decimal) bool {
	return r.CurrentQuantity.GreaterThanOrEqual(quantity)
}

// StockValue returns the value of on-hand stock at average cost
func (r *InventoryRecord) StockValue() decimal.Decimal {
	return r.CurrentQuantity.Mul(r.AverageCost)
}
