package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryType classifies a stock movement in the ledger
type EntryType string

const (
	// EntryTypePurchase is stock received from a supplier
	EntryTypePurchase EntryType = "PURCHASE"
	// EntryTypeSale is stock consumed by fulfilling an order
	EntryTypeSale EntryType = "SALE"
	// EntryTypeWaste is stock written off (spoilage, breakage, trim)
	EntryTypeWaste EntryType = "WASTE"
	// EntryTypeTransferIn is stock received from another branch
	EntryTypeTransferIn EntryType = "TRANSFER_IN"
	// EntryTypeTransferOut is stock sent to another branch
	EntryTypeTransferOut EntryType = "TRANSFER_OUT"
	// EntryTypeAdjustment is a physical-count correction, either direction
	EntryTypeAdjustment EntryType = "ADJUSTMENT"
	// EntryTypeReturn is stock restored by a cancelled or edited order
	EntryTypeReturn EntryType = "RETURN"
	// EntryTypePurchaseReturn is stock sent back to a supplier
	EntryTypePurchaseReturn EntryType = "PURCHASE_RETURN"
	// EntryTypeProduction is stock produced in-house (batch prep)
	EntryTypeProduction EntryType = "PRODUCTION"
)

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// IsValid returns true if the entry type is valid
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypePurchase,
		EntryTypeSale,
		EntryTypeWaste,
		EntryTypeTransferIn,
		EntryTypeTransferOut,
		EntryTypeAdjustment,
		EntryTypeReturn,
		EntryTypePurchaseReturn,
		EntryTypeProduction:
		return true
	}
	return false
}

// IsInbound returns true if the entry type only ever increases stock
func (t EntryType) IsInbound() bool {
	switch t {
	case EntryTypePurchase, EntryTypeTransferIn, EntryTypeReturn, EntryTypeProduction:
		return true
	}
	return false
}

// IsOutbound returns true if the entry type only ever decreases stock
func (t EntryType) IsOutbound() bool {
	switch t {
	case EntryTypeSale, EntryTypeWaste, EntryTypeTransferOut, EntryTypePurchaseReturn:
		return true
	}
	return false
}

// ReferenceKind tags which business document caused a movement
type ReferenceKind string

const (
	// ReferenceKindOrder links a movement to a customer order
	ReferenceKindOrder ReferenceKind = "ORDER"
	// ReferenceKindTransfer links the two legs of a branch transfer
	ReferenceKindTransfer ReferenceKind = "TRANSFER"
	// ReferenceKindStockCount links a movement to a physical count
	ReferenceKindStockCount ReferenceKind = "STOCK_COUNT"
	// ReferenceKindManual marks an operator-initiated movement
	ReferenceKindManual ReferenceKind = "MANUAL"
)

// IsValid returns true if the reference kind is valid
func (k ReferenceKind) IsValid() bool {
	switch k {
	case ReferenceKindOrder, ReferenceKindTransfer, ReferenceKindStockCount, ReferenceKindManual:
		return true
	}
	return false
}

// MovementRef is a typed link from a ledger entry back to the business
// document that caused it. The zero value means "no reference".
type MovementRef struct {
	Kind ReferenceKind `gorm:"type:varchar(30);index:idx_stock_entry_ref,priority:1"`
	ID   uuid.UUID     `gorm:"type:uuid;index:idx_stock_entry_ref,priority:2"`
}

// OrderRef builds a reference to an order
func OrderRef(orderID uuid.UUID) MovementRef {
	return MovementRef{Kind: ReferenceKindOrder, ID: orderID}
}

// TransferRef builds a reference shared by both legs of a transfer
func TransferRef(transferID uuid.UUID) MovementRef {
	return MovementRef{Kind: ReferenceKindTransfer, ID: transferID}
}

// StockCountRef builds a reference to a physical count
func StockCountRef(countID uuid.UUID) MovementRef {
	return MovementRef{Kind: ReferenceKindStockCount, ID: countID}
}

// ManualRef builds a reference for an operator-initiated movement
func ManualRef(id uuid.UUID) MovementRef {
	return MovementRef{Kind: ReferenceKindManual, ID: id}
}

// IsZero returns true when the entry carries no reference
func (r MovementRef) IsZero() bool {
	return r.Kind == "" && r.ID == uuid.Nil
}

// StockEntry is one immutable line of the inventory ledger. Entries are
// write-once; corrections are made by appending compensating entries.
// Quantity is signed: positive for inbound movements, negative for outbound.
type StockEntry struct {
	shared.BaseEntity
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_entry_tenant_time,priority:1"`
	BranchID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_entry_branch_item,priority:1"`
	CatalogItemID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_entry_branch_item,priority:2"`
	EntryType        EntryType       `gorm:"type:varchar(30);not null;index:idx_stock_entry_type"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"` // signed
	PreviousQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NewQuantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCost        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Reference        MovementRef     `gorm:"embedded;embeddedPrefix:reference_"`
	Reason           string          `gorm:"type:varchar(255)"`
	PerformedBy      *uuid.UUID      `gorm:"type:uuid"`
	EntryDate        time.Time       `gorm:"type:timestamptz;not null;index:idx_stock_entry_tenant_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "stock_entries"
}

// NewStockEntry creates a ledger entry for a movement that has already been
// applied to the inventory record. The previous/new quantities are the
// record's quantity immediately before and after the movement.
func NewStockEntry(
	tenantID, branchID, catalogItemID uuid.UUID,
	entryType EntryType,
	signedQuantity decimal.Decimal,
	previousQuantity decimal.Decimal,
	newQuantity decimal.Decimal,
) (*StockEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if catalogItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Catalog item ID cannot be empty")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Invalid stock entry type")
	}
	if signedQuantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Entry quantity cannot be zero")
	}
	if entryType.IsInbound() && signedQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Inbound entry quantity must be positive")
	}
	if entryType.IsOutbound() && signedQuantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Outbound entry quantity must be negative")
	}
	if !previousQuantity.Add(signedQuantity).Equal(newQuantity) {
		return nil, shared.NewDomainError("LEDGER_MISMATCH", "New quantity must equal previous quantity plus entry quantity")
	}

	return &StockEntry{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		BranchID:         branchID,
		CatalogItemID:    catalogItemID,
		EntryType:        entryType,
		Quantity:         signedQuantity,
		PreviousQuantity: previousQuantity,
		NewQuantity:      newQuantity,
		EntryDate:        time.Now(),
	}, nil
}

// WithCost records the per-unit cost of the moved stock
func (e *StockEntry) WithCost(unitCost decimal.Decimal) *StockEntry {
	e.UnitCost = unitCost
	e.TotalCost = unitCost.Mul(e.Quantity.Abs())
	return e
}

// WithReference links the entry to its causing business document
func (e *StockEntry) WithReference(ref MovementRef) *StockEntry {
	e.Reference = ref
	return e
}

// WithReason records a free-text reason for the movement
func (e *StockEntry) WithReason(reason string) *StockEntry {
	e.Reason = reason
	return e
}

// WithPerformedBy records the actor who triggered the movement
func (e *StockEntry) WithPerformedBy(userID uuid.UUID) *StockEntry {
	e.PerformedBy = &userID
	return e
}

// IsInbound returns true if this entry increased stock
func (e *StockEntry) IsInbound() bool {
	return e.Quantity.IsPositive()
}

// IsOutbound returns true if this entry decreased stock
func (e *StockEntry) IsOutbound() bool {
	return e.Quantity.IsNegative()
}
