package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryFilter narrows ledger queries
type EntryFilter struct {
	shared.Filter
	BranchID      *uuid.UUID
	CatalogItemID *uuid.UUID
	EntryType     *EntryType
	From          *time.Time
	To            *time.Time
}

// ConsumptionRow is one line of a consumption summary: total outbound
// sale quantity for a catalog item over the queried period.
type ConsumptionRow struct {
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	EntryCount    int64           `json:"entry_count"`
}

// InventoryRecordRepository defines the interface for inventory record persistence
type InventoryRecordRepository interface {
	// FindByID finds a record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryRecord, error)

	// FindByBranchAndItem finds the record for a branch-item pair.
	// Returns shared.ErrNotFound when no stock has ever moved for the pair.
	FindByBranchAndItem(ctx context.Context, tenantID, branchID, catalogItemID uuid.UUID) (*InventoryRecord, error)

	// FindByBranchAndItems bulk-loads records for an availability pre-check.
	// Pairs with no record are simply absent from the result.
	FindByBranchAndItems(ctx context.Context, tenantID, branchID uuid.UUID, catalogItemIDs []uuid.UUID) ([]InventoryRecord, error)

	// GetOrCreateForUpdate loads the record for a branch-item pair with a
	// row-level lock, creating an empty record first if none exists.
	// Must be called inside a transaction; the lock is held until commit.
	GetOrCreateForUpdate(ctx context.Context, tenantID, branchID, catalogItemID uuid.UUID) (*InventoryRecord, error)

	// FindAllForBranch finds all records for a branch
	FindAllForBranch(ctx context.Context, tenantID, branchID uuid.UUID, filter shared.Filter) ([]InventoryRecord, error)

	// FindBelowMinimum finds records under their alert threshold
	FindBelowMinimum(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]InventoryRecord, error)

	// Save creates or updates a record
	Save(ctx context.Context, record *InventoryRecord) error

	// SaveWithLock updates a record with optimistic concurrency control.
	// Returns shared.ErrConcurrencyConflict when the version has moved.
	SaveWithLock(ctx context.Context, record *InventoryRecord, expectedVersion int) error

	// CountForBranch counts records for a branch
	CountForBranch(ctx context.Context, tenantID, branchID uuid.UUID, filter shared.Filter) (int64, error)
}

// StockEntryRepository defines the interface for the append-only ledger.
// Entries are never updated or deleted.
type StockEntryRepository interface {
	// Append writes one ledger entry
	Append(ctx context.Context, entry *StockEntry) error

	// AppendAll writes a batch of ledger entries
	AppendAll(ctx context.Context, entries []*StockEntry) error

	// FindByFilter finds entries matching the filter, newest first
	FindByFilter(ctx context.Context, tenantID uuid.UUID, filter EntryFilter) ([]StockEntry, error)

	// CountByFilter counts entries matching the filter
	CountByFilter(ctx context.Context, tenantID uuid.UUID, filter EntryFilter) (int64, error)

	// FindByReference finds the entries caused by a business document
	FindByReference(ctx context.Context, tenantID uuid.UUID, ref MovementRef) ([]StockEntry, error)

	// SumQuantity sums signed entry quantities for a branch-item pair.
	// Used to audit the record against its ledger.
	SumQuantity(ctx context.Context, tenantID, branchID, catalogItemID uuid.UUID) (decimal.Decimal, error)

	// ConsumptionSummary sums sale entries per catalog item over a period
	ConsumptionSummary(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]ConsumptionRow, error)
}
