package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStockEntryRepository implements inventory.StockEntryRepository using GORM.
// The ledger is append-only; this repository never issues UPDATE or DELETE.
type GormStockEntryRepository struct {
	db *gorm.DB
}

// NewGormStockEntryRepository creates a new GORM stock entry repository
func NewGormStockEntryRepository(db *gorm.DB) *GormStockEntryRepository {
	return &GormStockEntryRepository{db: db}
}

// Append writes one ledger entry
func (r *GormStockEntryRepository) Append(ctx context.Context, entry *inventory.StockEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append stock entry: %w", err)
	}
	return nil
}

// AppendAll writes a batch of ledger entries
func (r *GormStockEntryRepository) AppendAll(ctx context.Context, entries []*inventory.StockEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(entries).Error; err != nil {
		return fmt.Errorf("failed to append stock entries: %w", err)
	}
	return nil
}

// FindByFilter finds entries matching the filter, newest first
func (r *GormStockEntryRepository) FindByFilter(ctx context.Context, tenantID uuid.UUID, filter inventory.EntryFilter) ([]inventory.StockEntry, error) {
	var entries []inventory.StockEntry
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	query = r.applyEntryFilter(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, StockEntrySortFields, "entry_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to find stock entries: %w", err)
	}
	return entries, nil
}

// CountByFilter counts entries matching the filter
func (r *GormStockEntryRepository) CountByFilter(ctx context.Context, tenantID uuid.UUID, filter inventory.EntryFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&inventory.StockEntry{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyEntryFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count stock entries: %w", err)
	}
	return count, nil
}

// FindByReference finds the entries caused by a business document
func (r *GormStockEntryRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, ref inventory.MovementRef) ([]inventory.StockEntry, error) {
	var entries []inventory.StockEntry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reference_kind = ? AND reference_id = ?", tenantID, ref.Kind, ref.ID).
		Order("entry_date ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stock entries by reference: %w", err)
	}
	return entries, nil
}

// SumQuantity sums signed entry quantities for a branch-item pair
func (r *GormStockEntryRepository) SumQuantity(ctx context.Context, tenantID, branchID, catalogItemID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&inventory.StockEntry{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("tenant_id = ? AND branch_id = ? AND catalog_item_id = ?", tenantID, branchID, catalogItemID).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum stock entries: %w", err)
	}
	return sum, nil
}

// ConsumptionSummary sums sale entries per catalog item over a period.
// Quantities are reported positive even though sale entries are negative.
func (r *GormStockEntryRepository) ConsumptionSummary(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]inventory.ConsumptionRow, error) {
	var rows []inventory.ConsumptionRow
	query := r.db.WithContext(ctx).
		Model(&inventory.StockEntry{}).
		Select("catalog_item_id, COALESCE(SUM(-quantity), 0) AS total_quantity, COALESCE(SUM(total_cost), 0) AS total_cost, COUNT(*) AS entry_count").
		Where("tenant_id = ? AND entry_type = ? AND entry_date >= ? AND entry_date < ?",
			tenantID, inventory.EntryTypeSale, from, to)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	err := query.
		Group("catalog_item_id").
		Order("total_quantity DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize consumption: %w", err)
	}
	return rows, nil
}

func (r *GormStockEntryRepository) applyEntryFilter(query *gorm.DB, filter inventory.EntryFilter) *gorm.DB {
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.CatalogItemID != nil {
		query = query.Where("catalog_item_id = ?", *filter.CatalogItemID)
	}
	if filter.EntryType != nil {
		query = query.Where("entry_type = ?", *filter.EntryType)
	}
	if filter.From != nil {
		query = query.Where("entry_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("entry_date < ?", *filter.To)
	}
	return query
}

// Ensure GormStockEntryRepository implements inventory.StockEntryRepository
var _ inventory.StockEntryRepository = (*GormStockEntryRepository)(nil)
