package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRecordRepository implements inventory.InventoryRecordRepository using GORM
type GormInventoryRecordRepository struct {
	db *gorm.DB
}

// NewGormInventoryRecordRepository creates a new GORM inventory record repository
func NewGormInventoryRecordRepository(db *gorm.DB) *GormInventoryRecordRepository {
	return &GormInventoryRecordRepository{db: db}
}

// FindByID finds a record by its ID
func (r *GormInventoryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory record: %w", err)
	}
	return &record, nil
}

// FindByBranchAndItem finds the record for a branch-item pair
func (r *GormInventoryRecordRepository) FindByBranchAndItem(ctx context.Context, tenantID, branchID, catalogItemID uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ? AND catalog_item_id = ?", tenantID, branchID, catalogItemID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory record: %w", err)
	}
	return &record, nil
}

// FindByBranchAndItems bulk-loads records for an availability pre-check
func (r *GormInventoryRecordRepository) FindByBranchAndItems(ctx context.Context, tenantID, branchID uuid.UUID, catalogItemIDs []uuid.UUID) ([]inventory.InventoryRecord, error) {
	if len(catalogItemIDs) == 0 {
		return []inventory.InventoryRecord{}, nil
	}
	var records []inventory.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ? AND catalog_item_id IN ?", tenantID, branchID, catalogItemIDs).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory records: %w", err)
	}
	return records, nil
}

// GetOrCreateForUpdate loads the record for a branch-item pair with a
// row-level lock, creating an empty record first if none exists.
// Must be called inside a transaction; the lock is held until commit.
func (r *GormInventoryRecordRepository) GetOrCreateForUpdate(ctx context.Context, tenantID, branchID, catalogItemID uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND branch_id = ? AND catalog_item_id = ?", tenantID, branchID, catalogItemID).
		First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to lock inventory record: %w", err)
	}

	// Lazy create. A concurrent transaction may have inserted the row
	// between the locked read and the insert; OnConflict DoNothing makes
	// the insert a no-op in that case and the locked re-read wins the row.
	fresh, err := inventory.NewInventoryRecord(tenantID, branchID, catalogItemID)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "tenant_id"},
				{Name: "branch_id"},
				{Name: "catalog_item_id"},
			},
			DoNothing: true,
		}).
		Create(fresh).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory record: %w", err)
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND branch_id = ? AND catalog_item_id = ?", tenantID, branchID, catalogItemID).
		First(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload inventory record: %w", err)
	}
	return &record, nil
}

// FindAllForBranch finds all records for a branch
func (r *GormInventoryRecordRepository) FindAllForBranch(ctx context.Context, tenantID, branchID uuid.UUID, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find inventory records: %w", err)
	}
	return records, nil
}

// FindBelowMinimum finds records under their alert threshold
func (r *GormInventoryRecordRepository) FindBelowMinimum(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND min_stock_level > 0 AND current_quantity < min_stock_level", tenantID)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	if err := query.Order("current_quantity ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find records below minimum: %w", err)
	}
	return records, nil
}

// Save creates or updates a record
func (r *GormInventoryRecordRepository) Save(ctx context.Context, record *inventory.InventoryRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to save inventory record: %w", err)
	}
	return nil
}

// SaveWithLock updates a record with optimistic concurrency control
func (r *GormInventoryRecordRepository) SaveWithLock(ctx context.Context, record *inventory.InventoryRecord, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(record).
		Where("id = ? AND version = ?", record.ID, expectedVersion).
		Select("*").
		Updates(record)
	if result.Error != nil {
		return fmt.Errorf("failed to save inventory record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CountForBranch counts records for a branch
func (r *GormInventoryRecordRepository) CountForBranch(ctx context.Context, tenantID, branchID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&inventory.InventoryRecord{}).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID)
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count inventory records: %w", err)
	}
	return count, nil
}

func (r *GormInventoryRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, InventoryRecordSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

func (r *GormInventoryRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if catalogItemID, ok := filter.Filters["catalog_item_id"]; ok {
		query = query.Where("catalog_item_id = ?", catalogItemID)
	}
	return query
}

// Ensure GormInventoryRecordRepository implements inventory.InventoryRecordRepository
var _ inventory.InventoryRecordRepository = (*GormInventoryRecordRepository)(nil)
