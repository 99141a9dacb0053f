package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCatalogItemRepository implements catalog.CatalogItemRepository using GORM
type GormCatalogItemRepository struct {
	db *gorm.DB
}

// NewGormCatalogItemRepository creates a new GORM catalog item repository
func NewGormCatalogItemRepository(db *gorm.DB) *GormCatalogItemRepository {
	return &GormCatalogItemRepository{db: db}
}

// FindByID finds a catalog item by its ID
func (r *GormCatalogItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CatalogItem, error) {
	var item catalog.CatalogItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find catalog item: %w", err)
	}
	return &item, nil
}

// FindByIDForTenant finds a catalog item by ID within a tenant
func (r *GormCatalogItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.CatalogItem, error) {
	var item catalog.CatalogItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find catalog item: %w", err)
	}
	return &item, nil
}

// FindByIDs finds multiple catalog items by their IDs
func (r *GormCatalogItemRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.CatalogItem, error) {
	if len(ids) == 0 {
		return []catalog.CatalogItem{}, nil
	}
	var items []catalog.CatalogItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find catalog items: %w", err)
	}
	return items, nil
}

// FindByCode finds a catalog item by its code within a tenant
func (r *GormCatalogItemRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.CatalogItem, error) {
	var item catalog.CatalogItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find catalog item by code: %w", err)
	}
	return &item, nil
}

// FindAllForTenant finds all catalog items for a tenant
func (r *GormCatalogItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.CatalogItem, error) {
	var items []catalog.CatalogItem
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find catalog items: %w", err)
	}
	return items, nil
}

// FindByKind finds catalog items of a specific kind
func (r *GormCatalogItemRepository) FindByKind(ctx context.Context, tenantID uuid.UUID, kind catalog.ItemKind, filter shared.Filter) ([]catalog.CatalogItem, error) {
	var items []catalog.CatalogItem
	query := r.db.WithContext(ctx).Where("tenant_id = ? AND kind = ?", tenantID, kind)
	query = r.applyFilter(query, filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find catalog items by kind: %w", err)
	}
	return items, nil
}

// Save creates or updates a catalog item
func (r *GormCatalogItemRepository) Save(ctx context.Context, item *catalog.CatalogItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to save catalog item: %w", err)
	}
	return nil
}

// CountForTenant counts catalog items matching the filter
func (r *GormCatalogItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.CatalogItem{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count catalog items: %w", err)
	}
	return count, nil
}

// ExistsByCode checks whether a code is already taken within a tenant
func (r *GormCatalogItemRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalog.CatalogItem{}).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check catalog item code: %w", err)
	}
	return count > 0, nil
}

func (r *GormCatalogItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, CatalogItemSortFields, "created_at")
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

func (r *GormCatalogItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", search, search)
	}
	if kind, ok := filter.Filters["kind"]; ok {
		query = query.Where("kind = ?", kind)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("category_id = ?", categoryID)
	}
	return query
}

// Ensure GormCatalogItemRepository implements catalog.CatalogItemRepository
var _ catalog.CatalogItemRepository = (*GormCatalogItemRepository)(nil)
