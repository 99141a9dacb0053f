package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/ordering"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, items included
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindByIDForTenant finds an order by ID within a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its number within a tenant
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*ordering.Order, error) {
	var order ordering.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by number: %w", err)
	}
	return &order, nil
}

// FindByFilter finds orders matching the filter, newest first
func (r *GormOrderRepository) FindByFilter(ctx context.Context, tenantID uuid.UUID, filter ordering.OrderFilter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ?", tenantID)
	query = r.applyOrderFilter(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "placed_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	return orders, nil
}

// CountByFilter counts orders matching the filter
func (r *GormOrderRepository) CountByFilter(ctx context.Context, tenantID uuid.UUID, filter ordering.OrderFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyOrderFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// Save creates or updates an order with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// SaveWithLock updates an order with optimistic concurrency control.
// Items are written unconditionally; the version check guards the header.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *ordering.Order, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ordering.Order{}).
			Where("id = ? AND version = ?", order.ID, expectedVersion).
			Select("*").
			Omit("Items").
			Updates(order)
		if result.Error != nil {
			return fmt.Errorf("failed to save order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		for idx := range order.Items {
			if err := tx.Save(&order.Items[idx]).Error; err != nil {
				return fmt.Errorf("failed to save order item: %w", err)
			}
		}
		return nil
	})
}

func (r *GormOrderRepository) applyOrderFilter(query *gorm.DB, filter ordering.OrderFilter) *gorm.DB {
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("placed_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("placed_at < ?", *filter.To)
	}
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// Ensure GormOrderRepository implements ordering.OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
