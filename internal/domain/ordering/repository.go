package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// OrderFilter narrows order queries
type OrderFilter struct {
	shared.Filter
	BranchID *uuid.UUID
	Status   *OrderStatus
	From     *time.Time
	To       *time.Time
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForTenant finds an order by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its number within a tenant
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Order, error)

	// FindByFilter finds orders matching the filter, newest first
	FindByFilter(ctx context.Context, tenantID uuid.UUID, filter OrderFilter) ([]Order, error)

	// CountByFilter counts orders matching the filter
	CountByFilter(ctx context.Context, tenantID uuid.UUID, filter OrderFilter) (int64, error)

	// Save creates or updates an order with its items
	Save(ctx context.Context, order *Order) error

	// SaveWithLock updates an order with optimistic concurrency control.
	// Returns shared.ErrConcurrencyConflict when the version has moved.
	SaveWithLock(ctx context.Context, order *Order, expectedVersion int) error
}
