package ordering

import (
	"context"

	invapp "github.com/resto/backend/internal/application/inventory"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/ordering"
)

// FulfillmentScope provides transactional access across the order and ledger
// repositories. Order placement spans order creation, order items, and every
// ingredient deduction; all of it commits or rolls back as one unit.
type FulfillmentScope interface {
	// Execute runs the given function within a database transaction.
	Execute(ctx context.Context, fn func(repos FulfillmentRepositories) error) error
}

// FulfillmentRepositories exposes the repositories participating in a
// fulfillment transaction. It extends the ledger scope so stock movements
// route through the same movement primitive the inventory service uses.
type FulfillmentRepositories interface {
	invapp.TransactionalRepositories
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() ordering.OrderRepository
}

// NoOpFulfillmentScope runs fulfillment functions without a real transaction.
// Useful for tests.
type NoOpFulfillmentScope struct {
	orderRepo  ordering.OrderRepository
	recordRepo inventory.InventoryRecordRepository
	entryRepo  inventory.StockEntryRepository
}

// NewNoOpFulfillmentScope creates a NoOpFulfillmentScope with the given repositories.
func NewNoOpFulfillmentScope(
	orderRepo ordering.OrderRepository,
	recordRepo inventory.InventoryRecordRepository,
	entryRepo inventory.StockEntryRepository,
) *NoOpFulfillmentScope {
	return &NoOpFulfillmentScope{
		orderRepo:  orderRepo,
		recordRepo: recordRepo,
		entryRepo:  entryRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpFulfillmentScope) Execute(_ context.Context, fn func(repos FulfillmentRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpFulfillmentScope) OrderRepo() ordering.OrderRepository {
	return s.orderRepo
}

// RecordRepo returns the inventory record repository.
func (s *NoOpFulfillmentScope) RecordRepo() inventory.InventoryRecordRepository {
	return s.recordRepo
}

// EntryRepo returns the stock entry repository.
func (s *NoOpFulfillmentScope) EntryRepo() inventory.StockEntryRepository {
	return s.entryRepo
}

// Ensure NoOpFulfillmentScope implements both interfaces
var _ FulfillmentScope = (*NoOpFulfillmentScope)(nil)
var _ FulfillmentRepositories = (*NoOpFulfillmentScope)(nil)
