package inventory

import (
	"context"

	"github.com/resto/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories within
// a transaction. Both repositories share the same underlying transaction, so
// a movement's record update and its ledger entry always land together.
type TransactionalRepositories interface {
	// RecordRepo returns the inventory record repository scoped to the current transaction
	RecordRepo() inventory.InventoryRecordRepository
	// EntryRepo returns the stock entry repository scoped to the current transaction
	EntryRepo() inventory.StockEntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	recordRepo inventory.InventoryRecordRepository
	entryRepo  inventory.StockEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	recordRepo inventory.InventoryRecordRepository,
	entryRepo inventory.StockEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		recordRepo: recordRepo,
		entryRepo:  entryRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RecordRepo returns the inventory record repository.
func (s *NoOpTransactionScope) RecordRepo() inventory.InventoryRecordRepository {
	return s.recordRepo
}

// EntryRepo returns the stock entry repository.
func (s *NoOpTransactionScope) EntryRepo() inventory.StockEntryRepository {
	return s.entryRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
