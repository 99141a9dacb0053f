package persistence

import (
	"context"

	invapp "github.com/resto/backend/internal/application/inventory"
	orderapp "github.com/resto/backend/internal/application/ordering"
	recipeapp "github.com/resto/backend/internal/application/recipe"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/ordering"
	"github.com/resto/backend/internal/domain/recipe"
	"gorm.io/gorm"
)

// GormTransactionScope implements the ledger transaction scope using GORM
// transactions. Every repository handed to the callback is bound to the
// same *gorm.DB transaction, so a movement's record update and its ledger
// entry commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GORM transaction scope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos invapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// RecordRepo returns the inventory record repository scoped to the current transaction
func (r *gormTransactionalRepositories) RecordRepo() inventory.InventoryRecordRepository {
	return NewGormInventoryRecordRepository(r.tx)
}

// EntryRepo returns the stock entry repository scoped to the current transaction
func (r *gormTransactionalRepositories) EntryRepo() inventory.StockEntryRepository {
	return NewGormStockEntryRepository(r.tx)
}

// Ensure interface compliance
var _ invapp.TransactionScope = (*GormTransactionScope)(nil)
var _ invapp.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

// GormFulfillmentScope implements the fulfillment transaction scope using
// GORM transactions. It widens the ledger scope with the order repository so
// order placement, its items, and every ingredient deduction land atomically.
type GormFulfillmentScope struct {
	db *gorm.DB
}

// NewGormFulfillmentScope creates a new GORM fulfillment scope
func NewGormFulfillmentScope(db *gorm.DB) *GormFulfillmentScope {
	return &GormFulfillmentScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormFulfillmentScope) Execute(ctx context.Context, fn func(repos orderapp.FulfillmentRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormFulfillmentRepositories{gormTransactionalRepositories{tx: tx}})
	})
}

// gormFulfillmentRepositories provides fulfillment repositories bound to a transaction
type gormFulfillmentRepositories struct {
	gormTransactionalRepositories
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormFulfillmentRepositories) OrderRepo() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Ensure interface compliance
var _ orderapp.FulfillmentScope = (*GormFulfillmentScope)(nil)
var _ orderapp.FulfillmentRepositories = (*gormFulfillmentRepositories)(nil)

// GormRecipeScope implements the recipe transaction scope using GORM
// transactions. Promoting a default recipe demotes the previous one against
// the same transaction, so both saves land or neither does.
type GormRecipeScope struct {
	db *gorm.DB
}

// NewGormRecipeScope creates a new GORM recipe scope
func NewGormRecipeScope(db *gorm.DB) *GormRecipeScope {
	return &GormRecipeScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormRecipeScope) Execute(ctx context.Context, fn func(repo recipe.RecipeRepository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRecipeRepository(tx))
	})
}

// Ensure interface compliance
var _ recipeapp.TransactionScope = (*GormRecipeScope)(nil)
