package recipe

import (
	"context"

	"github.com/resto/backend/internal/domain/recipe"
)

// TransactionScope provides transactional access to the recipe repository.
// Promoting a default recipe demotes the previous one in the same unit of
// work, so the two saves commit or roll back together and a menu item is
// never left without its default.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repo recipe.RecipeRepository) error) error
}

// NoOpTransactionScope runs functions without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	repo recipe.RecipeRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repository.
func NewNoOpTransactionScope(repo recipe.RecipeRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{repo: repo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repo recipe.RecipeRepository) error) error {
	return fn(s.repo)
}

// Ensure NoOpTransactionScope implements the scope interface
var _ TransactionScope = (*NoOpTransactionScope)(nil)
