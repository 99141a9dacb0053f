package recipe

import (
	"context"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	// FindByID finds a recipe by its ID, ingredients included
	FindByID(ctx context.Context, id uuid.UUID) (*Recipe, error)

	// FindByIDForTenant finds a recipe by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Recipe, error)

	// FindDefaultForMenuItem finds the active default recipe for a menu item.
	// Returns shared.ErrNotFound when the menu item has no tracked consumption.
	FindDefaultForMenuItem(ctx context.Context, tenantID, menuItemID uuid.UUID) (*Recipe, error)

	// FindByMenuItem finds all recipes for a menu item
	FindByMenuItem(ctx context.Context, tenantID, menuItemID uuid.UUID) ([]Recipe, error)

	// FindAllForTenant finds all recipes for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Recipe, error)

	// Save creates or updates a recipe with its ingredients
	Save(ctx context.Context, r *Recipe) error

	// Delete deletes a recipe and its ingredients
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts recipes matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
