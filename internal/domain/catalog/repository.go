package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// CatalogItemRepository defines the interface for catalog item persistence
type CatalogItemRepository interface {
	// FindByID finds a catalog item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CatalogItem, error)

	// FindByIDForTenant finds a catalog item by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CatalogItem, error)

	// FindByIDs finds multiple catalog items by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]CatalogItem, error)

	// FindByCode finds a catalog item by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*CatalogItem, error)

	// FindAllForTenant finds all catalog items for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CatalogItem, error)

	// FindByKind finds catalog items of a specific kind
	FindByKind(ctx context.Context, tenantID uuid.UUID, kind ItemKind, filter shared.Filter) ([]CatalogItem, error)

	// Save creates or updates a catalog item
	Save(ctx context.Context, item *CatalogItem) error

	// CountForTenant counts catalog items matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks whether a code is already taken within a tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

// UnitConversionRepository defines the interface for unit conversion persistence
type UnitConversionRepository interface {
	// FindByID finds a conversion by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*UnitConversion, error)

	// FindByPair finds the direct conversion row for a unit pair
	FindByPair(ctx context.Context, tenantID uuid.UUID, fromUnit, toUnit string) (*UnitConversion, error)

	// FindAllForTenant finds all conversions for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]UnitConversion, error)

	// Save creates or updates a conversion
	Save(ctx context.Context, conversion *UnitConversion) error

	// Delete deletes a conversion
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
