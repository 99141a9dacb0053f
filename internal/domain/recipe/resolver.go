package recipe

import (
	"context"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	oneHundred = decimal.NewFromInt(100)
	one        = decimal.NewFromInt(1)
)

// IngredientRequirement is one resolved ingredient demand, expressed in the
// catalog item's stock unit. The list produced by a resolution is flat and
// not deduplicated; callers aggregate per item when they need totals.
type IngredientRequirement struct {
	CatalogItemID uuid.UUID
	CatalogItem   *catalog.CatalogItem
	Quantity      decimal.Decimal
	Unit          string
	Optional      bool
	RecipeID      uuid.UUID
	MenuItemID    uuid.UUID
}

// ConsumptionResolver translates ordered menu-item quantities into the
// ingredient quantities they consume. Resolution follows the default active
// recipe of each menu item; a menu item without one consumes nothing.
type ConsumptionResolver struct {
	recipes   RecipeRepository
	items     catalog.CatalogItemRepository
	converter catalog.UnitConverter
}

// NewConsumptionResolver creates a new ConsumptionResolver
func NewConsumptionResolver(recipes RecipeRepository, items catalog.CatalogItemRepository, converter catalog.UnitConverter) *ConsumptionResolver {
	return &ConsumptionResolver{
		recipes:   recipes,
		items:     items,
		converter: converter,
	}
}

// OrderLine is one (menu item, quantity) pair to resolve
type OrderLine struct {
	MenuItemID uuid.UUID
	Quantity   decimal.Decimal
}

// Resolve expands a set of order lines into ingredient requirements.
// For each line: required = ingredient.Quantity * line.Quantity / recipe.YieldQuantity,
// then scaled by (1 + WastagePct/100), then converted to the ingredient's
// stock unit when the recipe states a different unit.
func (cr *ConsumptionResolver) Resolve(ctx context.Context, tenantID uuid.UUID, lines []OrderLine) ([]IngredientRequirement, error) {
	requirements := make([]IngredientRequirement, 0)

	for _, line := range lines {
		lineReqs, err := cr.ResolveLine(ctx, tenantID, line.MenuItemID, line.Quantity)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, lineReqs...)
	}

	return requirements, nil
}

// ResolveLine expands a single order line into ingredient requirements.
// A menu item without an active default recipe yields an empty list:
// untracked items pass through fulfillment without touching inventory.
func (cr *ConsumptionResolver) ResolveLine(ctx context.Context, tenantID, menuItemID uuid.UUID, orderQuantity decimal.Decimal) ([]IngredientRequirement, error) {
	if !orderQuantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Order quantity must be positive")
	}

	r, err := cr.recipes.FindDefaultForMenuItem(ctx, tenantID, menuItemID)
	if err != nil {
		if err == shared.ErrNotFound {
			return []IngredientRequirement{}, nil
		}
		return nil, err
	}
	if !r.IsResolvable() {
		return []IngredientRequirement{}, nil
	}

	itemIDs := make([]uuid.UUID, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		itemIDs = append(itemIDs, ing.CatalogItemID)
	}
	items, err := cr.items.FindByIDs(ctx, tenantID, itemIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[uuid.UUID]*catalog.CatalogItem, len(items))
	for idx := range items {
		itemsByID[items[idx].ID] = &items[idx]
	}

	requirements := make([]IngredientRequirement, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		item, ok := itemsByID[ing.CatalogItemID]
		if !ok {
			return nil, shared.NewDomainError("INGREDIENT_NOT_FOUND", "Recipe references a catalog item that does not exist")
		}

		required := ing.Quantity.Mul(orderQuantity).Div(r.YieldQuantity)
		if ing.WastagePct.IsPositive() {
			required = required.Mul(one.Add(ing.WastagePct.Div(oneHundred)))
		}

		quantity, err := cr.toStockUnit(ctx, tenantID, required, ing.Unit, item.Unit)
		if err != nil {
			return nil, err
		}

		requirements = append(requirements, IngredientRequirement{
			CatalogItemID: ing.CatalogItemID,
			CatalogItem:   item,
			Quantity:      quantity,
			Unit:          item.Unit,
			Optional:      ing.Optional,
			RecipeID:      r.ID,
			MenuItemID:    menuItemID,
		})
	}

	return requirements, nil
}

func (cr *ConsumptionResolver) toStockUnit(ctx context.Context, tenantID uuid.UUID, quantity decimal.Decimal, fromUnit, toUnit string) (decimal.Decimal, error) {
	factor, err := cr.converter.Factor(ctx, tenantID, fromUnit, toUnit)
	if err != nil {
		return decimal.Zero, err
	}
	return quantity.Mul(factor), nil
}
