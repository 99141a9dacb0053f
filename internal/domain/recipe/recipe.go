package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Recipe maps a sellable menu item to the catalog items it consumes.
// It is the aggregate root; ingredients are child entities persisted with it.
// At most one active default recipe may exist per menu item - enforced both
// here and by a partial unique index at the storage layer.
type Recipe struct {
	shared.TenantAggregateRoot
	MenuItemID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(200);not null"`
	YieldQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"` // servings produced by one execution
	IsDefault     bool            `gorm:"not null;default:false"`
	Active        bool            `gorm:"not null;default:true"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;references:ID"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is one line of a recipe's bill of materials
type RecipeIngredient struct {
	shared.BaseEntity
	RecipeID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CatalogItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // per yield unit
	Unit          string          `gorm:"type:varchar(20);not null"`
	WastagePct    decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"` // extra consumption from spillage/trim
	SequenceOrder int             `gorm:"not null;default:0"`
	Optional      bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// NewRecipe creates a new recipe for a menu item
func NewRecipe(tenantID, menuItemID uuid.UUID, name string, yieldQuantity decimal.Decimal) (*Recipe, error) {
	if menuItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MENU_ITEM", "Menu item ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Recipe name cannot be empty")
	}
	if !yieldQuantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_YIELD", "Yield quantity must be positive")
	}

	r := &Recipe{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		MenuItemID:          menuItemID,
		Name:                name,
		YieldQuantity:       yieldQuantity,
		Active:              true,
		Ingredients:         make([]RecipeIngredient, 0),
	}

	r.AddDomainEvent(NewRecipeCreatedEvent(r))

	return r, nil
}

// AddIngredient appends an ingredient line to the recipe
func (r *Recipe) AddIngredient(catalogItemID uuid.UUID, quantity decimal.Decimal, unit string, wastagePct decimal.Decimal) (*RecipeIngredient, error) {
	if catalogItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient catalog item ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ingredient quantity must be positive")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Ingredient unit cannot be empty")
	}
	if wastagePct.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WASTAGE", "Wastage percentage cannot be negative")
	}
	for _, ing := range r.Ingredients {
		if ing.CatalogItemID == catalogItemID {
			return nil, shared.NewDomainError("DUPLICATE_INGREDIENT", "Ingredient already present in recipe")
		}
	}

	ingredient := RecipeIngredient{
		BaseEntity:    shared.NewBaseEntity(),
		RecipeID:      r.ID,
		CatalogItemID: catalogItemID,
		Quantity:      quantity,
		Unit:          strings.ToLower(strings.TrimSpace(unit)),
		WastagePct:    wastagePct,
		SequenceOrder: len(r.Ingredients),
	}
	r.Ingredients = append(r.Ingredients, ingredient)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return &r.Ingredients[len(r.Ingredients)-1], nil
}

// RemoveIngredient removes an ingredient line
func (r *Recipe) RemoveIngredient(ingredientID uuid.UUID) error {
	for idx := range r.Ingredients {
		if r.Ingredients[idx].ID == ingredientID {
			r.Ingredients = append(r.Ingredients[:idx], r.Ingredients[idx+1:]...)
			r.UpdatedAt = time.Now()
			r.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("INGREDIENT_NOT_FOUND", "Recipe ingredient not found")
}

// UpdateYield changes the yield quantity
func (r *Recipe) UpdateYield(yieldQuantity decimal.Decimal) error {
	if !yieldQuantity.IsPositive() {
		return shared.NewDomainError("INVALID_YIELD", "Yield quantity must be positive")
	}
	r.YieldQuantity = yieldQuantity
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// MarkDefault marks this recipe as the menu item's default.
// The service layer demotes the previous default in the same transaction.
func (r *Recipe) MarkDefault() {
	if r.IsDefault {
		return
	}
	r.IsDefault = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewRecipeDefaultChangedEvent(r))
}

// UnmarkDefault demotes this recipe from default
func (r *Recipe) UnmarkDefault() {
	if !r.IsDefault {
		return
	}
	r.IsDefault = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Deactivate disables the recipe; an inactive recipe never resolves
func (r *Recipe) Deactivate() {
	if !r.Active {
		return
	}
	r.Active = false
	r.IsDefault = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// IsResolvable returns true if this recipe participates in consumption resolution
func (r *Recipe) IsResolvable() bool {
	return r.Active && r.IsDefault
}
