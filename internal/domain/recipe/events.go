package recipe

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRecipe = "Recipe"

// Event type constants
const (
	EventTypeRecipeCreated        = "RecipeCreated"
	EventTypeRecipeDefaultChanged = "RecipeDefaultChanged"
)

// RecipeCreatedEvent is published when a new recipe is created
type RecipeCreatedEvent struct {
	shared.BaseDomainEvent
	RecipeID   uuid.UUID `json:"recipe_id"`
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
}

// NewRecipeCreatedEvent creates a new RecipeCreatedEvent
func NewRecipeCreatedEvent(r *Recipe) *RecipeCreatedEvent {
	return &RecipeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeCreated, AggregateTypeRecipe, r.ID, r.TenantID),
		RecipeID:        r.ID,
		MenuItemID:      r.MenuItemID,
		Name:            r.Name,
	}
}

// RecipeDefaultChangedEvent is published when a recipe becomes the default for its menu item
type RecipeDefaultChangedEvent struct {
	shared.BaseDomainEvent
	RecipeID   uuid.UUID `json:"recipe_id"`
	MenuItemID uuid.UUID `json:"menu_item_id"`
}

// NewRecipeDefaultChangedEvent creates a new RecipeDefaultChangedEvent
func NewRecipeDefaultChangedEvent(r *Recipe) *RecipeDefaultChangedEvent {
	return &RecipeDefaultChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeDefaultChanged, AggregateTypeRecipe, r.ID, r.TenantID),
		RecipeID:        r.ID,
		MenuItemID:      r.MenuItemID,
	}
}
