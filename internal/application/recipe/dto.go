package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/recipe"
	"github.com/shopspring/decimal"
)

// IngredientRequest is one ingredient line of a recipe
type IngredientRequest struct {
	CatalogItemID uuid.UUID       `json:"catalog_item_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Unit          string          `json:"unit" binding:"required,min=1,max=20"`
	WastagePct    decimal.Decimal `json:"wastage_pct"`
	Optional      bool            `json:"optional"`
}

// CreateRecipeRequest represents a request to create a recipe
type CreateRecipeRequest struct {
	MenuItemID    uuid.UUID           `json:"menu_item_id" binding:"required"`
	Name          string              `json:"name" binding:"required,min=1,max=200"`
	YieldQuantity decimal.Decimal     `json:"yield_quantity" binding:"required"`
	MakeDefault   bool                `json:"make_default"`
	Ingredients   []IngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
}

// UpdateRecipeRequest represents a request to update a recipe's header
type UpdateRecipeRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	YieldQuantity decimal.Decimal `json:"yield_quantity" binding:"required"`
}

// IngredientResponse represents one recipe ingredient in API responses
type IngredientResponse struct {
	ID            uuid.UUID       `json:"id"`
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	WastagePct    decimal.Decimal `json:"wastage_pct"`
	SequenceOrder int             `json:"sequence_order"`
	Optional      bool            `json:"optional"`
}

// RecipeResponse represents a recipe in API responses
type RecipeResponse struct {
	ID            uuid.UUID            `json:"id"`
	MenuItemID    uuid.UUID            `json:"menu_item_id"`
	Name          string               `json:"name"`
	YieldQuantity decimal.Decimal      `json:"yield_quantity"`
	IsDefault     bool                 `json:"is_default"`
	Active        bool                 `json:"active"`
	Ingredients   []IngredientResponse `json:"ingredients"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Version       int                  `json:"version"`
}

// ToRecipeResponse converts a recipe to a response
func ToRecipeResponse(r *recipe.Recipe) RecipeResponse {
	ingredients := make([]IngredientResponse, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, IngredientResponse{
			ID:            ing.ID,
			CatalogItemID: ing.CatalogItemID,
			Quantity:      ing.Quantity,
			Unit:          ing.Unit,
			WastagePct:    ing.WastagePct,
			SequenceOrder: ing.SequenceOrder,
			Optional:      ing.Optional,
		})
	}

	return RecipeResponse{
		ID:            r.ID,
		MenuItemID:    r.MenuItemID,
		Name:          r.Name,
		YieldQuantity: r.YieldQuantity,
		IsDefault:     r.IsDefault,
		Active:        r.Active,
		Ingredients:   ingredients,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Version:       r.Version,
	}
}

// ToRecipeResponses converts a slice of recipes
func ToRecipeResponses(recipes []recipe.Recipe) []RecipeResponse {
	responses := make([]RecipeResponse, 0, len(recipes))
	for idx := range recipes {
		responses = append(responses, ToRecipeResponse(&recipes[idx]))
	}
	return responses
}

// RecipeListFilter represents filter options for recipe listing
type RecipeListFilter struct {
	MenuItemID *uuid.UUID `form:"menu_item_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}
