package handler

import (
	"github.com/gin-gonic/gin"
	recipeapp "github.com/resto/backend/internal/application/recipe"
)

// RecipeHandler handles recipe API endpoints
type RecipeHandler struct {
	BaseHandler
	recipeService *recipeapp.Service
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeService *recipeapp.Service) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// CreateRecipe creates a recipe with its ingredients
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req recipeapp.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), tenantID, getActorID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, recipe)
}

// UpdateRecipe updates a recipe's name and yield
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	recipeID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	var req recipeapp.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), tenantID, recipeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, recipe)
}

// AddIngredient appends an ingredient line to a recipe
func (h *RecipeHandler) AddIngredient(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	recipeID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	var req recipeapp.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.AddIngredient(c.Request.Context(), tenantID, recipeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, recipe)
}

// RemoveIngredient removes an ingredient line from a recipe
func (h *RecipeHandler) RemoveIngredient(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	recipeID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}
	ingredientID, err := parsePathUUID(c, "ingredient_id")
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	recipe, err := h.recipeService.RemoveIngredient(c.Request.Context(), tenantID, recipeID, ingredientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, recipe)
}

// SetDefault promotes a recipe to the menu item's default
func (h *RecipeHandler) SetDefault(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	recipeID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	recipe, err := h.recipeService.SetDefault(c.Request.Context(), tenantID, recipeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, recipe)
}

// DeactivateRecipe disables a recipe
func (h *RecipeHandler) DeactivateRecipe(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	recipeID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	if err := h.recipeService.DeactivateRecipe(c.Request.Context(), tenantID, recipeID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// GetRecipe returns one recipe with its ingredients
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	recipeID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), tenantID, recipeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, recipe)
}

// ListRecipes returns recipes matching the filter
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter recipeapp.RecipeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	recipes, total, err := h.recipeService.ListRecipes(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, recipes, total, filter.Page, filter.PageSize)
}
