package recipe

import (
	"context"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/recipe"
	"github.com/resto/backend/internal/domain/shared"
)

// Service handles recipe configuration
type Service struct {
	txScope        TransactionScope
	recipeRepo     recipe.RecipeRepository
	itemRepo       catalog.CatalogItemRepository
	eventPublisher shared.EventPublisher
}

// NewService creates a new recipe Service
func NewService(txScope TransactionScope, recipeRepo recipe.RecipeRepository, itemRepo catalog.CatalogItemRepository) *Service {
	return &Service{
		txScope:    txScope,
		recipeRepo: recipeRepo,
		itemRepo:   itemRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *Service) publishDomainEvents(ctx context.Context, r *recipe.Recipe) {
	if s.eventPublisher == nil {
		return
	}
	events := r.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	r.ClearDomainEvents()
}

// validateIngredients checks that every ingredient references a trackable catalog item
func (s *Service) validateIngredients(ctx context.Context, tenantID uuid.UUID, ingredients []IngredientRequest) error {
	ids := make([]uuid.UUID, 0, len(ingredients))
	for _, ing := range ingredients {
		ids = append(ids, ing.CatalogItemID)
	}

	items, err := s.itemRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*catalog.CatalogItem, len(items))
	for idx := range items {
		byID[items[idx].ID] = &items[idx]
	}

	for _, ing := range ingredients {
		item, ok := byID[ing.CatalogItemID]
		if !ok {
			return shared.NewDomainError("INGREDIENT_NOT_FOUND", "Ingredient catalog item does not exist")
		}
		if !item.IsTrackable() {
			return shared.ErrNotTrackable
		}
	}
	return nil
}

// CreateRecipe creates a recipe with its ingredients. When MakeDefault is
// set, the previous default for the menu item is demoted in the same
// transaction; the storage layer's partial unique index rejects a racing
// second default.
func (s *Service) CreateRecipe(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req CreateRecipeRequest) (*RecipeResponse, error) {
	menuItem, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, req.MenuItemID)
	if err != nil {
		return nil, err
	}
	if menuItem.Kind != catalog.ItemKindMenuItem {
		return nil, shared.NewDomainError("INVALID_MENU_ITEM", "Recipes can only be attached to menu items")
	}

	if err := s.validateIngredients(ctx, tenantID, req.Ingredients); err != nil {
		return nil, err
	}

	r, err := recipe.NewRecipe(tenantID, req.MenuItemID, req.Name, req.YieldQuantity)
	if err != nil {
		return nil, err
	}
	if actorID != nil {
		r.SetCreatedBy(*actorID)
	}

	for _, ing := range req.Ingredients {
		added, err := r.AddIngredient(ing.CatalogItemID, ing.Quantity, ing.Unit, ing.WastagePct)
		if err != nil {
			return nil, err
		}
		added.Optional = ing.Optional
	}

	err = s.txScope.Execute(ctx, func(repo recipe.RecipeRepository) error {
		if req.MakeDefault {
			if err := s.demoteCurrentDefault(ctx, repo, tenantID, req.MenuItemID); err != nil {
				return err
			}
			r.MarkDefault()
		}
		return repo.Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, r)
	response := ToRecipeResponse(r)
	return &response, nil
}

// UpdateRecipe updates a recipe's name and yield
func (s *Service) UpdateRecipe(ctx context.Context, tenantID, recipeID uuid.UUID, req UpdateRecipeRequest) (*RecipeResponse, error) {
	r, err := s.recipeRepo.FindByIDForTenant(ctx, tenantID, recipeID)
	if err != nil {
		return nil, err
	}

	r.Name = req.Name
	if err := r.UpdateYield(req.YieldQuantity); err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToRecipeResponse(r)
	return &response, nil
}

// AddIngredient appends an ingredient line to a recipe
func (s *Service) AddIngredient(ctx context.Context, tenantID, recipeID uuid.UUID, req IngredientRequest) (*RecipeResponse, error) {
	if err := s.validateIngredients(ctx, tenantID, []IngredientRequest{req}); err != nil {
		return nil, err
	}

	r, err := s.recipeRepo.FindByIDForTenant(ctx, tenantID, recipeID)
	if err != nil {
		return nil, err
	}

	added, err := r.AddIngredient(req.CatalogItemID, req.Quantity, req.Unit, req.WastagePct)
	if err != nil {
		return nil, err
	}
	added.Optional = req.Optional

	if err := s.recipeRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToRecipeResponse(r)
	return &response, nil
}

// RemoveIngredient removes an ingredient line from a recipe
func (s *Service) RemoveIngredient(ctx context.Context, tenantID, recipeID, ingredientID uuid.UUID) (*RecipeResponse, error) {
	r, err := s.recipeRepo.FindByIDForTenant(ctx, tenantID, recipeID)
	if err != nil {
		return nil, err
	}

	if err := r.RemoveIngredient(ingredientID); err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToRecipeResponse(r)
	return &response, nil
}

// SetDefault promotes a recipe to the menu item's default. Demotion of the
// current default and the promotion run in one transaction, so the menu item
// keeps exactly one active default even when a save fails midway.
func (s *Service) SetDefault(ctx context.Context, tenantID, recipeID uuid.UUID) (*RecipeResponse, error) {
	r, err := s.recipeRepo.FindByIDForTenant(ctx, tenantID, recipeID)
	if err != nil {
		return nil, err
	}
	if !r.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "An inactive recipe cannot be the default")
	}

	err = s.txScope.Execute(ctx, func(repo recipe.RecipeRepository) error {
		if err := s.demoteCurrentDefault(ctx, repo, tenantID, r.MenuItemID); err != nil {
			return err
		}
		r.MarkDefault()
		return repo.Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, r)
	response := ToRecipeResponse(r)
	return &response, nil
}

// demoteCurrentDefault unmarks the menu item's current default through the
// transaction-scoped repository handed in by the caller.
func (s *Service) demoteCurrentDefault(ctx context.Context, repo recipe.RecipeRepository, tenantID, menuItemID uuid.UUID) error {
	current, err := repo.FindDefaultForMenuItem(ctx, tenantID, menuItemID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		return err
	}

	current.UnmarkDefault()
	return repo.Save(ctx, current)
}

// DeactivateRecipe disables a recipe; it no longer resolves consumption
func (s *Service) DeactivateRecipe(ctx context.Context, tenantID, recipeID uuid.UUID) error {
	r, err := s.recipeRepo.FindByIDForTenant(ctx, tenantID, recipeID)
	if err != nil {
		return err
	}

	r.Deactivate()
	return s.recipeRepo.Save(ctx, r)
}

// GetRecipe returns one recipe with its ingredients
func (s *Service) GetRecipe(ctx context.Context, tenantID, recipeID uuid.UUID) (*RecipeResponse, error) {
	r, err := s.recipeRepo.FindByIDForTenant(ctx, tenantID, recipeID)
	if err != nil {
		return nil, err
	}
	response := ToRecipeResponse(r)
	return &response, nil
}

// ListRecipes returns recipes matching the filter
func (s *Service) ListRecipes(ctx context.Context, tenantID uuid.UUID, filter RecipeListFilter) ([]RecipeResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	if filter.MenuItemID != nil {
		recipes, err := s.recipeRepo.FindByMenuItem(ctx, tenantID, *filter.MenuItemID)
		if err != nil {
			return nil, 0, err
		}
		return ToRecipeResponses(recipes), int64(len(recipes)), nil
	}

	domainFilter := shared.Filter{Page: filter.Page, PageSize: filter.PageSize}
	recipes, err := s.recipeRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.recipeRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToRecipeResponses(recipes), total, nil
}
