package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/recipe"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRecipeRepository implements recipe.RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GORM recipe repository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByID finds a recipe by its ID, ingredients included
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return &rec, nil
}

// FindByIDForTenant finds a recipe by ID within a tenant
func (r *GormRecipeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return &rec, nil
}

// FindDefaultForMenuItem finds the active default recipe for a menu item
func (r *GormRecipeRepository) FindDefaultForMenuItem(ctx context.Context, tenantID, menuItemID uuid.UUID) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		Where("tenant_id = ? AND menu_item_id = ? AND is_default = ? AND active = ?",
			tenantID, menuItemID, true, true).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find default recipe: %w", err)
	}
	return &rec, nil
}

// FindByMenuItem finds all recipes for a menu item
func (r *GormRecipeRepository) FindByMenuItem(ctx context.Context, tenantID, menuItemID uuid.UUID) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		Where("tenant_id = ? AND menu_item_id = ?", tenantID, menuItemID).
		Order("is_default DESC, created_at ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recipes for menu item: %w", err)
	}
	return recipes, nil
}

// FindAllForTenant finds all recipes for a tenant
func (r *GormRecipeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	query := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		Where("tenant_id = ?", tenantID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}
	return recipes, nil
}

// Save creates or updates a recipe with its ingredients. Removed ingredient
// lines are deleted so the stored set always mirrors the aggregate.
func (r *GormRecipeRepository) Save(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keepIDs := make([]uuid.UUID, 0, len(rec.Ingredients))
		for _, ing := range rec.Ingredients {
			keepIDs = append(keepIDs, ing.ID)
		}

		cleanup := tx.Where("recipe_id = ?", rec.ID)
		if len(keepIDs) > 0 {
			cleanup = cleanup.Where("id NOT IN ?", keepIDs)
		}
		if err := cleanup.Delete(&recipe.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to prune recipe ingredients: %w", err)
		}

		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("failed to save recipe: %w", err)
		}
		return nil
	})
}

// Delete deletes a recipe and its ingredients
func (r *GormRecipeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&recipe.Recipe{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&recipe.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe ingredients: %w", err)
		}
		return nil
	})
}

// CountForTenant counts recipes matching the filter
func (r *GormRecipeRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&recipe.Recipe{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

func (r *GormRecipeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, RecipeSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

func (r *GormRecipeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if menuItemID, ok := filter.Filters["menu_item_id"]; ok {
		query = query.Where("menu_item_id = ?", menuItemID)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	return query
}

// Ensure GormRecipeRepository implements recipe.RecipeRepository
var _ recipe.RecipeRepository = (*GormRecipeRepository)(nil)
