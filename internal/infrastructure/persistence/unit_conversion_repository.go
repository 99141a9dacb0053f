package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormUnitConversionRepository implements catalog.UnitConversionRepository using GORM
type GormUnitConversionRepository struct {
	db *gorm.DB
}

// NewGormUnitConversionRepository creates a new GORM unit conversion repository
func NewGormUnitConversionRepository(db *gorm.DB) *GormUnitConversionRepository {
	return &GormUnitConversionRepository{db: db}
}

// FindByID finds a conversion by its ID
func (r *GormUnitConversionRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.UnitConversion, error) {
	var conversion catalog.UnitConversion
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conversion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find unit conversion: %w", err)
	}
	return &conversion, nil
}

// FindByPair finds the direct conversion row for a unit pair
func (r *GormUnitConversionRepository) FindByPair(ctx context.Context, tenantID uuid.UUID, fromUnit, toUnit string) (*catalog.UnitConversion, error) {
	var conversion catalog.UnitConversion
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND from_unit = ? AND to_unit = ?",
			tenantID, normalize(fromUnit), normalize(toUnit)).
		First(&conversion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find unit conversion: %w", err)
	}
	return &conversion, nil
}

// FindAllForTenant finds all conversions for a tenant
func (r *GormUnitConversionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.UnitConversion, error) {
	var conversions []catalog.UnitConversion
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("from_unit ASC, to_unit ASC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	if err := query.Find(&conversions).Error; err != nil {
		return nil, fmt.Errorf("failed to find unit conversions: %w", err)
	}
	return conversions, nil
}

// Save creates or updates a conversion
func (r *GormUnitConversionRepository) Save(ctx context.Context, conversion *catalog.UnitConversion) error {
	if err := r.db.WithContext(ctx).Save(conversion).Error; err != nil {
		return fmt.Errorf("failed to save unit conversion: %w", err)
	}
	return nil
}

// Delete deletes a conversion
func (r *GormUnitConversionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&catalog.UnitConversion{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete unit conversion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// Ensure GormUnitConversionRepository implements catalog.UnitConversionRepository
var _ catalog.UnitConversionRepository = (*GormUnitConversionRepository)(nil)

// GormUnitConverter implements catalog.UnitConverter over the conversion table.
// Lookup is single-hop: equal units resolve to 1, a missing pair is
// shared.ErrMissingConversion, never a chain through intermediate units.
type GormUnitConverter struct {
	conversions catalog.UnitConversionRepository
}

// NewGormUnitConverter creates a unit converter backed by the conversion repository
func NewGormUnitConverter(conversions catalog.UnitConversionRepository) *GormUnitConverter {
	return &GormUnitConverter{conversions: conversions}
}

// Factor returns the conversion factor from one unit to another
func (c *GormUnitConverter) Factor(ctx context.Context, tenantID uuid.UUID, fromUnit, toUnit string) (decimal.Decimal, error) {
	from := normalize(fromUnit)
	to := normalize(toUnit)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	conversion, err := c.conversions.FindByPair(ctx, tenantID, from, to)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, shared.ErrMissingConversion
		}
		return decimal.Zero, err
	}
	return conversion.Factor, nil
}

// Ensure GormUnitConverter implements catalog.UnitConverter
var _ catalog.UnitConverter = (*GormUnitConverter)(nil)
