package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnitConversion defines how a quantity expressed in one unit converts to
// another unit for a tenant (e.g. 1 kg = 1000 g, factor 1000).
// Lookup is single-hop: a direct (from, to) row must exist; conversions are
// never chained through intermediate units.
type UnitConversion struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_unit_conversion_pair,priority:1"`
	FromUnit  string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_unit_conversion_pair,priority:2"`
	ToUnit    string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_unit_conversion_pair,priority:3"`
	Factor    decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (UnitConversion) TableName() string {
	return "unit_conversions"
}

// NewUnitConversion creates a new unit conversion row
func NewUnitConversion(tenantID uuid.UUID, fromUnit, toUnit string, factor decimal.Decimal) (*UnitConversion, error) {
	fromUnit = normalizeUnit(fromUnit)
	toUnit = normalizeUnit(toUnit)

	if fromUnit == "" || toUnit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Both units are required")
	}
	if fromUnit == toUnit {
		return nil, shared.NewDomainError("INVALID_UNIT", "Units must differ")
	}
	if !factor.IsPositive() {
		return nil, shared.NewDomainError("INVALID_FACTOR", "Conversion factor must be positive")
	}

	return &UnitConversion{
		ID:       uuid.New(),
		TenantID: tenantID,
		FromUnit: fromUnit,
		ToUnit:   toUnit,
		Factor:   factor,
	}, nil
}

// Convert converts a quantity expressed in FromUnit to ToUnit
func (c *UnitConversion) Convert(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(c.Factor)
}

// UpdateFactor replaces the conversion factor
func (c *UnitConversion) UpdateFactor(factor decimal.Decimal) error {
	if !factor.IsPositive() {
		return shared.NewDomainError("INVALID_FACTOR", "Conversion factor must be positive")
	}
	c.Factor = factor
	c.UpdatedAt = time.Now()
	return nil
}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// UnitConverter resolves single-hop conversions between units.
// Implementations look up the tenant's UnitConversion table.
type UnitConverter interface {
	// Factor returns the conversion factor from one unit to another.
	// Equal units return 1. A missing pair is a validation error
	// (shared.ErrMissingConversion), never a guessed chain.
	Factor(ctx context.Context, tenantID uuid.UUID, fromUnit, toUnit string) (decimal.Decimal, error)
}
