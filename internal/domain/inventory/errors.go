package inventory

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shortage describes one ingredient that cannot cover a requested deduction
type Shortage struct {
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	ItemName      string          `json:"item_name"`
	Unit          string          `json:"unit"`
	Required      decimal.Decimal `json:"required"`
	Available     decimal.Decimal `json:"available"`
}

// Missing returns how much is missing to cover the requirement
func (s Shortage) Missing() decimal.Decimal {
	return s.Required.Sub(s.Available)
}

// InsufficientStockError reports every ingredient that fell short of a
// requested deduction, not just the first, so callers can render the
// complete list.
type InsufficientStockError struct {
	Shortages []Shortage
}

// NewInsufficientStockError creates an error from a non-empty shortage list
func NewInsufficientStockError(shortages []Shortage) *InsufficientStockError {
	return &InsufficientStockError{Shortages: shortages}
}

// Code returns the machine-readable error code
func (e *InsufficientStockError) Code() string {
	return "INSUFFICIENT_STOCK"
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	if len(e.Shortages) == 0 {
		return "insufficient stock"
	}
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		name := s.ItemName
		if name == "" {
			name = s.CatalogItemID.String()
		}
		parts = append(parts, fmt.Sprintf("%s (need %s, have %s)", name, s.Required.String(), s.Available.String()))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}
