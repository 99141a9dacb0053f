package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CatalogItemResponse represents a catalog item in API responses
type CatalogItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Kind       string          `json:"kind"`
	Unit       string          `json:"unit"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ToCatalogItemResponse converts a catalog item to a response
func ToCatalogItemResponse(item *catalog.CatalogItem) CatalogItemResponse {
	return CatalogItemResponse{
		ID:         item.ID,
		Code:       item.Code,
		Name:       item.Name,
		Kind:       item.Kind.String(),
		Unit:       item.Unit,
		CategoryID: item.CategoryID,
		Price:      item.Price,
		Active:     item.Active,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
		Version:    item.Version,
	}
}

// ToCatalogItemResponses converts a slice of catalog items
func ToCatalogItemResponses(items []catalog.CatalogItem) []CatalogItemResponse {
	responses := make([]CatalogItemResponse, 0, len(items))
	for idx := range items {
		responses = append(responses, ToCatalogItemResponse(&items[idx]))
	}
	return responses
}

// CreateItemRequest represents a request to create a catalog item
type CreateItemRequest struct {
	Code       string           `json:"code" binding:"required,min=1,max=50"`
	Name       string           `json:"name" binding:"required,min=1,max=200"`
	Kind       string           `json:"kind" binding:"required,oneof=menu_item inventory ingredient"`
	Unit       string           `json:"unit" binding:"required,min=1,max=20"`
	CategoryID *uuid.UUID       `json:"category_id"`
	Price      *decimal.Decimal `json:"price"`
}

// UpdateItemRequest represents a request to update a catalog item
type UpdateItemRequest struct {
	Name       string           `json:"name" binding:"required,min=1,max=200"`
	Unit       string           `json:"unit" binding:"required,min=1,max=20"`
	CategoryID *uuid.UUID       `json:"category_id"`
	Price      *decimal.Decimal `json:"price"`
}

// ItemListFilter represents filter options for catalog item listing
type ItemListFilter struct {
	Search   string `form:"search"`
	Kind     string `form:"kind" binding:"omitempty,oneof=menu_item inventory ingredient"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UnitConversionResponse represents a unit conversion in API responses
type UnitConversionResponse struct {
	ID        uuid.UUID       `json:"id"`
	FromUnit  string          `json:"from_unit"`
	ToUnit    string          `json:"to_unit"`
	Factor    decimal.Decimal `json:"factor"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToUnitConversionResponse converts a unit conversion to a response
func ToUnitConversionResponse(c *catalog.UnitConversion) UnitConversionResponse {
	return UnitConversionResponse{
		ID:        c.ID,
		FromUnit:  c.FromUnit,
		ToUnit:    c.ToUnit,
		Factor:    c.Factor,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToUnitConversionResponses converts a slice of unit conversions
func ToUnitConversionResponses(conversions []catalog.UnitConversion) []UnitConversionResponse {
	responses := make([]UnitConversionResponse, 0, len(conversions))
	for idx := range conversions {
		responses = append(responses, ToUnitConversionResponse(&conversions[idx]))
	}
	return responses
}

// CreateConversionRequest represents a request to create a unit conversion
type CreateConversionRequest struct {
	FromUnit string          `json:"from_unit" binding:"required,min=1,max=20"`
	ToUnit   string          `json:"to_unit" binding:"required,min=1,max=20"`
	Factor   decimal.Decimal `json:"factor" binding:"required"`
}

// UpdateConversionRequest represents a request to update a conversion factor
type UpdateConversionRequest struct {
	Factor decimal.Decimal `json:"factor" binding:"required"`
}
