package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CatalogItemSortFields contains allowed sort fields for catalog items
var CatalogItemSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"kind":       true,
	"unit":       true,
	"price":      true,
	"active":     true,
}

// RecipeSortFields contains allowed sort fields for recipes
var RecipeSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"menu_item_id": true,
	"is_default":   true,
	"active":       true,
}

// InventoryRecordSortFields contains allowed sort fields for inventory records
var InventoryRecordSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"branch_id":        true,
	"catalog_item_id":  true,
	"current_quantity": true,
	"min_stock_level":  true,
	"average_cost":     true,
}

// StockEntrySortFields contains allowed sort fields for ledger entries
var StockEntrySortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"entry_date":      true,
	"entry_type":      true,
	"branch_id":       true,
	"catalog_item_id": true,
	"quantity":        true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"branch_id":    true,
	"status":       true,
	"total_amount": true,
	"placed_at":    true,
}
