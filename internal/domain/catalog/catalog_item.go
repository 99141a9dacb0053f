package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemKind classifies a catalog item
type ItemKind string

const (
	// ItemKindMenuItem is a sellable dish; consumption resolves through a recipe
	ItemKindMenuItem ItemKind = "menu_item"
	// ItemKindInventory is a stock-tracked item sold or used as-is (e.g. bottled drinks)
	ItemKindInventory ItemKind = "inventory"
	// ItemKindIngredient is a raw ingredient consumed by recipes
	ItemKindIngredient ItemKind = "ingredient"
)

// String returns the string representation of ItemKind
func (k ItemKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is one of the known values
func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindMenuItem, ItemKindInventory, ItemKindIngredient:
		return true
	}
	return false
}

// IsTrackable returns true if stock may be kept for this kind.
// Menu items are never tracked directly; their recipes consume tracked items.
func (k ItemKind) IsTrackable() bool {
	return k == ItemKindInventory || k == ItemKindIngredient
}

// CatalogItem is the master record for anything orderable or trackable.
// Identity is immutable; descriptive fields may change. Items are never
// deleted, only deactivated, so historical ledger entries keep resolving.
type CatalogItem struct {
	shared.TenantAggregateRoot
	Code       string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_catalog_item_tenant_code,priority:2"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Kind       ItemKind        `gorm:"type:varchar(20);not null;index"`
	Unit       string          `gorm:"type:varchar(20);not null"` // stock-keeping unit, e.g. "kg", "pcs"
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Price      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // selling price for menu/inventory kinds
	Active     bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// NewCatalogItem creates a new catalog item
func NewCatalogItem(tenantID uuid.UUID, code, name string, kind ItemKind, unit string) (*CatalogItem, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Item code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Item code cannot exceed 50 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown catalog item kind")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Item unit cannot be empty")
	}

	item := &CatalogItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Kind:                kind,
		Unit:                unit,
		Price:               decimal.Zero,
		Active:              true,
	}

	item.AddDomainEvent(NewCatalogItemCreatedEvent(item))

	return item, nil
}

// Update updates the item's descriptive fields. Kind and code are identity
// and stay fixed once ledger entries may reference the item.
func (i *CatalogItem) Update(name, unit string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return shared.NewDomainError("INVALID_UNIT", "Item unit cannot be empty")
	}

	i.Name = name
	i.Unit = unit
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewCatalogItemUpdatedEvent(i))

	return nil
}

// SetPrice sets the selling price
func (i *CatalogItem) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	i.Price = price
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// SetCategory sets the category reference
func (i *CatalogItem) SetCategory(categoryID *uuid.UUID) {
	i.CategoryID = categoryID
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// Deactivate removes the item from active views without deleting it
func (i *CatalogItem) Deactivate() {
	if !i.Active {
		return
	}
	i.Active = false
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewCatalogItemDeactivatedEvent(i))
}

// Activate restores a deactivated item
func (i *CatalogItem) Activate() {
	if i.Active {
		return
	}
	i.Active = true
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// IsTrackable returns true if inventory may be kept for this item
func (i *CatalogItem) IsTrackable() bool {
	return i.Kind.IsTrackable()
}

// IsSellable returns true if the item may appear on an order
func (i *CatalogItem) IsSellable() bool {
	return i.Active && (i.Kind == ItemKindMenuItem || i.Kind == ItemKindInventory)
}
