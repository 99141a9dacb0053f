package catalog

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCatalogItem = "CatalogItem"

// Event type constants
const (
	EventTypeCatalogItemCreated     = "CatalogItemCreated"
	EventTypeCatalogItemUpdated     = "CatalogItemUpdated"
	EventTypeCatalogItemDeactivated = "CatalogItemDeactivated"
)

// CatalogItemCreatedEvent is published when a new catalog item is created
type CatalogItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Kind   ItemKind  `json:"kind"`
	Unit   string    `json:"unit"`
}

// NewCatalogItemCreatedEvent creates a new CatalogItemCreatedEvent
func NewCatalogItemCreatedEvent(item *CatalogItem) *CatalogItemCreatedEvent {
	return &CatalogItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogItemCreated, AggregateTypeCatalogItem, item.ID, item.TenantID),
		ItemID:          item.ID,
		Code:            item.Code,
		Name:            item.Name,
		Kind:            item.Kind,
		Unit:            item.Unit,
	}
}

// CatalogItemUpdatedEvent is published when a catalog item is updated
type CatalogItemUpdatedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Unit   string    `json:"unit"`
}

// NewCatalogItemUpdatedEvent creates a new CatalogItemUpdatedEvent
func NewCatalogItemUpdatedEvent(item *CatalogItem) *CatalogItemUpdatedEvent {
	return &CatalogItemUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogItemUpdated, AggregateTypeCatalogItem, item.ID, item.TenantID),
		ItemID:          item.ID,
		Code:            item.Code,
		Name:            item.Name,
		Unit:            item.Unit,
	}
}

// CatalogItemDeactivatedEvent is published when a catalog item is deactivated
type CatalogItemDeactivatedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
	Code   string    `json:"code"`
}

// NewCatalogItemDeactivatedEvent creates a new CatalogItemDeactivatedEvent
func NewCatalogItemDeactivatedEvent(item *CatalogItem) *CatalogItemDeactivatedEvent {
	return &CatalogItemDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogItemDeactivated, AggregateTypeCatalogItem, item.ID, item.TenantID),
		ItemID:          item.ID,
		Code:            item.Code,
	}
}
