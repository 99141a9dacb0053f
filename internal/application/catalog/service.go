package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/shared"
)

// Service handles catalog configuration: items and unit conversions
type Service struct {
	itemRepo       catalog.CatalogItemRepository
	conversionRepo catalog.UnitConversionRepository
	eventPublisher shared.EventPublisher
}

// NewService creates a new catalog Service
func NewService(itemRepo catalog.CatalogItemRepository, conversionRepo catalog.UnitConversionRepository) *Service {
	return &Service{
		itemRepo:       itemRepo,
		conversionRepo: conversionRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *Service) publishDomainEvents(ctx context.Context, item *catalog.CatalogItem) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	item.ClearDomainEvents()
}

// CreateItem creates a new catalog item
func (s *Service) CreateItem(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req CreateItemRequest) (*CatalogItemResponse, error) {
	item, err := catalog.NewCatalogItem(tenantID, req.Code, req.Name, catalog.ItemKind(req.Kind), req.Unit)
	if err != nil {
		return nil, err
	}

	exists, err := s.itemRepo.ExistsByCode(ctx, tenantID, item.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "An item with this code already exists")
	}

	if actorID != nil {
		item.SetCreatedBy(*actorID)
	}
	if req.CategoryID != nil {
		item.SetCategory(req.CategoryID)
	}
	if req.Price != nil {
		if err := item.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, item)
	response := ToCatalogItemResponse(item)
	return &response, nil
}

// UpdateItem updates a catalog item's descriptive fields
func (s *Service) UpdateItem(ctx context.Context, tenantID, itemID uuid.UUID, req UpdateItemRequest) (*CatalogItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	if err := item.Update(req.Name, req.Unit); err != nil {
		return nil, err
	}
	item.SetCategory(req.CategoryID)
	if req.Price != nil {
		if err := item.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, item)
	response := ToCatalogItemResponse(item)
	return &response, nil
}

// DeactivateItem removes an item from active views without deleting it
func (s *Service) DeactivateItem(ctx context.Context, tenantID, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return err
	}

	item.Deactivate()
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return err
	}

	s.publishDomainEvents(ctx, item)
	return nil
}

// ActivateItem restores a deactivated item
func (s *Service) ActivateItem(ctx context.Context, tenantID, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return err
	}

	item.Activate()
	return s.itemRepo.Save(ctx, item)
}

// GetItem returns one catalog item
func (s *Service) GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*CatalogItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	response := ToCatalogItemResponse(item)
	return &response, nil
}

// ListItems returns catalog items matching the filter
func (s *Service) ListItems(ctx context.Context, tenantID uuid.UUID, filter ItemListFilter) ([]CatalogItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
	}

	var items []catalog.CatalogItem
	var err error
	if filter.Kind != "" {
		items, err = s.itemRepo.FindByKind(ctx, tenantID, catalog.ItemKind(filter.Kind), domainFilter)
	} else {
		items, err = s.itemRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.itemRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCatalogItemResponses(items), total, nil
}

// CreateConversion creates a unit conversion for the tenant
func (s *Service) CreateConversion(ctx context.Context, tenantID uuid.UUID, req CreateConversionRequest) (*UnitConversionResponse, error) {
	conversion, err := catalog.NewUnitConversion(tenantID, req.FromUnit, req.ToUnit, req.Factor)
	if err != nil {
		return nil, err
	}

	existing, err := s.conversionRepo.FindByPair(ctx, tenantID, conversion.FromUnit, conversion.ToUnit)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_CONVERSION", "A conversion for this unit pair already exists")
	}

	if err := s.conversionRepo.Save(ctx, conversion); err != nil {
		return nil, err
	}

	response := ToUnitConversionResponse(conversion)
	return &response, nil
}

// UpdateConversion replaces a conversion's factor
func (s *Service) UpdateConversion(ctx context.Context, tenantID, conversionID uuid.UUID, req UpdateConversionRequest) (*UnitConversionResponse, error) {
	conversion, err := s.conversionRepo.FindByID(ctx, conversionID)
	if err != nil {
		return nil, err
	}
	if conversion.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}

	if err := conversion.UpdateFactor(req.Factor); err != nil {
		return nil, err
	}
	if err := s.conversionRepo.Save(ctx, conversion); err != nil {
		return nil, err
	}

	response := ToUnitConversionResponse(conversion)
	return &response, nil
}

// DeleteConversion removes a unit conversion
func (s *Service) DeleteConversion(ctx context.Context, tenantID, conversionID uuid.UUID) error {
	return s.conversionRepo.Delete(ctx, tenantID, conversionID)
}

// ListConversions returns all conversions for the tenant
func (s *Service) ListConversions(ctx context.Context, tenantID uuid.UUID) ([]UnitConversionResponse, error) {
	conversions, err := s.conversionRepo.FindAllForTenant(ctx, tenantID, shared.Filter{Page: 1, PageSize: 500})
	if err != nil {
		return nil, err
	}
	return ToUnitConversionResponses(conversions), nil
}
