package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/resto/backend/internal/application/catalog"
)

// CatalogHandler handles catalog item and unit conversion API endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateItem creates a new catalog item
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req catalogapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), tenantID, getActorID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateItem updates a catalog item's descriptive fields
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	itemID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req catalogapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.catalogService.UpdateItem(c.Request.Context(), tenantID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// GetItem returns one catalog item
func (h *CatalogHandler) GetItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	itemID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.catalogService.GetItem(c.Request.Context(), tenantID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// ListItems returns catalog items matching the filter
func (h *CatalogHandler) ListItems(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter catalogapp.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := h.catalogService.ListItems(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// ActivateItem restores a deactivated item
func (h *CatalogHandler) ActivateItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	itemID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.catalogService.ActivateItem(c.Request.Context(), tenantID, itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// DeactivateItem removes an item from active views without deleting it
func (h *CatalogHandler) DeactivateItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	itemID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.catalogService.DeactivateItem(c.Request.Context(), tenantID, itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateConversion creates a unit conversion for the tenant
func (h *CatalogHandler) CreateConversion(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req catalogapp.CreateConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	conversion, err := h.catalogService.CreateConversion(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, conversion)
}

// UpdateConversion replaces a conversion's factor
func (h *CatalogHandler) UpdateConversion(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	conversionID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid conversion ID format")
		return
	}

	var req catalogapp.UpdateConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	conversion, err := h.catalogService.UpdateConversion(c.Request.Context(), tenantID, conversionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, conversion)
}

// DeleteConversion removes a unit conversion
func (h *CatalogHandler) DeleteConversion(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	conversionID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid conversion ID format")
		return
	}

	if err := h.catalogService.DeleteConversion(c.Request.Context(), tenantID, conversionID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ListConversions returns all conversions for the tenant
func (h *CatalogHandler) ListConversions(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	conversions, err := h.catalogService.ListConversions(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, conversions)
}
