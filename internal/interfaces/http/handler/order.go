package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/resto/backend/internal/application/ordering"
	"github.com/resto/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order fulfillment API endpoints
type OrderHandler struct {
	BaseHandler
	fulfillmentService *orderapp.FulfillmentService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(fulfillmentService *orderapp.FulfillmentService) *OrderHandler {
	return &OrderHandler{fulfillmentService: fulfillmentService}
}

// CheckAvailability reports whether an order could currently be fulfilled
func (h *OrderHandler) CheckAvailability(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req orderapp.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.fulfillmentService.CheckAvailability(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// PlaceOrder places an order and deducts ingredient stock atomically
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req orderapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if !middleware.CanAccessBranch(c, req.BranchID) {
		h.Forbidden(c, "No access to this branch")
		return
	}

	order, err := h.fulfillmentService.PlaceOrder(c.Request.Context(), tenantID, getActorID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// CancelOrder cancels an order and restores any deducted stock
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	orderID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.fulfillmentService.CancelOrder(c.Request.Context(), tenantID, getActorID(c), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// CompleteOrder marks an order as served and paid
func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	orderID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.fulfillmentService.CompleteOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// GetOrder returns one order with its items
func (h *OrderHandler) GetOrder(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	orderID, err := parsePathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.fulfillmentService.GetOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// GetOrderByNumber returns one order looked up by its order number
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	orderNumber := c.Param("order_number")
	if orderNumber == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	order, err := h.fulfillmentService.GetOrderByNumber(c.Request.Context(), tenantID, orderNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// ListOrders returns orders matching the filter
func (h *OrderHandler) ListOrders(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter orderapp.OrderListFilter
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

	orders, total, err := h.fulfillmentService.ListOrders(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}
