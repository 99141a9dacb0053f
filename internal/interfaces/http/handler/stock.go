package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	invapp "github.com/resto/backend/internal/application/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/resto/backend/internal/interfaces/http/dto"
	"github.com/resto/backend/internal/interfaces/http/middleware"
)

// StockHandler handles branch stock API endpoints
type StockHandler struct {
	BaseHandler
	stockService *invapp.Service
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *invapp.Service) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// AddStock receives stock into a branch
func (h *StockHandler) AddStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req invapp.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if !middleware.CanAccessBranch(c, req.BranchID) {
		h.Forbidden(c, "No access to this branch")
		return
	}

	stock, err := h.stockService.AddStock(c.Request.Context(), tenantID, getActorID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stock)
}

// RemoveStock removes stock from a branch
func (h *StockHandler) RemoveStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req invapp.RemoveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if !middleware.CanAccessBranch(c, req.BranchID) {
		h.Forbidden(c, "No access to this branch")
		return
	}

	stock, err := h.stockService.RemoveStock(c.Request.Context(), tenantID, getActorID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stock)
}

// TransferStock moves stock between two branches
func (h *StockHandler) TransferStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req invapp.TransferStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if !middleware.CanAccessBranch(c, req.FromBranchID) || !middleware.CanAccessBranch(c, req.ToBranchID) {
		h.Forbidden(c, "No access to this branch")
		return
	}

	result, err := h.stockService.TransferStock(c.Request.Context(), tenantID, getActorID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// AdjustStock reconciles a record against a physical count
func (h *StockHandler) AdjustStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req invapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if !middleware.CanAccessBranch(c, req.BranchID) {
		h.Forbidden(c, "No access to this branch")
		return
	}

	stock, err := h.stockService.AdjustStock(c.Request.Context(), tenantID, getActorID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stock)
}

// RecordWaste writes off spoiled or damaged stock
func (h *StockHandler) RecordWaste(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req invapp.RecordWasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if !middleware.CanAccessBranch(c, req.BranchID) {
		h.Forbidden(c, "No access to this branch")
		return
	}

	results, err := h.stockService.RecordWaste(c.Request.Context(), tenantID, getActorID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, results)
}

// SetMinStockLevel updates the low-stock alert threshold
func (h *StockHandler) SetMinStockLevel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req invapp.SetMinStockLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	stock, err := h.stockService.SetMinStockLevel(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stock)
}

// GetStock returns the current record for a branch-item pair
func (h *StockHandler) GetStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	branchID, err := parsePathUUID(c, "branch_id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}
	itemID, err := parsePathUUID(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid catalog item ID format")
		return
	}

	stock, err := h.stockService.GetStock(c.Request.Context(), tenantID, branchID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stock)
}

// ListStock returns all stock records for a branch
func (h *StockHandler) ListStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	branchID, err := parsePathUUID(c, "branch_id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.Normalize()

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}
	if itemID := c.Query("catalog_item_id"); itemID != "" {
		id, err := uuid.Parse(itemID)
		if err != nil {
			h.BadRequest(c, "Invalid catalog item ID format")
			return
		}
		filter.Filters = map[string]interface{}{"catalog_item_id": id}
	}

	stocks, total, err := h.stockService.ListStock(c.Request.Context(), tenantID, branchID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, stocks, total, listReq.Page, listReq.PageSize)
}

// ListBelowMinimum returns records under their alert threshold
func (h *StockHandler) ListBelowMinimum(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid branch ID format")
			return
		}
		branchID = &id
	}

	stocks, err := h.stockService.ListBelowMinimum(c.Request.Context(), tenantID, branchID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stocks)
}

// StockHistory returns ledger entries matching the filter
func (h *StockHandler) StockHistory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter invapp.StockHistoryFilter
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

	entries, total, err := h.stockService.StockHistory(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// ConsumptionSummary reports sale consumption per catalog item over a range
func (h *StockHandler) ConsumptionSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter invapp.ConsumptionSummaryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.stockService.ConsumptionSummary(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// CheckLedger audits a record against the sum of its ledger entries
func (h *StockHandler) CheckLedger(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	branchID, err := parsePathUUID(c, "branch_id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}
	itemID, err := parsePathUUID(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid catalog item ID format")
		return
	}

	result, err := h.stockService.CheckLedger(c.Request.Context(), tenantID, branchID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}
