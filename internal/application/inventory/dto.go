package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockResponse represents an inventory record in API responses
type StockResponse struct {
	ID                uuid.UUID       `json:"id"`
	TenantID          uuid.UUID       `json:"tenant_id"`
	BranchID          uuid.UUID       `json:"branch_id"`
	CatalogItemID     uuid.UUID       `json:"catalog_item_id"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	MinStockLevel     decimal.Decimal `json:"min_stock_level"`
	AverageCost       decimal.Decimal `json:"average_cost"`
	LastPurchasePrice decimal.Decimal `json:"last_purchase_price"`
	StockValue        decimal.Decimal `json:"stock_value"`
	IsBelowMinimum    bool            `json:"is_below_minimum"`
	LastRestockedAt   *time.Time      `json:"last_restocked_at,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// ToStockResponse converts an inventory record to a response
func ToStockResponse(r *inventory.InventoryRecord) StockResponse {
	return StockResponse{
		ID:                r.ID,
		TenantID:          r.TenantID,
		BranchID:          r.BranchID,
		CatalogItemID:     r.CatalogItemID,
		CurrentQuantity:   r.CurrentQuantity,
		MinStockLevel:     r.MinStockLevel,
		AverageCost:       r.AverageCost,
		LastPurchasePrice: r.LastPurchasePrice,
		StockValue:        r.StockValue(),
		IsBelowMinimum:    r.IsBelowMinimum(),
		LastRestockedAt:   r.LastRestockedAt,
		UpdatedAt:         r.UpdatedAt,
		Version:           r.Version,
	}
}

// ToStockResponses converts a slice of records
func ToStockResponses(records []inventory.InventoryRecord) []StockResponse {
	responses := make([]StockResponse, 0, len(records))
	for idx := range records {
		responses = append(responses, ToStockResponse(&records[idx]))
	}
	return responses
}

// StockEntryResponse represents one ledger entry in API responses
type StockEntryResponse struct {
	ID               uuid.UUID       `json:"id"`
	BranchID         uuid.UUID       `json:"branch_id"`
	CatalogItemID    uuid.UUID       `json:"catalog_item_id"`
	EntryType        string          `json:"entry_type"`
	Quantity         decimal.Decimal `json:"quantity"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	ReferenceKind    string          `json:"reference_kind,omitempty"`
	ReferenceID      *uuid.UUID      `json:"reference_id,omitempty"`
	Reason           string          `json:"reason,omitempty"`
	PerformedBy      *uuid.UUID      `json:"performed_by,omitempty"`
	EntryDate        time.Time       `json:"entry_date"`
}

// ToStockEntryResponse converts a ledger entry to a response
func ToStockEntryResponse(e *inventory.StockEntry) StockEntryResponse {
	resp := StockEntryResponse{
		ID:               e.ID,
		BranchID:         e.BranchID,
		CatalogItemID:    e.CatalogItemID,
		EntryType:        e.EntryType.String(),
		Quantity:         e.Quantity,
		PreviousQuantity: e.PreviousQuantity,
		NewQuantity:      e.NewQuantity,
		UnitCost:         e.UnitCost,
		TotalCost:        e.TotalCost,
		Reason:           e.Reason,
		PerformedBy:      e.PerformedBy,
		EntryDate:        e.EntryDate,
	}
	if !e.Reference.IsZero() {
		resp.ReferenceKind = string(e.Reference.Kind)
		refID := e.Reference.ID
		resp.ReferenceID = &refID
	}
	return resp
}

// ToStockEntryResponses converts a slice of ledger entries
func ToStockEntryResponses(entries []inventory.StockEntry) []StockEntryResponse {
	responses := make([]StockEntryResponse, 0, len(entries))
	for idx := range entries {
		responses = append(responses, ToStockEntryResponse(&entries[idx]))
	}
	return responses
}

// AddStockRequest represents a request to add stock
type AddStockRequest struct {
	BranchID      uuid.UUID        `json:"branch_id" binding:"required"`
	CatalogItemID uuid.UUID        `json:"catalog_item_id" binding:"required"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
	EntryType     string           `json:"entry_type"` // purchase (default), transfer_in, return, production
	Reason        string           `json:"reason"`
}

// RemoveStockRequest represents a request to remove stock
type RemoveStockRequest struct {
	BranchID      uuid.UUID       `json:"branch_id" binding:"required"`
	CatalogItemID uuid.UUID       `json:"catalog_item_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	EntryType     string          `json:"entry_type"` // sale (default), waste, transfer_out, purchase_return
	Reason        string          `json:"reason"`
}

// TransferStockRequest represents a request to move stock between branches
type TransferStockRequest struct {
	FromBranchID  uuid.UUID       `json:"from_branch_id" binding:"required"`
	ToBranchID    uuid.UUID       `json:"to_branch_id" binding:"required"`
	CatalogItemID uuid.UUID       `json:"catalog_item_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Reason        string          `json:"reason"`
}

// TransferStockResponse returns both sides of a completed transfer
type TransferStockResponse struct {
	TransferID uuid.UUID     `json:"transfer_id"`
	From       StockResponse `json:"from"`
	To         StockResponse `json:"to"`
}

// AdjustStockRequest represents a physical-count reconciliation
type AdjustStockRequest struct {
	BranchID       uuid.UUID       `json:"branch_id" binding:"required"`
	CatalogItemID  uuid.UUID       `json:"catalog_item_id" binding:"required"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	Reason         string          `json:"reason" binding:"required,min=1,max=255"`
	StockCountID   *uuid.UUID      `json:"stock_count_id"`
}

// WasteItem is one line of a waste write-off
type WasteItem struct {
	CatalogItemID uuid.UUID       `json:"catalog_item_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Reason        string          `json:"reason"`
}

// RecordWasteRequest represents a batch waste write-off for a branch
type RecordWasteRequest struct {
	BranchID uuid.UUID   `json:"branch_id" binding:"required"`
	Items    []WasteItem `json:"items" binding:"required,min=1,dive"`
}

// WasteResultItem reports how much waste was actually written off per item.
// Applied may be less than requested when stock ran out.
type WasteResultItem struct {
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	Requested     decimal.Decimal `json:"requested"`
	Applied       decimal.Decimal `json:"applied"`
	NewQuantity   decimal.Decimal `json:"new_quantity"`
}

// SetMinStockLevelRequest updates the low-stock alert threshold
type SetMinStockLevelRequest struct {
	BranchID      uuid.UUID       `json:"branch_id" binding:"required"`
	CatalogItemID uuid.UUID       `json:"catalog_item_id" binding:"required"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
}

// StockHistoryFilter represents filter options for the ledger query
type StockHistoryFilter struct {
	BranchID      *uuid.UUID `form:"branch_id"`
	CatalogItemID *uuid.UUID `form:"catalog_item_id"`
	EntryType     string     `form:"entry_type"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ConsumptionSummaryFilter represents filter options for the consumption report
type ConsumptionSummaryFilter struct {
	BranchID *uuid.UUID `form:"branch_id"`
	From     time.Time  `form:"from" time_format:"2006-01-02" binding:"required"`
	To       time.Time  `form:"to" time_format:"2006-01-02" binding:"required"`
}

// ConsumptionSummaryResponse is one line of the consumption report
type ConsumptionSummaryResponse struct {
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	EntryCount    int64           `json:"entry_count"`
}

// ToConsumptionSummaryResponses converts consumption rows
func ToConsumptionSummaryResponses(rows []inventory.ConsumptionRow) []ConsumptionSummaryResponse {
	responses := make([]ConsumptionSummaryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, ConsumptionSummaryResponse{
			CatalogItemID: row.CatalogItemID,
			TotalQuantity: row.TotalQuantity,
			TotalCost:     row.TotalCost,
			EntryCount:    row.EntryCount,
		})
	}
	return responses
}

// LedgerCheckResponse reports whether a record matches its ledger sum
type LedgerCheckResponse struct {
	BranchID        uuid.UUID       `json:"branch_id"`
	CatalogItemID   uuid.UUID       `json:"catalog_item_id"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	LedgerSum       decimal.Decimal `json:"ledger_sum"`
	Consistent      bool            `json:"consistent"`
}
