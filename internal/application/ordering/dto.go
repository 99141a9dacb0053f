package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one requested line of a new order
type OrderLineRequest struct {
	CatalogItemID uuid.UUID       `json:"catalog_item_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Notes         string          `json:"notes"`
}

// PlaceOrderRequest represents a request to place an order at a branch
type PlaceOrderRequest struct {
	BranchID    uuid.UUID          `json:"branch_id" binding:"required"`
	OrderNumber string             `json:"order_number"` // generated when empty
	Notes       string             `json:"notes"`
	Items       []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// CheckAvailabilityRequest asks whether an order could currently be fulfilled
type CheckAvailabilityRequest struct {
	BranchID uuid.UUID          `json:"branch_id" binding:"required"`
	Items    []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// RequirementResponse is one resolved ingredient demand
type RequirementResponse struct {
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	ItemName      string          `json:"item_name"`
	Unit          string          `json:"unit"`
	Required      decimal.Decimal `json:"required"`
	Available     decimal.Decimal `json:"available"`
	Optional      bool            `json:"optional"`
}

// AvailabilityResponse reports the outcome of an availability pre-check
type AvailabilityResponse struct {
	Available    bool                  `json:"available"`
	Requirements []RequirementResponse `json:"requirements"`
	Shortages    []inventory.Shortage  `json:"shortages,omitempty"`
}

// OrderItemResponse represents one ordered line in API responses
type OrderItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	ItemName      string          `json:"item_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	OrderNumber       string              `json:"order_number"`
	BranchID          uuid.UUID           `json:"branch_id"`
	Status            string              `json:"status"`
	TotalAmount       decimal.Decimal     `json:"total_amount"`
	InventoryDeducted bool                `json:"inventory_deducted"`
	Notes             string              `json:"notes,omitempty"`
	PlacedAt          time.Time           `json:"placed_at"`
	CompletedAt       *time.Time          `json:"completed_at,omitempty"`
	CancelledAt       *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason      string              `json:"cancel_reason,omitempty"`
	Items             []OrderItemResponse `json:"items"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Version           int                 `json:"version"`
}

// ToOrderResponse converts an order to a response
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:            item.ID,
			CatalogItemID: item.CatalogItemID,
			ItemName:      item.ItemName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Amount:        item.Amount,
			Notes:         item.Notes,
		})
	}

	return OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		BranchID:          o.BranchID,
		Status:            o.Status.String(),
		TotalAmount:       o.TotalAmount,
		InventoryDeducted: o.InventoryDeducted,
		Notes:             o.Notes,
		PlacedAt:          o.PlacedAt,
		CompletedAt:       o.CompletedAt,
		CancelledAt:       o.CancelledAt,
		CancelReason:      o.CancelReason,
		Items:             items,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Version:           o.Version,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []ordering.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToOrderResponse(&orders[idx]))
	}
	return responses
}

// CancelOrderRequest represents a request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=255"`
}

// OrderListFilter represents filter options for order listing
type OrderListFilter struct {
	BranchID *uuid.UUID `form:"branch_id"`
	Status   string     `form:"status"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}
