package ordering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	invapp "github.com/resto/backend/internal/application/inventory"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/ordering"
	"github.com/resto/backend/internal/domain/recipe"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FulfillmentService drives the order lifecycle: availability pre-checks,
// the atomic place-order transaction with its recipe-driven stock deduction,
// and the compensating reversal when an order is cancelled.
type FulfillmentService struct {
	txScope        FulfillmentScope
	orderRepo      ordering.OrderRepository
	recordRepo     inventory.InventoryRecordRepository
	catalogRepo    catalog.CatalogItemRepository
	resolver       *recipe.ConsumptionResolver
	eventPublisher shared.EventPublisher
}

// NewFulfillmentService creates a new FulfillmentService
func NewFulfillmentService(
	txScope FulfillmentScope,
	orderRepo ordering.OrderRepository,
	recordRepo inventory.InventoryRecordRepository,
	catalogRepo catalog.CatalogItemRepository,
	resolver *recipe.ConsumptionResolver,
) *FulfillmentService {
	return &FulfillmentService{
		txScope:     txScope,
		orderRepo:   orderRepo,
		recordRepo:  recordRepo,
		catalogRepo: catalogRepo,
		resolver:    resolver,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *FulfillmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// requirement is one ingredient demand summed across all order lines
type requirement struct {
	CatalogItemID uuid.UUID
	ItemName      string
	Unit          string
	Quantity      decimal.Decimal
	Optional      bool
}

// aggregateRequirements sums the flat per-line requirements per catalog item.
// A demand is only optional when every contributing line marked it optional.
func aggregateRequirements(reqs []recipe.IngredientRequirement) []requirement {
	byItem := make(map[uuid.UUID]int)
	aggregated := make([]requirement, 0, len(reqs))

	for _, r := range reqs {
		name := ""
		if r.CatalogItem != nil {
			name = r.CatalogItem.Name
		}
		if idx, ok := byItem[r.CatalogItemID]; ok {
			aggregated[idx].Quantity = aggregated[idx].Quantity.Add(r.Quantity)
			aggregated[idx].Optional = aggregated[idx].Optional && r.Optional
			continue
		}
		byItem[r.CatalogItemID] = len(aggregated)
		aggregated = append(aggregated, requirement{
			CatalogItemID: r.CatalogItemID,
			ItemName:      name,
			Unit:          r.Unit,
			Quantity:      r.Quantity,
			Optional:      r.Optional,
		})
	}

	return aggregated
}

func toOrderLines(items []OrderLineRequest) []recipe.OrderLine {
	lines := make([]recipe.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, recipe.OrderLine{MenuItemID: item.CatalogItemID, Quantity: item.Quantity})
	}
	return lines
}

// loadAvailability bulk-loads current stock for the aggregated requirements
func (s *FulfillmentService) loadAvailability(ctx context.Context, tenantID, branchID uuid.UUID, reqs []requirement) (map[uuid.UUID]decimal.Decimal, error) {
	itemIDs := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		itemIDs = append(itemIDs, r.CatalogItemID)
	}

	records, err := s.recordRepo.FindByBranchAndItems(ctx, tenantID, branchID, itemIDs)
	if err != nil {
		return nil, err
	}

	available := make(map[uuid.UUID]decimal.Decimal, len(records))
	for _, record := range records {
		available[record.CatalogItemID] = record.CurrentQuantity
	}
	return available, nil
}

// shortages returns every required ingredient the branch cannot cover.
// Optional ingredients never block fulfillment.
func shortages(reqs []requirement, available map[uuid.UUID]decimal.Decimal) []inventory.Shortage {
	var short []inventory.Shortage
	for _, r := range reqs {
		if r.Optional {
			continue
		}
		onHand := available[r.CatalogItemID]
		if onHand.LessThan(r.Quantity) {
			short = append(short, inventory.Shortage{
				CatalogItemID: r.CatalogItemID,
				ItemName:      r.ItemName,
				Unit:          r.Unit,
				Required:      r.Quantity,
				Available:     onHand,
			})
		}
	}
	return short
}

// CheckAvailability resolves an order's consumption and reports whether the
// branch can currently cover it. Advisory only: stock may move between this
// check and PlaceOrder, which re-verifies under row locks.
func (s *FulfillmentService) CheckAvailability(ctx context.Context, tenantID uuid.UUID, req CheckAvailabilityRequest) (*AvailabilityResponse, error) {
	resolved, err := s.resolver.Resolve(ctx, tenantID, toOrderLines(req.Items))
	if err != nil {
		return nil, err
	}

	reqs := aggregateRequirements(resolved)
	available, err := s.loadAvailability(ctx, tenantID, req.BranchID, reqs)
	if err != nil {
		return nil, err
	}

	short := shortages(reqs, available)

	requirements := make([]RequirementResponse, 0, len(reqs))
	for _, r := range reqs {
		requirements = append(requirements, RequirementResponse{
			CatalogItemID: r.CatalogItemID,
			ItemName:      r.ItemName,
			Unit:          r.Unit,
			Required:      r.Quantity,
			Available:     available[r.CatalogItemID],
			Optional:      r.Optional,
		})
	}

	return &AvailabilityResponse{
		Available:    len(short) == 0,
		Requirements: requirements,
		Shortages:    short,
	}, nil
}

// generateOrderNumber builds a unique human-readable order number
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// PlaceOrder places an order and deducts ingredient stock atomically.
//
// The flow is pre-check then commit: consumption is resolved and checked
// against current stock outside the transaction to fail fast with the full
// shortage list, then the order, its items, and every deduction are applied
// inside one transaction. Deductions take row locks, so a concurrent order
// that drained stock between pre-check and commit still aborts cleanly.
func (s *FulfillmentService) PlaceOrder(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	itemIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, line := range req.Items {
		if !line.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Order line quantity must be positive")
		}
		itemIDs = append(itemIDs, line.CatalogItemID)
	}

	menuItems, err := s.catalogRepo.FindByIDs(ctx, tenantID, itemIDs)
	if err != nil {
		return nil, err
	}
	menuByID := make(map[uuid.UUID]*catalog.CatalogItem, len(menuItems))
	for idx := range menuItems {
		menuByID[menuItems[idx].ID] = &menuItems[idx]
	}
	for _, line := range req.Items {
		item, ok := menuByID[line.CatalogItemID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		if !item.IsSellable() {
			return nil, shared.NewDomainError("NOT_SELLABLE", "Item cannot be ordered: "+item.Name)
		}
	}

	resolved, err := s.resolver.Resolve(ctx, tenantID, toOrderLines(req.Items))
	if err != nil {
		return nil, err
	}
	reqs := aggregateRequirements(resolved)

	// advisory pre-check, full shortage list for the caller
	available, err := s.loadAvailability(ctx, tenantID, req.BranchID, reqs)
	if err != nil {
		return nil, err
	}
	if short := shortages(reqs, available); len(short) > 0 {
		return nil, inventory.NewInsufficientStockError(short)
	}

	orderNumber := req.OrderNumber
	if orderNumber == "" {
		orderNumber = generateOrderNumber(time.Now())
	}

	var order *ordering.Order
	records := make([]*inventory.InventoryRecord, 0, len(reqs))

	err = s.txScope.Execute(ctx, func(repos FulfillmentRepositories) error {
		var err error
		order, err = ordering.NewOrder(tenantID, req.BranchID, orderNumber)
		if err != nil {
			return err
		}
		if actorID != nil {
			order.SetCreatedBy(*actorID)
		}
		order.Notes = req.Notes

		for _, line := range req.Items {
			item := menuByID[line.CatalogItemID]
			orderItem, err := order.AddItem(item.ID, item.Name, line.Quantity, item.Price)
			if err != nil {
				return err
			}
			orderItem.Notes = line.Notes
		}

		ref := inventory.OrderRef(order.ID)
		for _, r := range reqs {
			record, err := s.deductRequirement(ctx, tenantID, req.BranchID, actorID, r, ref, repos)
			if err != nil {
				return err
			}
			if record != nil {
				records = append(records, record)
			}
		}
		if len(reqs) > 0 {
			order.MarkInventoryDeducted()
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderEvents(ctx, order)
	s.publishRecordEvents(ctx, records)

	response := ToOrderResponse(order)
	return &response, nil
}

// deductRequirement applies one aggregated ingredient deduction inside the
// fulfillment transaction. Required ingredients fail on shortage; optional
// ones clamp to whatever is on hand.
func (s *FulfillmentService) deductRequirement(ctx context.Context, tenantID, branchID uuid.UUID, actorID *uuid.UUID, r requirement, ref inventory.MovementRef, repos FulfillmentRepositories) (*inventory.InventoryRecord, error) {
	if !r.Optional {
		record, _, err := invapp.ApplyMovementWith(ctx, tenantID, invapp.Movement{
			BranchID:      branchID,
			CatalogItemID: r.CatalogItemID,
			Quantity:      r.Quantity.Neg(),
			EntryType:     inventory.EntryTypeSale,
			Reference:     ref,
			ActorID:       actorID,
		}, repos)
		if err != nil {
			if insufficient, ok := err.(*inventory.InsufficientStockError); ok && r.ItemName != "" {
				insufficient.Shortages[0].ItemName = r.ItemName
				insufficient.Shortages[0].Unit = r.Unit
			}
			return nil, err
		}
		return record, nil
	}

	record, err := repos.RecordRepo().GetOrCreateForUpdate(ctx, tenantID, branchID, r.CatalogItemID)
	if err != nil {
		return nil, err
	}
	previous, current, applied, err := record.ApplyOutboundClamped(r.Quantity)
	if err != nil {
		return nil, err
	}
	if applied.IsZero() {
		return nil, nil
	}

	entry, err := inventory.NewStockEntry(tenantID, branchID, r.CatalogItemID, inventory.EntryTypeSale, applied.Neg(), previous, current)
	if err != nil {
		return nil, err
	}
	entry.WithCost(record.AverageCost).WithReference(ref)
	if actorID != nil {
		entry.WithPerformedBy(*actorID)
	}
	if err := repos.EntryRepo().Append(ctx, entry); err != nil {
		return nil, err
	}
	record.AddDomainEvent(inventory.NewStockMovementAppliedEvent(record, entry))
	if err := repos.RecordRepo().Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// RevertOrderDeduction restores the stock an order consumed by inverting the
// sale entries its placement wrote to the ledger. The operation is
// idempotent: the order's deduction flag guards against a double reversal,
// and a second call is a no-op.
func (s *FulfillmentService) RevertOrderDeduction(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	var order *ordering.Order
	var records []*inventory.InventoryRecord

	err := s.txScope.Execute(ctx, func(repos FulfillmentRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		records, err = s.revertWithRepos(ctx, tenantID, actorID, order, reason, repos)
		if err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderEvents(ctx, order)
	s.publishRecordEvents(ctx, records)

	response := ToOrderResponse(order)
	return &response, nil
}

// revertWithRepos applies the compensating inbound movements for an order.
// The reversal reads the order's sale entries from the ledger and inverts
// them, never the recipe: placement may have clamped an optional ingredient
// to what was on hand, and only the ledger knows how much actually left.
// A no-op when the order has no outstanding deduction.
func (s *FulfillmentService) revertWithRepos(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, order *ordering.Order, reason string, repos FulfillmentRepositories) ([]*inventory.InventoryRecord, error) {
	if !order.ClearInventoryDeducted() {
		return nil, nil
	}

	ref := inventory.OrderRef(order.ID)
	entries, err := repos.EntryRepo().FindByReference(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}

	records := make([]*inventory.InventoryRecord, 0, len(entries))
	for _, e := range entries {
		if e.EntryType != inventory.EntryTypeSale {
			continue
		}
		record, _, err := invapp.ApplyMovementWith(ctx, tenantID, invapp.Movement{
			BranchID:      e.BranchID,
			CatalogItemID: e.CatalogItemID,
			Quantity:      e.Quantity.Neg(),
			EntryType:     inventory.EntryTypeReturn,
			Reference:     ref,
			Reason:        reason,
			ActorID:       actorID,
		}, repos)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// CancelOrder cancels an order and, when stock was already deducted,
// restores it in the same transaction.
func (s *FulfillmentService) CancelOrder(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	var order *ordering.Order
	var records []*inventory.InventoryRecord

	err := s.txScope.Execute(ctx, func(repos FulfillmentRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		if err := order.Cancel(req.Reason); err != nil {
			return err
		}

		records, err = s.revertWithRepos(ctx, tenantID, actorID, order, "order cancelled: "+req.Reason, repos)
		if err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderEvents(ctx, order)
	s.publishRecordEvents(ctx, records)

	response := ToOrderResponse(order)
	return &response, nil
}

// CompleteOrder marks an order as served and paid
func (s *FulfillmentService) CompleteOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Complete(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order, order.Version-1); err != nil {
		return nil, err
	}

	s.publishOrderEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetOrder returns one order with its items
func (s *FulfillmentService) GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetOrderByNumber returns one order looked up by its order number
func (s *FulfillmentService) GetOrderByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ListOrders returns orders matching the filter, newest first
func (s *FulfillmentService) ListOrders(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := ordering.OrderFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
		},
		BranchID: filter.BranchID,
		From:     filter.From,
		To:       filter.To,
	}
	if filter.Status != "" {
		status := ordering.OrderStatus(strings.ToUpper(filter.Status))
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		domainFilter.Status = &status
	}

	orders, err := s.orderRepo.FindByFilter(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByFilter(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

func (s *FulfillmentService) publishOrderEvents(ctx context.Context, order *ordering.Order) {
	if order == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	order.ClearDomainEvents()
}

func (s *FulfillmentService) publishRecordEvents(ctx context.Context, records []*inventory.InventoryRecord) {
	if s.eventPublisher == nil {
		return
	}
	for _, record := range records {
		if record == nil {
			continue
		}
		events := record.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		_ = s.eventPublisher.Publish(ctx, events...)
		record.ClearDomainEvents()
	}
}
