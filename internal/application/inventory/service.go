package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Movement is one stock movement routed through the ledger primitive.
// Quantity is signed: positive adds stock, negative removes it.
type Movement struct {
	BranchID      uuid.UUID
	CatalogItemID uuid.UUID
	Quantity      decimal.Decimal
	EntryType     inventory.EntryType
	Reference     inventory.MovementRef
	Reason        string
	ActorID       *uuid.UUID
	UnitCost      *decimal.Decimal
}

// ApplyMovementWith applies one movement through transaction-scoped
// repositories: it locks (or lazily creates) the inventory record, mutates
// the quantity, and appends the matching ledger entry. Every write path in
// the service funnels through here so the record and its ledger can never
// diverge.
//
// Outbound movements that would drive the quantity negative fail with
// *inventory.InsufficientStockError and leave the record untouched.
func ApplyMovementWith(ctx context.Context, tenantID uuid.UUID, m Movement, repos TransactionalRepositories) (*inventory.InventoryRecord, *inventory.StockEntry, error) {
	if !m.EntryType.IsValid() {
		return nil, nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Invalid stock entry type")
	}
	if m.Quantity.IsZero() {
		return nil, nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}

	record, err := repos.RecordRepo().GetOrCreateForUpdate(ctx, tenantID, m.BranchID, m.CatalogItemID)
	if err != nil {
		return nil, nil, err
	}

	var previous, current decimal.Decimal
	if m.Quantity.IsPositive() {
		previous, current, err = record.ApplyInbound(m.Quantity, m.UnitCost)
	} else {
		previous, current, err = record.ApplyOutbound(m.Quantity.Neg())
		if errors.Is(err, shared.ErrInsufficientStock) {
			return nil, nil, inventory.NewInsufficientStockError([]inventory.Shortage{{
				CatalogItemID: m.CatalogItemID,
				Required:      m.Quantity.Neg(),
				Available:     record.CurrentQuantity,
			}})
		}
	}
	if err != nil {
		return nil, nil, err
	}

	entry, err := inventory.NewStockEntry(tenantID, m.BranchID, m.CatalogItemID, m.EntryType, m.Quantity, previous, current)
	if err != nil {
		return nil, nil, err
	}

	// Outbound cost defaults to the record's moving average so consumption
	// reports carry a value even when the caller supplies none.
	switch {
	case m.UnitCost != nil:
		entry.WithCost(*m.UnitCost)
	case m.Quantity.IsNegative():
		entry.WithCost(record.AverageCost)
	}
	if !m.Reference.IsZero() {
		entry.WithReference(m.Reference)
	}
	if m.Reason != "" {
		entry.WithReason(m.Reason)
	}
	if m.ActorID != nil {
		entry.WithPerformedBy(*m.ActorID)
	}

	if err := repos.EntryRepo().Append(ctx, entry); err != nil {
		return nil, nil, err
	}

	record.AddDomainEvent(inventory.NewStockMovementAppliedEvent(record, entry))
	if err := repos.RecordRepo().Save(ctx, record); err != nil {
		return nil, nil, err
	}

	return record, entry, nil
}

// Service handles stock operations for branches: receiving, removal,
// transfers, physical-count adjustments, waste write-offs, and the
// ledger-backed read paths.
type Service struct {
	txScope        TransactionScope
	recordRepo     inventory.InventoryRecordRepository
	entryRepo      inventory.StockEntryRepository
	catalogRepo    catalog.CatalogItemRepository
	eventPublisher shared.EventPublisher
}

// NewService creates a new inventory Service
func NewService(
	txScope TransactionScope,
	recordRepo inventory.InventoryRecordRepository,
	entryRepo inventory.StockEntryRepository,
	catalogRepo catalog.CatalogItemRepository,
) *Service {
	return &Service{
		txScope:     txScope,
		recordRepo:  recordRepo,
		entryRepo:   entryRepo,
		catalogRepo: catalogRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *Service) publishDomainEvents(ctx context.Context, record *inventory.InventoryRecord) {
	if s.eventPublisher == nil || record == nil {
		return
	}
	events := record.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	record.ClearDomainEvents()
}

// requireTrackableItem loads the catalog item and verifies stock may be kept for it
func (s *Service) requireTrackableItem(ctx context.Context, tenantID, itemID uuid.UUID) (*catalog.CatalogItem, error) {
	item, err := s.catalogRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsTrackable() {
		return nil, shared.ErrNotTrackable
	}
	return item, nil
}

// ApplyMovement applies a single movement in its own transaction
func (s *Service) ApplyMovement(ctx context.Context, tenantID uuid.UUID, m Movement) (*StockResponse, error) {
	if _, err := s.requireTrackableItem(ctx, tenantID, m.CatalogItemID); err != nil {
		return nil, err
	}

	var record *inventory.InventoryRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, _, err = ApplyMovementWith(ctx, tenantID, m, repos)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, record)
	response := ToStockResponse(record)
	return &response, nil
}

var inboundEntryTypes = map[string]inventory.EntryType{
	"":            inventory.EntryTypePurchase,
	"purchase":    inventory.EntryTypePurchase,
	"transfer_in": inventory.EntryTypeTransferIn,
	"return":      inventory.EntryTypeReturn,
	"production":  inventory.EntryTypeProduction,
	"PURCHASE":    inventory.EntryTypePurchase,
	"TRANSFER_IN": inventory.EntryTypeTransferIn,
	"RETURN":      inventory.EntryTypeReturn,
	"PRODUCTION":  inventory.EntryTypeProduction,
}

var outboundEntryTypes = map[string]inventory.EntryType{
	"":                inventory.EntryTypeSale,
	"sale":            inventory.EntryTypeSale,
	"waste":           inventory.EntryTypeWaste,
	"transfer_out":    inventory.EntryTypeTransferOut,
	"purchase_return": inventory.EntryTypePurchaseReturn,
	"SALE":            inventory.EntryTypeSale,
	"WASTE":           inventory.EntryTypeWaste,
	"TRANSFER_OUT":    inventory.EntryTypeTransferOut,
	"PURCHASE_RETURN": inventory.EntryTypePurchaseReturn,
}

// AddStock receives stock into a branch and updates the average cost
func (s *Service) AddStock(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req AddStockRequest) (*StockResponse, error) {
	entryType, ok := inboundEntryTypes[req.EntryType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type is not an inbound type")
	}
	if !req.Quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return s.ApplyMovement(ctx, tenantID, Movement{
		BranchID:      req.BranchID,
		CatalogItemID: req.CatalogItemID,
		Quantity:      req.Quantity,
		EntryType:     entryType,
		Reason:        req.Reason,
		ActorID:       actorID,
		UnitCost:      req.UnitCost,
	})
}

// RemoveStock removes stock from a branch; fails when on-hand stock is short
func (s *Service) RemoveStock(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req RemoveStockRequest) (*StockResponse, error) {
	entryType, ok := outboundEntryTypes[req.EntryType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type is not an outbound type")
	}
	if !req.Quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return s.ApplyMovement(ctx, tenantID, Movement{
		BranchID:      req.BranchID,
		CatalogItemID: req.CatalogItemID,
		Quantity:      req.Quantity.Neg(),
		EntryType:     entryType,
		Reason:        req.Reason,
		ActorID:       actorID,
	})
}

// TransferStock moves stock between branches. Both legs run in one
// transaction and share a transfer reference, so a one-sided transfer can
// never be left committed. The receiving leg inherits the sending record's
// average cost.
func (s *Service) TransferStock(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req TransferStockRequest) (*TransferStockResponse, error) {
	if req.FromBranchID == req.ToBranchID {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Source and destination branch must differ")
	}
	if !req.Quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if _, err := s.requireTrackableItem(ctx, tenantID, req.CatalogItemID); err != nil {
		return nil, err
	}

	transferID := uuid.New()
	ref := inventory.TransferRef(transferID)

	var fromRecord, toRecord *inventory.InventoryRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		fromRecord, _, err = ApplyMovementWith(ctx, tenantID, Movement{
			BranchID:      req.FromBranchID,
			CatalogItemID: req.CatalogItemID,
			Quantity:      req.Quantity.Neg(),
			EntryType:     inventory.EntryTypeTransferOut,
			Reference:     ref,
			Reason:        req.Reason,
			ActorID:       actorID,
		}, repos)
		if err != nil {
			return err
		}

		cost := fromRecord.AverageCost
		toRecord, _, err = ApplyMovementWith(ctx, tenantID, Movement{
			BranchID:      req.ToBranchID,
			CatalogItemID: req.CatalogItemID,
			Quantity:      req.Quantity,
			EntryType:     inventory.EntryTypeTransferIn,
			Reference:     ref,
			Reason:        req.Reason,
			ActorID:       actorID,
			UnitCost:      &cost,
		}, repos)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, fromRecord)
	s.publishDomainEvents(ctx, toRecord)

	return &TransferStockResponse{
		TransferID: transferID,
		From:       ToStockResponse(fromRecord),
		To:         ToStockResponse(toRecord),
	}, nil
}

// AdjustStock reconciles a record against a physical count. The signed
// difference is routed through the ledger as an adjustment entry; an exact
// match writes nothing.
func (s *Service) AdjustStock(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req AdjustStockRequest) (*StockResponse, error) {
	if req.ActualQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}
	if _, err := s.requireTrackableItem(ctx, tenantID, req.CatalogItemID); err != nil {
		return nil, err
	}

	ref := inventory.MovementRef{}
	if req.StockCountID != nil {
		ref = inventory.StockCountRef(*req.StockCountID)
	}

	var record *inventory.InventoryRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.RecordRepo().GetOrCreateForUpdate(ctx, tenantID, req.BranchID, req.CatalogItemID)
		if err != nil {
			return err
		}

		delta := req.ActualQuantity.Sub(record.CurrentQuantity)
		if delta.IsZero() {
			return nil
		}

		record, _, err = ApplyMovementWith(ctx, tenantID, Movement{
			BranchID:      req.BranchID,
			CatalogItemID: req.CatalogItemID,
			Quantity:      delta,
			EntryType:     inventory.EntryTypeAdjustment,
			Reference:     ref,
			Reason:        req.Reason,
			ActorID:       actorID,
		}, repos)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, record)
	response := ToStockResponse(record)
	return &response, nil
}

// RecordWaste writes off spoiled or damaged stock for a branch. Waste is
// clamped to the on-hand quantity instead of failing: the stock is gone
// either way, the ledger just records how much could still be written off.
func (s *Service) RecordWaste(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req RecordWasteRequest) ([]WasteResultItem, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Waste request must contain at least one item")
	}
	for _, item := range req.Items {
		if !item.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Waste quantity must be positive")
		}
		if _, err := s.requireTrackableItem(ctx, tenantID, item.CatalogItemID); err != nil {
			return nil, err
		}
	}

	results := make([]WasteResultItem, 0, len(req.Items))
	records := make([]*inventory.InventoryRecord, 0, len(req.Items))

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, item := range req.Items {
			// Records are created lazily by the first inbound movement. A
			// pair that never held stock has nothing to write off, so check
			// existence before the locked get-or-create rather than
			// materialize an empty record for it.
			if _, err := repos.RecordRepo().FindByBranchAndItem(ctx, tenantID, req.BranchID, item.CatalogItemID); err != nil {
				if !errors.Is(err, shared.ErrNotFound) {
					return err
				}
				results = append(results, WasteResultItem{
					CatalogItemID: item.CatalogItemID,
					Requested:     item.Quantity,
					Applied:       decimal.Zero,
					NewQuantity:   decimal.Zero,
				})
				continue
			}

			record, err := repos.RecordRepo().GetOrCreateForUpdate(ctx, tenantID, req.BranchID, item.CatalogItemID)
			if err != nil {
				return err
			}

			previous, current, applied, err := record.ApplyOutboundClamped(item.Quantity)
			if err != nil {
				return err
			}

			if applied.IsPositive() {
				entry, err := inventory.NewStockEntry(tenantID, req.BranchID, item.CatalogItemID, inventory.EntryTypeWaste, applied.Neg(), previous, current)
				if err != nil {
					return err
				}
				entry.WithCost(record.AverageCost)
				if item.Reason != "" {
					entry.WithReason(item.Reason)
				}
				if actorID != nil {
					entry.WithPerformedBy(*actorID)
				}
				if err := repos.EntryRepo().Append(ctx, entry); err != nil {
					return err
				}
				record.AddDomainEvent(inventory.NewStockMovementAppliedEvent(record, entry))
				if err := repos.RecordRepo().Save(ctx, record); err != nil {
					return err
				}
			}

			records = append(records, record)
			results = append(results, WasteResultItem{
				CatalogItemID: item.CatalogItemID,
				Requested:     item.Quantity,
				Applied:       applied,
				NewQuantity:   record.CurrentQuantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		s.publishDomainEvents(ctx, record)
	}

	return results, nil
}

// SetMinStockLevel updates the low-stock alert threshold for a branch-item pair
func (s *Service) SetMinStockLevel(ctx context.Context, tenantID uuid.UUID, req SetMinStockLevelRequest) (*StockResponse, error) {
	if _, err := s.requireTrackableItem(ctx, tenantID, req.CatalogItemID); err != nil {
		return nil, err
	}

	var record *inventory.InventoryRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.RecordRepo().GetOrCreateForUpdate(ctx, tenantID, req.BranchID, req.CatalogItemID)
		if err != nil {
			return err
		}
		if err := record.SetMinStockLevel(req.MinStockLevel); err != nil {
			return err
		}
		return repos.RecordRepo().Save(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	response := ToStockResponse(record)
	return &response, nil
}

// GetStock returns the current record for a branch-item pair
func (s *Service) GetStock(ctx context.Context, tenantID, branchID, catalogItemID uuid.UUID) (*StockResponse, error) {
	record, err := s.recordRepo.FindByBranchAndItem(ctx, tenantID, branchID, catalogItemID)
	if err != nil {
		return nil, err
	}
	response := ToStockResponse(record)
	return &response, nil
}

// ListStock returns all records for a branch
func (s *Service) ListStock(ctx context.Context, tenantID, branchID uuid.UUID, filter shared.Filter) ([]StockResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	records, err := s.recordRepo.FindAllForBranch(ctx, tenantID, branchID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.recordRepo.CountForBranch(ctx, tenantID, branchID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToStockResponses(records), total, nil
}

// ListBelowMinimum returns records under their alert threshold
func (s *Service) ListBelowMinimum(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]StockResponse, error) {
	records, err := s.recordRepo.FindBelowMinimum(ctx, tenantID, branchID)
	if err != nil {
		return nil, err
	}
	return ToStockResponses(records), nil
}

// StockHistory returns ledger entries matching the filter, newest first
func (s *Service) StockHistory(ctx context.Context, tenantID uuid.UUID, filter StockHistoryFilter) ([]StockEntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	entryFilter := inventory.EntryFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
		},
		BranchID:      filter.BranchID,
		CatalogItemID: filter.CatalogItemID,
		From:          filter.From,
		To:            filter.To,
	}
	if filter.EntryType != "" {
		entryType := inventory.EntryType(filter.EntryType)
		if !entryType.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_ENTRY_TYPE", "Invalid stock entry type")
		}
		entryFilter.EntryType = &entryType
	}

	entries, err := s.entryRepo.FindByFilter(ctx, tenantID, entryFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.entryRepo.CountByFilter(ctx, tenantID, entryFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStockEntryResponses(entries), total, nil
}

// ConsumptionSummary sums sale entries per catalog item over a date range
func (s *Service) ConsumptionSummary(ctx context.Context, tenantID uuid.UUID, filter ConsumptionSummaryFilter) ([]ConsumptionSummaryResponse, error) {
	if filter.To.Before(filter.From) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End of range cannot precede its start")
	}

	rows, err := s.entryRepo.ConsumptionSummary(ctx, tenantID, filter.BranchID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	return ToConsumptionSummaryResponses(rows), nil
}

// CheckLedger audits a record against the sum of its ledger entries
func (s *Service) CheckLedger(ctx context.Context, tenantID, branchID, catalogItemID uuid.UUID) (*LedgerCheckResponse, error) {
	record, err := s.recordRepo.FindByBranchAndItem(ctx, tenantID, branchID, catalogItemID)
	if err != nil {
		return nil, err
	}
	sum, err := s.entryRepo.SumQuantity(ctx, tenantID, branchID, catalogItemID)
	if err != nil {
		return nil, err
	}

	return &LedgerCheckResponse{
		BranchID:        branchID,
		CatalogItemID:   catalogItemID,
		CurrentQuantity: record.CurrentQuantity,
		LedgerSum:       sum,
		Consistent:      record.CurrentQuantity.Equal(sum),
	}, nil
}
