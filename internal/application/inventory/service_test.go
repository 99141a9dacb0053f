package inventory

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRecordRepo is an in-memory InventoryRecordRepository
type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[string]*inventory.InventoryRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]*inventory.InventoryRecord)}
}

func recordKey(tenantID, branchID, itemID uuid.UUID) string {
	return tenantID.String() + "|" + branchID.String() + "|" + itemID.String()
}

func (f *fakeRecordRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeRecordRepo) FindByBranchAndItem(_ context.Context, tenantID, branchID, itemID uuid.UUID) (*inventory.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.records[recordKey(tenantID, branchID, itemID)]; ok {
		return r, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeRecordRepo) FindByBranchAndItems(_ context.Context, tenantID, branchID uuid.UUID, itemIDs []uuid.UUID) ([]inventory.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]inventory.InventoryRecord, 0)
	for _, id := range itemIDs {
		if r, ok := f.records[recordKey(tenantID, branchID, id)]; ok {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeRecordRepo) GetOrCreateForUpdate(_ context.Context, tenantID, branchID, itemID uuid.UUID) (*inventory.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(tenantID, branchID, itemID)
	if r, ok := f.records[key]; ok {
		return r, nil
	}
	r, err := inventory.NewInventoryRecord(tenantID, branchID, itemID)
	if err != nil {
		return nil, err
	}
	f.records[key] = r
	return r, nil
}

func (f *fakeRecordRepo) FindAllForBranch(_ context.Context, tenantID, branchID uuid.UUID, _ shared.Filter) ([]inventory.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]inventory.InventoryRecord, 0)
	for key, r := range f.records {
		if strings.HasPrefix(key, tenantID.String()+"|"+branchID.String()) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeRecordRepo) FindBelowMinimum(_ context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]inventory.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]inventory.InventoryRecord, 0)
	for _, r := range f.records {
		if r.TenantID != tenantID {
			continue
		}
		if branchID != nil && r.BranchID != *branchID {
			continue
		}
		if r.IsBelowMinimum() {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeRecordRepo) Save(_ context.Context, record *inventory.InventoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[recordKey(record.TenantID, record.BranchID, record.CatalogItemID)] = record
	return nil
}

func (f *fakeRecordRepo) SaveWithLock(ctx context.Context, record *inventory.InventoryRecord, _ int) error {
	return f.Save(ctx, record)
}

func (f *fakeRecordRepo) CountForBranch(ctx context.Context, tenantID, branchID uuid.UUID, filter shared.Filter) (int64, error) {
	records, _ := f.FindAllForBranch(ctx, tenantID, branchID, filter)
	return int64(len(records)), nil
}

// fakeEntryRepo is an in-memory append-only StockEntryRepository
type fakeEntryRepo struct {
	mu      sync.Mutex
	entries []inventory.StockEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{}
}

func (f *fakeEntryRepo) Append(_ context.Context, entry *inventory.StockEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeEntryRepo) AppendAll(ctx context.Context, entries []*inventory.StockEntry) error {
	for _, e := range entries {
		if err := f.Append(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeEntryRepo) matches(e *inventory.StockEntry, tenantID uuid.UUID, filter inventory.EntryFilter) bool {
	if e.TenantID != tenantID {
		return false
	}
	if filter.BranchID != nil && e.BranchID != *filter.BranchID {
		return false
	}
	if filter.CatalogItemID != nil && e.CatalogItemID != *filter.CatalogItemID {
		return false
	}
	if filter.EntryType != nil && e.EntryType != *filter.EntryType {
		return false
	}
	if filter.From != nil && e.EntryDate.Before(*filter.From) {
		return false
	}
	if filter.To != nil && e.EntryDate.After(*filter.To) {
		return false
	}
	return true
}

func (f *fakeEntryRepo) FindByFilter(_ context.Context, tenantID uuid.UUID, filter inventory.EntryFilter) ([]inventory.StockEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]inventory.StockEntry, 0)
	for idx := range f.entries {
		if f.matches(&f.entries[idx], tenantID, filter) {
			result = append(result, f.entries[idx])
		}
	}
	return result, nil
}

func (f *fakeEntryRepo) CountByFilter(ctx context.Context, tenantID uuid.UUID, filter inventory.EntryFilter) (int64, error) {
	entries, _ := f.FindByFilter(ctx, tenantID, filter)
	return int64(len(entries)), nil
}

func (f *fakeEntryRepo) FindByReference(_ context.Context, tenantID uuid.UUID, ref inventory.MovementRef) ([]inventory.StockEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]inventory.StockEntry, 0)
	for _, e := range f.entries {
		if e.TenantID == tenantID && e.Reference == ref {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeEntryRepo) SumQuantity(_ context.Context, tenantID, branchID, itemID uuid.UUID) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := decimal.Zero
	for _, e := range f.entries {
		if e.TenantID == tenantID && e.BranchID == branchID && e.CatalogItemID == itemID {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum, nil
}

func (f *fakeEntryRepo) ConsumptionSummary(_ context.Context, tenantID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]inventory.ConsumptionRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byItem := make(map[uuid.UUID]*inventory.ConsumptionRow)
	order := make([]uuid.UUID, 0)
	for _, e := range f.entries {
		if e.TenantID != tenantID || e.EntryType != inventory.EntryTypeSale {
			continue
		}
		if branchID != nil && e.BranchID != *branchID {
			continue
		}
		if e.EntryDate.Before(from) || e.EntryDate.After(to) {
			continue
		}
		row, ok := byItem[e.CatalogItemID]
		if !ok {
			row = &inventory.ConsumptionRow{CatalogItemID: e.CatalogItemID}
			byItem[e.CatalogItemID] = row
			order = append(order, e.CatalogItemID)
		}
		row.TotalQuantity = row.TotalQuantity.Add(e.Quantity.Abs())
		row.TotalCost = row.TotalCost.Add(e.TotalCost)
		row.EntryCount++
	}
	result := make([]inventory.ConsumptionRow, 0, len(order))
	for _, id := range order {
		result = append(result, *byItem[id])
	}
	return result, nil
}

// fakeCatalogRepo is an in-memory CatalogItemRepository
type fakeCatalogRepo struct {
	items map[uuid.UUID]*catalog.CatalogItem
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{items: make(map[uuid.UUID]*catalog.CatalogItem)}
}

func (f *fakeCatalogRepo) add(item *catalog.CatalogItem) {
	f.items[item.ID] = item
}

func (f *fakeCatalogRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.CatalogItem, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCatalogRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.CatalogItem, error) {
	if item, ok := f.items[id]; ok && item.TenantID == tenantID {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCatalogRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.CatalogItem, error) {
	result := make([]catalog.CatalogItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := f.items[id]; ok && item.TenantID == tenantID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (f *fakeCatalogRepo) FindByCode(_ context.Context, tenantID uuid.UUID, code string) (*catalog.CatalogItem, error) {
	for _, item := range f.items {
		if item.TenantID == tenantID && item.Code == code {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCatalogRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]catalog.CatalogItem, error) {
	result := make([]catalog.CatalogItem, 0)
	for _, item := range f.items {
		if item.TenantID == tenantID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (f *fakeCatalogRepo) FindByKind(_ context.Context, tenantID uuid.UUID, kind catalog.ItemKind, _ shared.Filter) ([]catalog.CatalogItem, error) {
	result := make([]catalog.CatalogItem, 0)
	for _, item := range f.items {
		if item.TenantID == tenantID && item.Kind == kind {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (f *fakeCatalogRepo) Save(_ context.Context, item *catalog.CatalogItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeCatalogRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	items, _ := f.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(items)), nil
}

func (f *fakeCatalogRepo) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	_, err := f.FindByCode(ctx, tenantID, code)
	if err == shared.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

type serviceFixture struct {
	service    *Service
	recordRepo *fakeRecordRepo
	entryRepo  *fakeEntryRepo
	catalog    *fakeCatalogRepo
	tenantID   uuid.UUID
	branchID   uuid.UUID
	flour      *catalog.CatalogItem
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	tenantID := uuid.New()
	recordRepo := newFakeRecordRepo()
	entryRepo := newFakeEntryRepo()
	catalogRepo := newFakeCatalogRepo()

	flour, err := catalog.NewCatalogItem(tenantID, "FLOUR", "Bread Flour", catalog.ItemKindIngredient, "kg")
	require.NoError(t, err)
	catalogRepo.add(flour)

	scope := NewNoOpTransactionScope(recordRepo, entryRepo)
	service := NewService(scope, recordRepo, entryRepo, catalogRepo)

	return &serviceFixture{
		service:    service,
		recordRepo: recordRepo,
		entryRepo:  entryRepo,
		catalog:    catalogRepo,
		tenantID:   tenantID,
		branchID:   uuid.New(),
		flour:      flour,
	}
}

func (fx *serviceFixture) addStock(t *testing.T, quantity, cost float64) {
	t.Helper()
	unitCost := decimal.NewFromFloat(cost)
	_, err := fx.service.AddStock(context.Background(), fx.tenantID, nil, AddStockRequest{
		BranchID:      fx.branchID,
		CatalogItemID: fx.flour.ID,
		Quantity:      decimal.NewFromFloat(quantity),
		UnitCost:      &unitCost,
	})
	require.NoError(t, err)
}

func TestService_AddStock(t *testing.T) {
	ctx := context.Background()

	t.Run("lazily creates the record and writes a purchase entry", func(t *testing.T) {
		fx := newServiceFixture(t)

		cost := decimal.NewFromFloat(2.50)
		resp, err := fx.service.AddStock(ctx, fx.tenantID, nil, AddStockRequest{
			BranchID:      fx.branchID,
			CatalogItemID: fx.flour.ID,
			Quantity:      decimal.NewFromInt(10),
			UnitCost:      &cost,
		})

		require.NoError(t, err)
		assert.Equal(t, "10", resp.CurrentQuantity.String())
		assert.Equal(t, "2.5", resp.AverageCost.String())

		entries, err := fx.entryRepo.FindByFilter(ctx, fx.tenantID, inventory.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, inventory.EntryTypePurchase, entries[0].EntryType)
		assert.Equal(t, "10", entries[0].Quantity.String())
		assert.Equal(t, "0", entries[0].PreviousQuantity.String())
		assert.Equal(t, "10", entries[0].NewQuantity.String())
	})

	t.Run("recomputes the weighted average across receipts", func(t *testing.T) {
		fx := newServiceFixture(t)
		fx.addStock(t, 100, 10)
		fx.addStock(t, 100, 20)

		resp, err := fx.service.GetStock(ctx, fx.tenantID, fx.branchID, fx.flour.ID)
		require.NoError(t, err)
		assert.Equal(t, "200", resp.CurrentQuantity.String())
		assert.Equal(t, "15", resp.AverageCost.String())
		assert.Equal(t, "20", resp.LastPurchasePrice.String())
	})

	t.Run("rejects an outbound entry type", func(t *testing.T) {
		fx := newServiceFixture(t)

		_, err := fx.service.AddStock(ctx, fx.tenantID, nil, AddStockRequest{
			BranchID:      fx.branchID,
			CatalogItemID: fx.flour.ID,
			Quantity:      decimal.NewFromInt(10),
			EntryType:     "sale",
		})

		require.Error(t, err)
	})

	t.Run("rejects untrackable items", func(t *testing.T) {
		fx := newServiceFixture(t)
		dish, err := catalog.NewCatalogItem(fx.tenantID, "LOAF", "Sourdough Loaf", catalog.ItemKindMenuItem, "pcs")
		require.NoError(t, err)
		fx.catalog.add(dish)

		_, err = fx.service.AddStock(ctx, fx.tenantID, nil, AddStockRequest{
			BranchID:      fx.branchID,
			CatalogItemID: dish.ID,
			Quantity:      decimal.NewFromInt(10),
		})

		require.Error(t, err)
		assert.Equal(t, shared.ErrNotTrackable, err)
	})
}

func TestService_RemoveStock(t *testing.T) {
	ctx := context.Background()

	t.Run("removes stock and records a sale entry at average cost", func(t *testing.T) {
		fx := newServiceFixture(t)
		fx.addStock(t, 10, 2)

		resp, err := fx.service.RemoveStock(ctx, fx.tenantID, nil, RemoveStockRequest{
			BranchID:      fx.branchID,
			CatalogItemID: fx.flour.ID,
			Quantity:      decimal.NewFromInt(4),
		})

		require.NoError(t, err)
		assert.Equal(t, "6", resp.CurrentQuantity.String())

		saleType := inventory.EntryTypeSale
		entries, err := fx.entryRepo.FindByFilter(ctx, fx.tenantID, inventory.EntryFilter{EntryType: &saleType})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "-4", entries[0].Quantity.String())
		assert.Equal(t, "2", entries[0].UnitCost.String())
		assert.Equal(t, "8", entries[0].TotalCost.String())
	})

	t.Run("fails with the full shortage and leaves the record unchanged", func(t *testing.T) {
		fx := newServiceFixture(t)
		fx.addStock(t, 10, 2)

		_, err := fx.service.RemoveStock(ctx, fx.tenantID, nil, RemoveStockRequest{
			BranchID:      fx.branchID,
			CatalogItemID: fx.flour.ID,
			Quantity:      decimal.NewFromInt(11),
		})

		require.Error(t, err)
		insufficient, ok := err.(*inventory.InsufficientStockError)
		require.True(t, ok)
		require.Len(t, insufficient.Shortages, 1)
		assert.Equal(t, "11", insufficient.Shortages[0].Required.String())
		assert.Equal(t, "10", insufficient.Shortages[0].Available.String())

		resp, err := fx.service.GetStock(ctx, fx.tenantID, fx.branchID, fx.flour.ID)
		require.NoError(t, err)
		assert.Equal(t, "10", resp.CurrentQuantity.String())

		saleType := inventory.EntryTypeSale
		count, err := fx.entryRepo.CountByFilter(ctx, fx.tenantID, inventory.EntryFilter{EntryType: &saleType})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestService_TransferStock(t *testing.T) {
	ctx := context.Background()

	t.Run("moves stock between branches with a shared reference", func(t *testing.T) {
		fx := newServiceFixture(t)
		fx.addStock(t, 10, 3)
		toBranch := uuid.New()

		resp, err := fx.service.TransferStock(ctx, fx.tenantID, nil, TransferStockRequest{
			FromBranchID:  fx.branchID,
			ToBranchID:    toBranch,
			CatalogItemID: fx.flour.ID,
			Quantity:      decimal.NewFromInt(4),
		})

		require.NoError(t, err)
		assert.Equal(t, "6", resp.From.CurrentQuantity.String())
		assert.Equal(t, "4", resp.To.CurrentQuantity.String())
		// receiving branch inherits the sender's average cost
		assert.Equal(t, "3", resp.To.AverageCost.String())

		entries, err := fx.entryRepo.FindByReference(ctx, fx.tenantID, inventory.TransferRef(resp.TransferID))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, inventory.EntryTypeTransferOut, entries[0].EntryType)
		assert.Equal(t, inventory.EntryTypeTransferIn, entries[1].EntryType)
	})

	t.Run("rejects a transfer exceeding source stock without touching the target", func(t *testing.T) {
		fx := newServiceFixture(t)
		fx.addStock(t, 5, 3)
		toBranch := uuid.New()

		_, err := fx.service.TransferStock(ctx, fx.tenantID, nil, TransferStockRequest{
			FromBranchID:  fx.branchID,
			ToBranchID:    toBranch,
			CatalogItemID: fx.flour.ID,
			Quantity:      decimal.NewFromInt(6),
		})

		require.Error(t, err)
		_, ok := err.(*inventory.InsufficientStockError)
		assert.True(t, ok)

		_, err = fx.service.GetStock(ctx, fx.tenantID, toBranch, fx.flour.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("rejects transfers to the same branch", func(t *testing.T) {
		fx := newServiceFixture(t)

		_, err := fx.service.TransferStock(ctx, fx.tenantID, nil, TransferStockRequest{
			FromBranchID:  fx.branchID,
			ToBranchID:    fx.branchID,
			CatalogItemID: fx.flour.ID,
			Quantity:      decimal.NewFromInt(1),
		})

		require.Error(t, err)
	})
}

func TestService_AdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("writes a signed adjustment entry for the delta", func(t *testing.T) {
		fx := newServiceFixture(t)
		fx.addStock(t, 10, 2)

		resp, err := fx.service.AdjustStock(ctx, fx.tenantID, nil, AdjustStockRequest{
			BranchID:       fx.branchID,
			CatalogItemID:  fx.flour.ID,
			ActualQuantity: decimal.NewFromFloat(7.5),
			Reason:         "monthly count",
		})

		require.NoError(t, err)
		assert.Equal(t, "7.5", resp.CurrentQuantity.String())

		adjType := inventory.EntryTypeAdjustment
		entries, err := fx.entryRepo.FindByFilter(ctx, fx.tenantID, inventory.EntryFilter{EntryType: &adjType})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "-2.5", entries[0].Quantity.String())
		assert.Equal(t, "monthly count", entries[0].Reason)
	})

	t.Run("adjusting upward works on an empty record", func(t *testing.T) {
		fx := newServiceFixture(t)

		resp, err := fx.service.AdjustStock(ctx, fx.tenantID, nil, AdjustStockRequest{
			BranchID:       fx.branchID,
			CatalogItemID:  fx.flour.ID,
			ActualQuantity: decimal.NewFromInt(3),
			Reason:         "initial count",
		})

		require.NoError(t, err)
		assert.Equal(t, "3", resp.CurrentQuantity.String())
	})

	t.Run("an exact match writes no entry", func(t *testing.T) {
		fx := newServiceFixture(t)
		fx.addStock(t, 10, 2)

		_, err := fx.service.AdjustStock(ctx, fx.tenantID, nil, AdjustStockRequest{
			BranchID:       fx.branchID,
			CatalogItemID:  fx.flour.ID,
			ActualQuantity: decimal.NewFromInt(10),
			Reason:         "count matched",
		})

		require.NoError(t, err)
		adjType := inventory.EntryTypeAdjustment
		count, err := fx.entryRepo.CountByFilter(ctx, fx.tenantID, inventory.EntryFilter{EntryType: &adjType})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestService_RecordWaste(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps waste to the on-hand quantity", func(t *testing.T) {
		fx := newServiceFixture(t)
		fx.addStock(t, 3, 2)

		results, err := fx.service.RecordWaste(ctx, fx.tenantID, nil, RecordWasteRequest{
			BranchID: fx.branchID,
			Items: []WasteItem{
				{CatalogItemID: fx.flour.ID, Quantity: decimal.NewFromInt(5), Reason: "spoiled"},
			},
		})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "5", results[0].Requested.String())
		assert.Equal(t, "3", results[0].Applied.String())
		assert.True(t, results[0].NewQuantity.IsZero())

		wasteType := inventory.EntryTypeWaste
		entries, err := fx.entryRepo.FindByFilter(ctx, fx.tenantID, inventory.EntryFilter{EntryType: &wasteType})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "-3", entries[0].Quantity.String())
	})

	t.Run("writes nothing for an item with zero stock", func(t *testing.T) {
		fx := newServiceFixture(t)

		results, err := fx.service.RecordWaste(ctx, fx.tenantID, nil, RecordWasteRequest{
			BranchID: fx.branchID,
			Items: []WasteItem{
				{CatalogItemID: fx.flour.ID, Quantity: decimal.NewFromInt(2)},
			},
		})

		require.NoError(t, err)
		assert.True(t, results[0].Applied.IsZero())

		wasteType := inventory.EntryTypeWaste
		count, err := fx.entryRepo.CountByFilter(ctx, fx.tenantID, inventory.EntryFilter{EntryType: &wasteType})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("never materializes a record for an unstocked pair", func(t *testing.T) {
		fx := newServiceFixture(t)

		results, err := fx.service.RecordWaste(ctx, fx.tenantID, nil, RecordWasteRequest{
			BranchID: fx.branchID,
			Items: []WasteItem{
				{CatalogItemID: fx.flour.ID, Quantity: decimal.NewFromInt(2), Reason: "spoiled"},
			},
		})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.True(t, results[0].Applied.IsZero())
		assert.True(t, results[0].NewQuantity.IsZero())

		// records appear on the first inbound movement only
		_, err = fx.service.GetStock(ctx, fx.tenantID, fx.branchID, fx.flour.ID)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.Empty(t, fx.recordRepo.records)
	})
}

func TestService_LedgerConsistency(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)

	fx.addStock(t, 100, 10)
	_, err := fx.service.RemoveStock(ctx, fx.tenantID, nil, RemoveStockRequest{
		BranchID:      fx.branchID,
		CatalogItemID: fx.flour.ID,
		Quantity:      decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	_, err = fx.service.AdjustStock(ctx, fx.tenantID, nil, AdjustStockRequest{
		BranchID:       fx.branchID,
		CatalogItemID:  fx.flour.ID,
		ActualQuantity: decimal.NewFromInt(65),
		Reason:         "count",
	})
	require.NoError(t, err)
	_, err = fx.service.RecordWaste(ctx, fx.tenantID, nil, RecordWasteRequest{
		BranchID: fx.branchID,
		Items:    []WasteItem{{CatalogItemID: fx.flour.ID, Quantity: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)

	check, err := fx.service.CheckLedger(ctx, fx.tenantID, fx.branchID, fx.flour.ID)
	require.NoError(t, err)
	assert.True(t, check.Consistent)
	assert.Equal(t, "60", check.CurrentQuantity.String())
	assert.Equal(t, "60", check.LedgerSum.String())
}

func TestService_ConsumptionSummary(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)
	fx.addStock(t, 100, 2)

	for i := 0; i < 3; i++ {
		_, err := fx.service.RemoveStock(ctx, fx.tenantID, nil, RemoveStockRequest{
			BranchID:      fx.branchID,
			CatalogItemID: fx.flour.ID,
			Quantity:      decimal.NewFromInt(5),
		})
		require.NoError(t, err)
	}

	rows, err := fx.service.ConsumptionSummary(ctx, fx.tenantID, ConsumptionSummaryFilter{
		From: time.Now().Add(-time.Hour),
		To:   time.Now().Add(time.Hour),
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "15", rows[0].TotalQuantity.String())
	assert.Equal(t, int64(3), rows[0].EntryCount)
}

func TestService_ListBelowMinimum(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)
	fx.addStock(t, 10, 2)

	_, err := fx.service.SetMinStockLevel(ctx, fx.tenantID, SetMinStockLevelRequest{
		BranchID:      fx.branchID,
		CatalogItemID: fx.flour.ID,
		MinStockLevel: decimal.NewFromInt(8),
	})
	require.NoError(t, err)

	low, err := fx.service.ListBelowMinimum(ctx, fx.tenantID, &fx.branchID)
	require.NoError(t, err)
	assert.Empty(t, low)

	_, err = fx.service.RemoveStock(ctx, fx.tenantID, nil, RemoveStockRequest{
		BranchID:      fx.branchID,
		CatalogItemID: fx.flour.ID,
		Quantity:      decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	low, err = fx.service.ListBelowMinimum(ctx, fx.tenantID, &fx.branchID)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.True(t, low[0].IsBelowMinimum)
}
