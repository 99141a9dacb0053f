package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockInventoryRecordRepository creates a GormInventoryRecordRepository with a mocked SQL connection
func newMockInventoryRecordRepository(t *testing.T) (*GormInventoryRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInventoryRecordRepository(gormDB), mock, mockDB
}

func recordColumns() []string {
	return []string{
		"id", "tenant_id", "branch_id", "catalog_item_id",
		"current_quantity", "min_stock_level", "average_cost",
		"last_purchase_price", "version",
	}
}

func TestGormInventoryRecordRepository_FindByID(t *testing.T) {
	t.Run("finds existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		tenantID := uuid.New()
		branchID := uuid.New()
		itemID := uuid.New()

		rows := sqlmock.NewRows(recordColumns()).AddRow(
			recordID, tenantID, branchID, itemID,
			decimal.NewFromInt(100), decimal.NewFromInt(20), decimal.NewFromFloat(15.50),
			decimal.NewFromFloat(16.00), 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE id = \$1`).
			WithArgs(recordID, 1).
			WillReturnRows(rows)

		record, err := repo.FindByID(context.Background(), recordID)

		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.Equal(t, recordID, record.ID)
		assert.Equal(t, branchID, record.BranchID)
		assert.Equal(t, itemID, record.CatalogItemID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent record", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE id = \$1`).
			WithArgs(recordID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByID(context.Background(), recordID)

		assert.Error(t, err)
		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRecordRepository_FindByBranchAndItem(t *testing.T) {
	t.Run("finds record for branch-item pair", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		tenantID := uuid.New()
		branchID := uuid.New()
		itemID := uuid.New()

		rows := sqlmock.NewRows(recordColumns()).AddRow(
			recordID, tenantID, branchID, itemID,
			decimal.NewFromInt(50), decimal.Zero, decimal.NewFromFloat(10.00),
			decimal.NewFromFloat(10.00), 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE tenant_id = \$1 AND branch_id = \$2 AND catalog_item_id = \$3`).
			WithArgs(tenantID, branchID, itemID, 1).
			WillReturnRows(rows)

		record, err := repo.FindByBranchAndItem(context.Background(), tenantID, branchID, itemID)

		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.Equal(t, "50", record.CurrentQuantity.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no stock ever moved", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		branchID := uuid.New()
		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE tenant_id = \$1 AND branch_id = \$2 AND catalog_item_id = \$3`).
			WithArgs(tenantID, branchID, itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByBranchAndItem(context.Background(), tenantID, branchID, itemID)

		assert.Error(t, err)
		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRecordRepository_FindByBranchAndItems(t *testing.T) {
	t.Run("returns empty slice for empty input", func(t *testing.T) {
		repo, _, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		records, err := repo.FindByBranchAndItems(context.Background(), uuid.New(), uuid.New(), nil)

		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("bulk loads records for item IDs", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		branchID := uuid.New()
		itemA := uuid.New()
		itemB := uuid.New()

		rows := sqlmock.NewRows(recordColumns()).
			AddRow(uuid.New(), tenantID, branchID, itemA,
				decimal.NewFromInt(10), decimal.Zero, decimal.Zero, decimal.Zero, 1).
			AddRow(uuid.New(), tenantID, branchID, itemB,
				decimal.NewFromInt(20), decimal.Zero, decimal.Zero, decimal.Zero, 1)

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE tenant_id = \$1 AND branch_id = \$2 AND catalog_item_id IN \(\$3,\$4\)`).
			WithArgs(tenantID, branchID, itemA, itemB).
			WillReturnRows(rows)

		records, err := repo.FindByBranchAndItems(context.Background(), tenantID, branchID, []uuid.UUID{itemA, itemB})

		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRecordRepository_GetOrCreateForUpdate(t *testing.T) {
	t.Run("locks existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		tenantID := uuid.New()
		branchID := uuid.New()
		itemID := uuid.New()

		rows := sqlmock.NewRows(recordColumns()).AddRow(
			recordID, tenantID, branchID, itemID,
			decimal.NewFromInt(30), decimal.Zero, decimal.NewFromFloat(5.00),
			decimal.NewFromFloat(5.00), 3,
		)

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE tenant_id = \$1 AND branch_id = \$2 AND catalog_item_id = \$3 .* FOR UPDATE`).
			WithArgs(tenantID, branchID, itemID, 1).
			WillReturnRows(rows)

		record, err := repo.GetOrCreateForUpdate(context.Background(), tenantID, branchID, itemID)

		assert.NoError(t, err)
		assert.Equal(t, recordID, record.ID)
		assert.Equal(t, 3, record.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates record lazily when none exists", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		branchID := uuid.New()
		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE tenant_id = \$1 AND branch_id = \$2 AND catalog_item_id = \$3 .* FOR UPDATE`).
			WithArgs(tenantID, branchID, itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		mock.ExpectExec(`INSERT INTO "inventory_records"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows := sqlmock.NewRows(recordColumns()).AddRow(
			uuid.New(), tenantID, branchID, itemID,
			decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, 1,
		)
		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE tenant_id = \$1 AND branch_id = \$2 AND catalog_item_id = \$3 .* FOR UPDATE`).
			WithArgs(tenantID, branchID, itemID, 1).
			WillReturnRows(rows)

		record, err := repo.GetOrCreateForUpdate(context.Background(), tenantID, branchID, itemID)

		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.True(t, record.CurrentQuantity.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRecordRepository_SaveWithLock(t *testing.T) {
	t.Run("saves record when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		record, err := inventory.NewInventoryRecord(tenantID, uuid.New(), uuid.New())
		require.NoError(t, err)

		_, _, err = record.ApplyInbound(decimal.NewFromInt(10), nil)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), record, record.Version-1)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version has moved", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		record, err := inventory.NewInventoryRecord(tenantID, uuid.New(), uuid.New())
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), record, 5)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRecordRepository_FindBelowMinimum(t *testing.T) {
	t.Run("finds records under their threshold", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		branchID := uuid.New()

		rows := sqlmock.NewRows(recordColumns()).AddRow(
			uuid.New(), tenantID, branchID, uuid.New(),
			decimal.NewFromInt(3), decimal.NewFromInt(10), decimal.Zero, decimal.Zero, 1,
		)

		// the first Where group is parenthesized once the branch filter is chained on
		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE \(tenant_id = \$1 AND min_stock_level > 0 AND current_quantity < min_stock_level\) AND branch_id = \$2 ORDER BY current_quantity`).
			WithArgs(tenantID, branchID).
			WillReturnRows(rows)

		records, err := repo.FindBelowMinimum(context.Background(), tenantID, &branchID)

		assert.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].IsBelowMinimum())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scans every branch when none is given", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		rows := sqlmock.NewRows(recordColumns()).AddRow(
			uuid.New(), tenantID, uuid.New(), uuid.New(),
			decimal.NewFromInt(1), decimal.NewFromInt(5), decimal.Zero, decimal.Zero, 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE tenant_id = \$1 AND min_stock_level > 0 AND current_quantity < min_stock_level ORDER BY current_quantity`).
			WithArgs(tenantID).
			WillReturnRows(rows)

		records, err := repo.FindBelowMinimum(context.Background(), tenantID, nil)

		assert.NoError(t, err)
		require.Len(t, records, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
