package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/domain/trade"
	"github.com/streetmart/backend/internal/infrastructure/persistence/models"
)

func newTwoLineOrder(t *testing.T, vendorID, supplierID, p1, p2 uuid.UUID) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(vendorID, supplierID)
	require.NoError(t, err)
	_, err = order.AddItem(p1, decimal.NewFromInt(2), decimal.NewFromInt(25))
	require.NoError(t, err)
	_, err = order.AddItem(p2, decimal.NewFromInt(3), decimal.NewFromInt(30))
	require.NoError(t, err)
	require.NoError(t, order.Place())
	return order
}

func TestGormOrderRepository_Place_Commit(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()

	repo := NewGormOrderRepository(gormDB)
	order := newTwoLineOrder(t, uuid.New(), uuid.New(), uuid.New(), uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "orders" SET "total_amount"=.*WHERE id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Place(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(140)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_Place_RollsBackOnItemFailure(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()

	repo := NewGormOrderRepository(gormDB)
	order := newTwoLineOrder(t, uuid.New(), uuid.New(), uuid.New(), uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnError(errors.New("insert or update on table violates foreign key constraint"))
	mock.ExpectRollback()

	err := repo.Place(context.Background(), order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order item 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_Place_RollsBackOnHeaderFailure(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()

	repo := NewGormOrderRepository(gormDB)
	order := newTwoLineOrder(t, uuid.New(), uuid.New(), uuid.New(), uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Place(context.Background(), order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order header")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_UpdateStatus_VersionConflict(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()

	repo := NewGormOrderRepository(gormDB)
	order := newTwoLineOrder(t, uuid.New(), uuid.New(), uuid.New(), uuid.New())
	supplier := identity.NewActor(order.SupplierID, "fresh_farm", identity.RoleSupplier)
	require.NoError(t, order.Transition(supplier, trade.OrderStatusAccepted))

	mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$\d+ AND version = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), order)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_Place_SQLite(t *testing.T) {
	db := newSQLiteDatabase(t)
	f := seedFixture(t, db.DB)
	repo := NewGormOrderRepository(db.DB)
	ctx := context.Background()

	order := newTwoLineOrder(t, f.vendor.ID, f.supplierA.ID, f.potato.ID, f.onion.ID)
	require.NoError(t, repo.Place(ctx, order))

	var orders, items int64
	require.NoError(t, db.DB.Model(&models.OrderModel{}).Count(&orders).Error)
	require.NoError(t, db.DB.Model(&models.OrderItemModel{}).Count(&items).Error)
	assert.Equal(t, int64(1), orders)
	assert.Equal(t, int64(2), items)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusPending, stored.Status)
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(140)), "got %s", stored.TotalAmount)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, 0, stored.Items[0].LineNo)
	assert.Equal(t, f.potato.ID, stored.Items[0].ProductID)
	assert.Equal(t, 1, stored.Items[1].LineNo)
	assert.Equal(t, f.onion.ID, stored.Items[1].ProductID)
}

func TestGormOrderRepository_Place_SQLite_LeavesNothingOnFailure(t *testing.T) {
	db := newSQLiteDatabase(t)
	f := seedFixture(t, db.DB)
	repo := NewGormOrderRepository(db.DB)

	// second line references a product that does not exist
	order := newTwoLineOrder(t, f.vendor.ID, f.supplierA.ID, f.potato.ID, uuid.New())
	require.Error(t, repo.Place(context.Background(), order))

	var orders, items int64
	require.NoError(t, db.DB.Model(&models.OrderModel{}).Count(&orders).Error)
	require.NoError(t, db.DB.Model(&models.OrderItemModel{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestGormOrderRepository_IndependentPlacements(t *testing.T) {
	db := newSQLiteDatabase(t)
	f := seedFixture(t, db.DB)
	repo := NewGormOrderRepository(db.DB)
	ctx := context.Background()

	first := newTwoLineOrder(t, f.vendor.ID, f.supplierA.ID, f.potato.ID, f.onion.ID)
	second := newTwoLineOrder(t, f.vendor.ID, f.supplierA.ID, f.potato.ID, f.onion.ID)
	require.NoError(t, repo.Place(ctx, first))
	require.NoError(t, repo.Place(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)

	var orders int64
	require.NoError(t, db.DB.Model(&models.OrderModel{}).Count(&orders).Error)
	assert.Equal(t, int64(2), orders)
}

func TestGormOrderRepository_UpdateStatus_SQLite(t *testing.T) {
	db := newSQLiteDatabase(t)
	f := seedFixture(t, db.DB)
	repo := NewGormOrderRepository(db.DB)
	ctx := context.Background()

	order := newTwoLineOrder(t, f.vendor.ID, f.supplierA.ID, f.potato.ID, f.onion.ID)
	require.NoError(t, repo.Place(ctx, order))

	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.Transition(f.supplierA.Actor(), trade.OrderStatusAccepted))
	require.NoError(t, repo.UpdateStatus(ctx, loaded))

	// a stale copy loses the race
	stale := *order
	stale.Items = nil
	require.NoError(t, stale.Transition(f.vendor.Actor(), trade.OrderStatusCancelled))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, &stale), shared.ErrConcurrencyConflict)

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusAccepted, reloaded.Status)
	assert.Equal(t, 2, reloaded.Version)
}

func TestGormOrderRepository_FindByID_NotFound(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormOrderRepository(db.DB)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
