package partition

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
)

func setupPartitionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  parent_order_id TEXT,
  partial_order_type TEXT NOT NULL DEFAULT 'none',
  order_type TEXT,
  status TEXT NOT NULL DEFAULT 'placed',
  status_update_reason TEXT,
  cancelled_by TEXT,
  buyer_email TEXT NOT NULL,
  vendor_store_id TEXT,
  vendor_order_id TEXT,
  needs_forwarding INTEGER NOT NULL DEFAULT 0,
  is_forwarded_to_vendor INTEGER NOT NULL DEFAULT 0,
  forwarded_at DATETIME,
  subtotal_cents INTEGER NOT NULL,
  shipping_cents INTEGER NOT NULL DEFAULT 0,
  total_cents INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  vendor_store_id TEXT,
  name TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  qty INTEGER NOT NULL,
  total_cents INTEGER NOT NULL,
  created_at DATETIME
);`
	for _, stmt := range []string{orders, items} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type dbTxRunner struct {
	db *gorm.DB
}

func (r dbTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newPartitionService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "partition-test", Output: io.Discard})
	svc, err := NewService(NewRepository(db), dbTxRunner{db: db}, logg)
	require.NoError(t, err)
	return svc
}

func seedOrder(t *testing.T, db *gorm.DB, number string, items []models.OrderLineItem) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: number,
		Status:      enums.OrderStatusPlaced,
		BuyerEmail:  "buyer@example.test",
	}
	for i := range items {
		items[i].OrderID = order.ID
		order.SubtotalCents += items[i].TotalCents
	}
	order.TotalCents = order.SubtotalCents
	require.NoError(t, db.Create(order).Error)
	if len(items) > 0 {
		require.NoError(t, db.Create(&items).Error)
	}
	return order
}

func TestPartitionMixedCart(t *testing.T) {
	db := setupPartitionTestDB(t)
	svc := newPartitionService(t, db)
	ctx := context.Background()

	vendorID := uuid.New()
	order := seedOrder(t, db, "1001", []models.OrderLineItem{
		adminItem(1500),
		adminItem(1500),
		vendorItem(vendorID, 3000),
		vendorItem(vendorID, 2000),
		vendorItem(vendorID, 2000),
	})

	result, err := svc.Partition(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderTypeMixed, result.OrderType)
	require.NotNil(t, result.AdminPart)
	assert.Equal(t, "1001-ADM", result.AdminPart.OrderNumber)
	assert.Equal(t, enums.PartialOrderTypeAdminPart, result.AdminPart.PartialOrderType)
	assert.Equal(t, 3000, result.AdminPart.SubtotalCents)
	assert.False(t, result.AdminPart.NeedsForwarding)

	require.Len(t, result.VendorParts, 1)
	vendorPart := result.VendorParts[0]
	assert.Equal(t, "1001-P1", vendorPart.OrderNumber)
	assert.Equal(t, enums.PartialOrderTypeVendorPart, vendorPart.PartialOrderType)
	assert.Equal(t, 7000, vendorPart.SubtotalCents)
	assert.True(t, vendorPart.NeedsForwarding)
	require.NotNil(t, vendorPart.VendorStoreID)
	assert.Equal(t, vendorID, *vendorPart.VendorStoreID)
	assert.Len(t, vendorPart.Items, 3)

	var parent models.Order
	require.NoError(t, db.Where("id = ?", order.ID).First(&parent).Error)
	require.NotNil(t, parent.OrderType)
	assert.Equal(t, enums.OrderTypeMixed, *parent.OrderType)
	assert.True(t, parent.NeedsForwarding)
}

func TestPartitionIsIdempotent(t *testing.T) {
	db := setupPartitionTestDB(t)
	svc := newPartitionService(t, db)
	ctx := context.Background()

	vendorID := uuid.New()
	order := seedOrder(t, db, "1002", []models.OrderLineItem{
		adminItem(1000),
		vendorItem(vendorID, 2000),
	})

	first, err := svc.Partition(ctx, order.ID)
	require.NoError(t, err)
	second, err := svc.Partition(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, first.AdminPart.ID, second.AdminPart.ID)
	require.Len(t, second.VendorParts, 1)
	assert.Equal(t, first.VendorParts[0].ID, second.VendorParts[0].ID)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).
		Where("parent_order_id = ?", order.ID).
		Count(&count).Error)
	assert.EqualValues(t, 2, count, "no duplicate parts on repeated partition")
}

func TestPartitionSingleGroupCreatesNoParts(t *testing.T) {
	db := setupPartitionTestDB(t)
	svc := newPartitionService(t, db)
	ctx := context.Background()

	vendorID := uuid.New()
	order := seedOrder(t, db, "1003", []models.OrderLineItem{
		vendorItem(vendorID, 4000),
	})

	result, err := svc.Partition(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderTypeVendorOnly, result.OrderType)
	assert.Nil(t, result.AdminPart)
	assert.Empty(t, result.VendorParts)

	var parent models.Order
	require.NoError(t, db.Where("id = ?", order.ID).First(&parent).Error)
	assert.True(t, parent.NeedsForwarding)
	require.NotNil(t, parent.VendorStoreID)
	assert.Equal(t, vendorID, *parent.VendorStoreID)
}

func TestPartitionEmptyCart(t *testing.T) {
	db := setupPartitionTestDB(t)
	svc := newPartitionService(t, db)

	order := seedOrder(t, db, "1004", nil)

	_, err := svc.Partition(context.Background(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestPartitionUnknownOrder(t *testing.T) {
	db := setupPartitionTestDB(t)
	svc := newPartitionService(t, db)

	_, err := svc.Partition(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRecategorizeBackfillsOrderType(t *testing.T) {
	db := setupPartitionTestDB(t)
	svc := newPartitionService(t, db)
	ctx := context.Background()

	vendorID := uuid.New()
	vendorOrder := seedOrder(t, db, "2001", []models.OrderLineItem{vendorItem(vendorID, 1000)})
	adminOrder := seedOrder(t, db, "2002", []models.OrderLineItem{adminItem(1000)})
	emptyOrder := seedOrder(t, db, "2003", nil)

	report, err := svc.Recategorize(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 3, report.Updated)
	assert.NoError(t, report.Failures)

	assertType := func(id uuid.UUID, want enums.OrderType) {
		var got models.Order
		require.NoError(t, db.Where("id = ?", id).First(&got).Error)
		require.NotNil(t, got.OrderType)
		assert.Equal(t, want, *got.OrderType)
	}
	assertType(vendorOrder.ID, enums.OrderTypeVendorOnly)
	assertType(adminOrder.ID, enums.OrderTypeAdminOnly)
	assertType(emptyOrder.ID, enums.OrderTypeLegacy)

	// second pass is a no-op: every order now carries a type
	again, err := svc.Recategorize(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Scanned)
}
