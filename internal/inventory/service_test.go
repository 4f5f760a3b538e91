package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	stmt := `
CREATE TABLE IF NOT EXISTS inventory_items (
  product_id TEXT PRIMARY KEY,
  available_qty INTEGER NOT NULL DEFAULT 0,
  reserved_qty INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(stmt).Error)
	return db
}

func TestRestoreMovesStockBack(t *testing.T) {
	db := setupInventoryTestDB(t)
	r := NewRestorer(db)
	ctx := context.Background()

	productID := uuid.New()
	require.NoError(t, db.Create(&models.InventoryItem{
		ProductID:    productID,
		AvailableQty: 2,
		ReservedQty:  5,
	}).Error)

	require.NoError(t, r.Restore(ctx, nil, productID, 3))

	var item models.InventoryItem
	require.NoError(t, db.Where("product_id = ?", productID).First(&item).Error)
	assert.Equal(t, 5, item.AvailableQty)
	assert.Equal(t, 2, item.ReservedQty)
}

func TestRestoreClampsReservedAtZero(t *testing.T) {
	db := setupInventoryTestDB(t)
	r := NewRestorer(db)
	ctx := context.Background()

	productID := uuid.New()
	require.NoError(t, db.Create(&models.InventoryItem{
		ProductID:    productID,
		AvailableQty: 0,
		ReservedQty:  1,
	}).Error)

	require.NoError(t, r.Restore(ctx, nil, productID, 4))

	var item models.InventoryItem
	require.NoError(t, db.Where("product_id = ?", productID).First(&item).Error)
	assert.Equal(t, 4, item.AvailableQty)
	assert.Equal(t, 0, item.ReservedQty)
}

func TestRestoreUnknownProduct(t *testing.T) {
	db := setupInventoryTestDB(t)
	r := NewRestorer(db)

	err := r.Restore(context.Background(), nil, uuid.New(), 1)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRestoreZeroQtyIsNoop(t *testing.T) {
	db := setupInventoryTestDB(t)
	r := NewRestorer(db)

	assert.NoError(t, r.Restore(context.Background(), nil, uuid.New(), 0))
}
