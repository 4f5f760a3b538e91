package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
)

// Restorer returns stock to the shelf when an order unit is cancelled or
// rejected. Failures are non-fatal to callers; they log and continue.
type Restorer interface {
	Restore(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error
}

type restorer struct {
	db *gorm.DB
}

// NewRestorer exposes the default stock restore implementation.
func NewRestorer(db *gorm.DB) Restorer {
	return &restorer{db: db}
}

// Restore moves qty units back to available stock in a single statement.
// Reserved stock never goes below zero.
func (r *restorer) Restore(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	db := tx
	if db == nil {
		db = r.db
	}
	if db == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "database required for stock restore")
	}

	res := db.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET available_qty = available_qty + ?,
			reserved_qty = CASE WHEN reserved_qty - ? < 0 THEN 0 ELSE reserved_qty - ? END,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ?
	`, qty, qty, qty, productID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "restore inventory")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return nil
}
