package models

import (
	"time"

	"github.com/google/uuid"
)

// VendorOrderItem is the snapshot of one line item taken at forward time.
type VendorOrderItem struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorOrderID  uuid.UUID  `gorm:"column:vendor_order_id;type:uuid;not null;index"`
	ProductID      *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Name           string     `gorm:"column:name;not null"`
	UnitPriceCents int        `gorm:"column:unit_price_cents;not null"`
	Qty            int        `gorm:"column:qty;not null"`
	ItemTotalCents int        `gorm:"column:item_total_cents;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
