package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
)

// VendorOrder is the billable record produced when an admin forwards the
// vendor-fulfilled portion of an order to its vendor. Exactly one exists per
// (order, vendor) pair; the item snapshot is immutable after creation.
type VendorOrder struct {
	ID                 uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ParentOrderID      uuid.UUID         `gorm:"column:parent_order_id;type:uuid;not null;index"`
	OrderNumber        string            `gorm:"column:order_number;not null;uniqueIndex"`
	VendorStoreID      uuid.UUID         `gorm:"column:vendor_store_id;type:uuid;not null;index"`
	Status             enums.OrderStatus `gorm:"column:status;type:text;not null;default:'placed'"`
	CancelledBy        *enums.ActorType  `gorm:"column:cancelled_by;type:text"`
	ItemsSubtotalCents int               `gorm:"column:items_subtotal_cents;not null"`
	ShippingCents      int               `gorm:"column:shipping_cents;not null;default:0"`
	TotalCents         int               `gorm:"column:total_cents;not null"`
	CommissionCents    int               `gorm:"column:commission_cents;not null"`
	CommissionReversed bool              `gorm:"column:commission_reversed;not null;default:false"`
	IsForwardedByAdmin bool              `gorm:"column:is_forwarded_by_admin;not null;default:false"`
	ForwardedAt        *time.Time        `gorm:"column:forwarded_at"`
	AdminNotes         *string           `gorm:"column:admin_notes"`
	Items              []VendorOrderItem `gorm:"foreignKey:VendorOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
