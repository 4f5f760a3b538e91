package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
)

// Order is either a standalone customer order, the parent of a split mixed
// order, or one of its split-off parts (PartialOrderType identifies which).
// A part always points at a parent; the parent never points at another order.
type Order struct {
	ID                  uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber         string                 `gorm:"column:order_number;not null;uniqueIndex"`
	ParentOrderID       *uuid.UUID             `gorm:"column:parent_order_id;type:uuid"`
	PartialOrderType    enums.PartialOrderType `gorm:"column:partial_order_type;type:text;not null;default:'none'"`
	OrderType           *enums.OrderType       `gorm:"column:order_type;type:text"`
	Status              enums.OrderStatus      `gorm:"column:status;type:text;not null;default:'placed'"`
	StatusUpdateReason  *string                `gorm:"column:status_update_reason"`
	CancelledBy         *enums.ActorType       `gorm:"column:cancelled_by;type:text"`
	BuyerEmail          string                 `gorm:"column:buyer_email;not null"`
	VendorStoreID       *uuid.UUID             `gorm:"column:vendor_store_id;type:uuid"`
	VendorOrderID       *uuid.UUID             `gorm:"column:vendor_order_id;type:uuid"`
	NeedsForwarding     bool                   `gorm:"column:needs_forwarding;not null;default:false"`
	IsForwardedToVendor bool                   `gorm:"column:is_forwarded_to_vendor;not null;default:false"`
	ForwardedAt         *time.Time             `gorm:"column:forwarded_at"`
	SubtotalCents       int                    `gorm:"column:subtotal_cents;not null"`
	ShippingCents       int                    `gorm:"column:shipping_cents;not null;default:0"`
	TotalCents          int                    `gorm:"column:total_cents;not null"`
	Items               []OrderLineItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusHistory       []OrderStatusEvent     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
