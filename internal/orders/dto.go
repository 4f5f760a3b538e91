package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
)

// CreateOrderItemInput is one cart line on a new order. A non-nil
// VendorStoreID marks the line as vendor-fulfilled.
type CreateOrderItemInput struct {
	ProductID      *uuid.UUID `json:"product_id,omitempty" validate:"omitempty,uuid"`
	VendorStoreID  *uuid.UUID `json:"vendor_store_id,omitempty" validate:"omitempty,uuid"`
	Name           string     `json:"name" validate:"required"`
	UnitPriceCents int        `json:"unit_price_cents" validate:"gte=0"`
	Qty            int        `json:"qty" validate:"gt=0"`
}

// CreateOrderInput captures a checkout submission.
type CreateOrderInput struct {
	BuyerEmail    string                 `json:"buyer_email" validate:"required,email"`
	ShippingCents int                    `json:"shipping_cents" validate:"gte=0"`
	Items         []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusInput describes a requested status transition on an order or a
// vendor order.
type UpdateStatusInput struct {
	Status      enums.OrderStatus `json:"status" validate:"required"`
	Reason      *string           `json:"reason,omitempty"`
	ActorType   enums.ActorType   `json:"actor_type" validate:"required"`
	ActorUserID *uuid.UUID        `json:"actor_user_id,omitempty"`
}

// OrderSummary exposes the aggregated fields returned in the admin list.
type OrderSummary struct {
	ID              uuid.UUID              `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	Status          enums.OrderStatus      `json:"status"`
	OrderType       *enums.OrderType       `json:"order_type,omitempty"`
	PartialType     enums.PartialOrderType `json:"partial_order_type"`
	BuyerEmail      string                 `json:"buyer_email"`
	NeedsForwarding bool                   `json:"needs_forwarding"`
	TotalCents      int                    `json:"total_cents"`
	TotalItems      int                    `json:"total_items"`
	CreatedAt       time.Time              `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
