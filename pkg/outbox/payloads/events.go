package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
)

// OrderStatusChangedEvent is emitted whenever an order, part or vendor order
// changes status. The notification and audit collaborators both consume it.
type OrderStatusChangedEvent struct {
	OrderID       uuid.UUID         `json:"order_id"`
	OrderNumber   string            `json:"order_number"`
	ParentOrderID *uuid.UUID        `json:"parent_order_id,omitempty"`
	VendorOrderID *uuid.UUID        `json:"vendor_order_id,omitempty"`
	BuyerEmail    string            `json:"buyer_email,omitempty"`
	OldStatus     enums.OrderStatus `json:"old_status"`
	NewStatus     enums.OrderStatus `json:"new_status"`
	Reason        string            `json:"reason,omitempty"`
}

// VendorOrderForwardedEvent carries the vendor forward notice.
type VendorOrderForwardedEvent struct {
	VendorOrderID   uuid.UUID `json:"vendor_order_id"`
	ParentOrderID   uuid.UUID `json:"parent_order_id"`
	OrderNumber     string    `json:"order_number"`
	VendorStoreID   uuid.UUID `json:"vendor_store_id"`
	VendorEmail     string    `json:"vendor_email,omitempty"`
	TotalCents      int       `json:"total_cents"`
	CommissionCents int       `json:"commission_cents"`
	ForwardedAt     time.Time `json:"forwarded_at"`
}

// CommissionAccruedEvent records one ledger accrual.
type CommissionAccruedEvent struct {
	VendorStoreID   uuid.UUID `json:"vendor_store_id"`
	OrderID         uuid.UUID `json:"order_id"`
	VendorOrderID   uuid.UUID `json:"vendor_order_id"`
	OrderCents      int       `json:"order_cents"`
	CommissionCents int       `json:"commission_cents"`
	Month           int       `json:"month"`
	Year            int       `json:"year"`
}

// CommissionReversedEvent records one ledger reversal, including whether the
// record had to be clamped at zero.
type CommissionReversedEvent struct {
	VendorStoreID   uuid.UUID `json:"vendor_store_id"`
	VendorOrderID   uuid.UUID `json:"vendor_order_id"`
	OrderCents      int       `json:"order_cents"`
	CommissionCents int       `json:"commission_cents"`
	Month           int       `json:"month"`
	Year            int       `json:"year"`
	Clamped         bool      `json:"clamped"`
}

// CommissionPaymentRecordedEvent records an admin-entered vendor payment.
type CommissionPaymentRecordedEvent struct {
	VendorStoreID uuid.UUID                     `json:"vendor_store_id"`
	RecordID      uuid.UUID                     `json:"record_id"`
	AmountCents   int                           `json:"amount_cents"`
	Method        string                        `json:"method"`
	Month         int                           `json:"month"`
	Year          int                           `json:"year"`
	PaymentStatus enums.CommissionPaymentStatus `json:"payment_status"`
}
