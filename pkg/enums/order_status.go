package enums

import "fmt"

// OrderStatus is the shared status vocabulary for orders, order parts and
// vendor orders.
type OrderStatus string

const (
	OrderStatusPlaced              OrderStatus = "placed"
	OrderStatusConfirmed           OrderStatus = "confirmed"
	OrderStatusProcessing          OrderStatus = "processing"
	OrderStatusShipped             OrderStatus = "shipped"
	OrderStatusDelivered           OrderStatus = "delivered"
	OrderStatusCancelled           OrderStatus = "cancelled"
	OrderStatusRejected            OrderStatus = "rejected"
	OrderStatusCancelledByCustomer OrderStatus = "cancelled_by_customer"
	OrderStatusCancelledByUser     OrderStatus = "cancelled_by_user"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusRejected,
	OrderStatusCancelledByCustomer,
	OrderStatusCancelledByUser,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsCustomerCancelled reports whether the status is one of the hard-locked
// customer cancellation terminal states. Once a unit enters one of these no
// further status mutation is allowed.
func (s OrderStatus) IsCustomerCancelled() bool {
	return s == OrderStatusCancelledByCustomer || s == OrderStatusCancelledByUser
}

// IsCancellation reports whether the status counts as a failed terminal state.
func (s OrderStatus) IsCancellation() bool {
	switch s {
	case OrderStatusCancelled, OrderStatusRejected,
		OrderStatusCancelledByCustomer, OrderStatusCancelledByUser:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further forward transitions exist.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s.IsCancellation()
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
