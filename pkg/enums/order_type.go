package enums

import "fmt"

// OrderType categorizes a parent order by who fulfills its items.
type OrderType string

const (
	OrderTypeAdminOnly  OrderType = "admin_only"
	OrderTypeVendorOnly OrderType = "vendor_only"
	OrderTypeMixed      OrderType = "mixed"
	OrderTypeLegacy     OrderType = "legacy"
)

var validOrderTypes = []OrderType{
	OrderTypeAdminOnly,
	OrderTypeVendorOnly,
	OrderTypeMixed,
	OrderTypeLegacy,
}

// String implements fmt.Stringer.
func (t OrderType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known OrderType.
func (t OrderType) IsValid() bool {
	for _, candidate := range validOrderTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// HasVendorItems reports whether orders of this type carry vendor-fulfilled items.
func (t OrderType) HasVendorItems() bool {
	return t == OrderTypeVendorOnly || t == OrderTypeMixed
}

// ParseOrderType converts raw input into an OrderType.
func ParseOrderType(value string) (OrderType, error) {
	for _, candidate := range validOrderTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order type %q", value)
}
