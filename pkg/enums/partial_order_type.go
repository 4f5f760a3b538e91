package enums

import "fmt"

// PartialOrderType marks whether an order row is a standalone order or a
// split-off part of a mixed order.
type PartialOrderType string

const (
	PartialOrderTypeNone       PartialOrderType = "none"
	PartialOrderTypeAdminPart  PartialOrderType = "admin_part"
	PartialOrderTypeVendorPart PartialOrderType = "vendor_part"
)

var validPartialOrderTypes = []PartialOrderType{
	PartialOrderTypeNone,
	PartialOrderTypeAdminPart,
	PartialOrderTypeVendorPart,
}

// String implements fmt.Stringer.
func (p PartialOrderType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PartialOrderType.
func (p PartialOrderType) IsValid() bool {
	for _, candidate := range validPartialOrderTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsPart reports whether the order is a split-off part of a parent order.
func (p PartialOrderType) IsPart() bool {
	return p == PartialOrderTypeAdminPart || p == PartialOrderTypeVendorPart
}

// ParsePartialOrderType converts raw input into a PartialOrderType.
func ParsePartialOrderType(value string) (PartialOrderType, error) {
	for _, candidate := range validPartialOrderTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid partial order type %q", value)
}
