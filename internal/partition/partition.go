package partition

import (
	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
)

// Grouping is the result of splitting a cart by fulfiller. Vendor items are
// keyed by vendor store; VendorIDs preserves first-seen order so derived
// artifacts get stable numbering.
type Grouping struct {
	AdminItems  []models.OrderLineItem
	VendorItems map[uuid.UUID][]models.OrderLineItem
	VendorIDs   []uuid.UUID
}

// HasAdminItems reports whether any item is platform-fulfilled.
func (g Grouping) HasAdminItems() bool {
	return len(g.AdminItems) > 0
}

// HasVendorItems reports whether any item carries a vendor reference.
func (g Grouping) HasVendorItems() bool {
	return len(g.VendorIDs) > 0
}

// GroupItems splits cart lines by fulfiller. Presence of a vendor reference
// on the line is the only thing that decides the group.
func GroupItems(items []models.OrderLineItem) Grouping {
	grouping := Grouping{VendorItems: make(map[uuid.UUID][]models.OrderLineItem)}
	for _, item := range items {
		if item.VendorStoreID == nil {
			grouping.AdminItems = append(grouping.AdminItems, item)
			continue
		}
		vendorID := *item.VendorStoreID
		if _, seen := grouping.VendorItems[vendorID]; !seen {
			grouping.VendorIDs = append(grouping.VendorIDs, vendorID)
		}
		grouping.VendorItems[vendorID] = append(grouping.VendorItems[vendorID], item)
	}
	return grouping
}

// Classify derives the order type from cart contents. An empty cart cannot
// be classified and fails validation.
func Classify(items []models.OrderLineItem) (enums.OrderType, error) {
	if len(items) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	grouping := GroupItems(items)
	switch {
	case grouping.HasAdminItems() && grouping.HasVendorItems():
		return enums.OrderTypeMixed, nil
	case grouping.HasVendorItems():
		return enums.OrderTypeVendorOnly, nil
	default:
		return enums.OrderTypeAdminOnly, nil
	}
}

// SubtotalCents sums the line totals of a group.
func SubtotalCents(items []models.OrderLineItem) int {
	total := 0
	for _, item := range items {
		total += item.TotalCents
	}
	return total
}
