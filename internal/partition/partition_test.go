package partition

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
)

func vendorItem(vendorID uuid.UUID, totalCents int) models.OrderLineItem {
	return models.OrderLineItem{
		ID:             uuid.New(),
		VendorStoreID:  &vendorID,
		Name:           "vendor item",
		UnitPriceCents: totalCents,
		Qty:            1,
		TotalCents:     totalCents,
	}
}

func adminItem(totalCents int) models.OrderLineItem {
	return models.OrderLineItem{
		ID:             uuid.New(),
		Name:           "admin item",
		UnitPriceCents: totalCents,
		Qty:            1,
		TotalCents:     totalCents,
	}
}

func TestGroupItemsSplitsByFulfiller(t *testing.T) {
	vendorA := uuid.New()
	vendorB := uuid.New()
	items := []models.OrderLineItem{
		adminItem(1000),
		vendorItem(vendorA, 2000),
		adminItem(500),
		vendorItem(vendorB, 3000),
		vendorItem(vendorA, 1500),
	}

	grouping := GroupItems(items)
	assert.Len(t, grouping.AdminItems, 2)
	assert.Len(t, grouping.VendorIDs, 2)
	assert.Equal(t, vendorA, grouping.VendorIDs[0], "first-seen vendor ordering")
	assert.Len(t, grouping.VendorItems[vendorA], 2)
	assert.Len(t, grouping.VendorItems[vendorB], 1)
	assert.Equal(t, 1500, SubtotalCents(grouping.AdminItems))
	assert.Equal(t, 3500, SubtotalCents(grouping.VendorItems[vendorA]))
}

func TestClassify(t *testing.T) {
	vendorID := uuid.New()

	tests := []struct {
		name  string
		items []models.OrderLineItem
		want  enums.OrderType
	}{
		{"admin only", []models.OrderLineItem{adminItem(100)}, enums.OrderTypeAdminOnly},
		{"vendor only", []models.OrderLineItem{vendorItem(vendorID, 100)}, enums.OrderTypeVendorOnly},
		{"mixed", []models.OrderLineItem{adminItem(100), vendorItem(vendorID, 100)}, enums.OrderTypeMixed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.items)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyEmptyCart(t *testing.T) {
	_, err := Classify(nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
