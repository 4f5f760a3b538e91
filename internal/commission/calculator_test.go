package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateGlobalRate(t *testing.T) {
	rate := decimal.NewFromInt(20)

	got := Calculate(7000, rate, nil)
	assert.Equal(t, 1400, got.CommissionCents)
	assert.Equal(t, 5600, got.VendorEarningsCents)
	assert.False(t, got.UsedVendorOverride)
}

func TestCalculateRoundsHalfUpToCents(t *testing.T) {
	rate := decimal.NewFromFloat(12.5)

	// 333 * 12.5% = 41.625 cents -> 42
	got := Calculate(333, rate, nil)
	assert.Equal(t, 42, got.CommissionCents)
	assert.Equal(t, 291, got.VendorEarningsCents)
}

func TestCalculateVendorOverrideWins(t *testing.T) {
	global := decimal.NewFromInt(20)
	override := decimal.NewFromInt(10)

	got := Calculate(7000, global, &override)
	assert.Equal(t, 700, got.CommissionCents)
	assert.True(t, got.UsedVendorOverride)
	assert.True(t, got.RatePercent.Equal(override))
}

func TestCalculateEdgeAmounts(t *testing.T) {
	rate := decimal.NewFromInt(20)

	zero := Calculate(0, rate, nil)
	assert.Equal(t, 0, zero.CommissionCents)
	assert.Equal(t, 0, zero.VendorEarningsCents)

	negative := Calculate(-500, rate, nil)
	assert.Equal(t, 0, negative.CommissionCents)

	full := Calculate(100, decimal.NewFromInt(100), nil)
	assert.Equal(t, 100, full.CommissionCents)
	assert.Equal(t, 0, full.VendorEarningsCents)
}
