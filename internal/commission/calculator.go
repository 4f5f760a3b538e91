package commission

import (
	"github.com/shopspring/decimal"
)

// Breakdown is the result of a commission computation for one order amount.
type Breakdown struct {
	RatePercent         decimal.Decimal
	CommissionCents     int
	VendorEarningsCents int
	UsedVendorOverride  bool
}

// Calculate computes the platform commission for an order total. The rate is
// a percentage (20 means 20%). When override is non-nil it replaces the
// global rate. Amounts round half-up to whole cents; the vendor earnings are
// the exact remainder so the two always sum to totalCents.
func Calculate(totalCents int, globalRatePercent decimal.Decimal, override *decimal.Decimal) Breakdown {
	rate := globalRatePercent
	used := false
	if override != nil {
		rate = *override
		used = true
	}
	if totalCents <= 0 {
		return Breakdown{RatePercent: rate, UsedVendorOverride: used}
	}

	commission := decimal.NewFromInt(int64(totalCents)).
		Mul(rate).
		Div(decimal.NewFromInt(100)).
		Round(0)
	cents := int(commission.IntPart())
	if cents < 0 {
		cents = 0
	}
	if cents > totalCents {
		cents = totalCents
	}
	return Breakdown{
		RatePercent:         rate,
		CommissionCents:     cents,
		VendorEarningsCents: totalCents - cents,
		UsedVendorOverride:  used,
	}
}
