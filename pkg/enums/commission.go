package enums

import "fmt"

// CommissionPaymentStatus tracks how much of a monthly commission record the
// vendor has settled.
type CommissionPaymentStatus string

const (
	CommissionPaymentStatusPending    CommissionPaymentStatus = "pending"
	CommissionPaymentStatusProcessing CommissionPaymentStatus = "processing"
	CommissionPaymentStatusPartial    CommissionPaymentStatus = "partial"
	CommissionPaymentStatusCompleted  CommissionPaymentStatus = "completed"
	CommissionPaymentStatusDisputed   CommissionPaymentStatus = "disputed"
)

var validCommissionPaymentStatuses = []CommissionPaymentStatus{
	CommissionPaymentStatusPending,
	CommissionPaymentStatusProcessing,
	CommissionPaymentStatusPartial,
	CommissionPaymentStatusCompleted,
	CommissionPaymentStatusDisputed,
}

// String implements fmt.Stringer.
func (c CommissionPaymentStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CommissionPaymentStatus.
func (c CommissionPaymentStatus) IsValid() bool {
	for _, candidate := range validCommissionPaymentStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCommissionPaymentStatus converts raw input into a CommissionPaymentStatus.
func ParseCommissionPaymentStatus(value string) (CommissionPaymentStatus, error) {
	for _, candidate := range validCommissionPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid commission payment status %q", value)
}

// CommissionTransactionStatus is the lifecycle state of a single ledger
// transaction row.
type CommissionTransactionStatus string

const (
	CommissionTransactionStatusPending CommissionTransactionStatus = "pending"
	CommissionTransactionStatusPaid    CommissionTransactionStatus = "paid"
)

var validCommissionTransactionStatuses = []CommissionTransactionStatus{
	CommissionTransactionStatusPending,
	CommissionTransactionStatusPaid,
}

// String implements fmt.Stringer.
func (c CommissionTransactionStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CommissionTransactionStatus.
func (c CommissionTransactionStatus) IsValid() bool {
	for _, candidate := range validCommissionTransactionStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}
