package enums

// OutboxEventType is the canonical event_type stored in outbox_events.
type OutboxEventType string

const (
	EventOrderStatusChanged        OutboxEventType = "order_status_changed"
	EventVendorOrderForwarded      OutboxEventType = "vendor_order_forwarded"
	EventCommissionAccrued         OutboxEventType = "commission_accrued"
	EventCommissionReversed        OutboxEventType = "commission_reversed"
	EventCommissionPaymentRecorded OutboxEventType = "commission_payment_recorded"
)

var validOutboxEventTypes = []OutboxEventType{
	EventOrderStatusChanged,
	EventVendorOrderForwarded,
	EventCommissionAccrued,
	EventCommissionReversed,
	EventCommissionPaymentRecorded,
}

// IsValid reports whether the value is a known OutboxEventType.
func (o OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// OutboxDLQErrorReason marks why an outbox row was parked in the DLQ.
type OutboxDLQErrorReason string

const (
	OutboxDLQReasonMaxAttempts  OutboxDLQErrorReason = "max_attempts"
	OutboxDLQReasonNonRetryable OutboxDLQErrorReason = "non_retryable"
)

var validOutboxDLQErrorReasons = []OutboxDLQErrorReason{
	OutboxDLQReasonMaxAttempts,
	OutboxDLQReasonNonRetryable,
}

// IsValid reports whether the value is a known OutboxDLQErrorReason.
func (r OutboxDLQErrorReason) IsValid() bool {
	for _, candidate := range validOutboxDLQErrorReasons {
		if candidate == r {
			return true
		}
	}
	return false
}

// OutboxAggregateType names the entity an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder            OutboxAggregateType = "order"
	AggregateVendorOrder      OutboxAggregateType = "vendor_order"
	AggregateCommissionRecord OutboxAggregateType = "commission_record"
)
