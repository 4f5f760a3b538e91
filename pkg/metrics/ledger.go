package metrics

import "github.com/prometheus/client_golang/prometheus"

// LedgerMetrics counts commission ledger mutations.
type LedgerMetrics struct {
	accruals  prometheus.Counter
	reversals prometheus.Counter
	clamps    prometheus.Counter
	payments  prometheus.Counter
}

// NewLedgerMetrics registers the ledger counters on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	accruals := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "commission_accruals_total",
		Help: "Commission accruals recorded against monthly ledgers.",
	})
	reversals := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "commission_reversals_total",
		Help: "Commission reversals applied to monthly ledgers.",
	})
	clamps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "commission_reversal_clamps_total",
		Help: "Reversals that would have driven a ledger negative and were clamped.",
	})
	payments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "commission_payments_total",
		Help: "Vendor commission payments recorded.",
	})
	reg.MustRegister(accruals, reversals, clamps, payments)
	return &LedgerMetrics{
		accruals:  accruals,
		reversals: reversals,
		clamps:    clamps,
		payments:  payments,
	}
}

// IncAccrual increments the accrual counter.
func (l *LedgerMetrics) IncAccrual() {
	if l == nil || l.accruals == nil {
		return
	}
	l.accruals.Inc()
}

// IncReversal increments the reversal counter.
func (l *LedgerMetrics) IncReversal() {
	if l == nil || l.reversals == nil {
		return
	}
	l.reversals.Inc()
}

// IncClamp increments the clamped-reversal counter.
func (l *LedgerMetrics) IncClamp() {
	if l == nil || l.clamps == nil {
		return
	}
	l.clamps.Inc()
}

// IncPayment increments the payment counter.
func (l *LedgerMetrics) IncPayment() {
	if l == nil || l.payments == nil {
		return
	}
	l.payments.Inc()
}

// ForwardingMetrics counts vendor order forwards.
type ForwardingMetrics struct {
	forwards prometheus.Counter
	rejected prometheus.Counter
}

// NewForwardingMetrics registers the forwarding counters.
func NewForwardingMetrics(reg prometheus.Registerer) *ForwardingMetrics {
	if reg == nil {
		return &ForwardingMetrics{}
	}
	forwards := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vendor_orders_forwarded_total",
		Help: "Vendor orders created by the forwarding workflow.",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vendor_order_forward_conflicts_total",
		Help: "Forward attempts rejected because the unit was already forwarded.",
	})
	reg.MustRegister(forwards, rejected)
	return &ForwardingMetrics{forwards: forwards, rejected: rejected}
}

// IncForward increments the forwarded counter.
func (f *ForwardingMetrics) IncForward() {
	if f == nil || f.forwards == nil {
		return
	}
	f.forwards.Inc()
}

// IncConflict increments the already-forwarded conflict counter.
func (f *ForwardingMetrics) IncConflict() {
	if f == nil || f.rejected == nil {
		return
	}
	f.rejected.Inc()
}
