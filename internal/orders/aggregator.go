package orders

import (
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
)

// DeriveParentStatus computes a split parent's status from its parts.
// Priority, first match wins:
//  1. every part cancelled or rejected -> cancelled
//  2. every part delivered -> delivered
//  3. every part shipped or delivered -> shipped
//  4. any part processing or confirmed -> processing
//  5. any part still placed -> placed
//  6. otherwise -> placed
//
// Rules 2 and 3 are strict membership tests: a single cancelled part keeps
// the parent out of the delivered/shipped buckets.
func DeriveParentStatus(children []enums.OrderStatus) enums.OrderStatus {
	if len(children) == 0 {
		return enums.OrderStatusPlaced
	}

	allCancelled := true
	allDelivered := true
	allShippedOrDelivered := true
	anyProcessing := false
	anyPlaced := false

	for _, status := range children {
		if !status.IsCancellation() {
			allCancelled = false
		}
		if status != enums.OrderStatusDelivered {
			allDelivered = false
		}
		if status != enums.OrderStatusShipped && status != enums.OrderStatusDelivered {
			allShippedOrDelivered = false
		}
		if status == enums.OrderStatusProcessing || status == enums.OrderStatusConfirmed {
			anyProcessing = true
		}
		if status == enums.OrderStatusPlaced {
			anyPlaced = true
		}
	}

	switch {
	case allCancelled:
		return enums.OrderStatusCancelled
	case allDelivered:
		return enums.OrderStatusDelivered
	case allShippedOrDelivered:
		return enums.OrderStatusShipped
	case anyProcessing:
		return enums.OrderStatusProcessing
	case anyPlaced:
		return enums.OrderStatusPlaced
	default:
		return enums.OrderStatusPlaced
	}
}

// canTransition enforces the forward-only status machine. Cancellations are
// reachable from any non-terminal status; everything else moves one stage at
// a time.
func canTransition(from, to enums.OrderStatus) bool {
	if from == to {
		return false
	}
	if from.IsTerminal() {
		return false
	}
	if to.IsCancellation() {
		return true
	}

	switch to {
	case enums.OrderStatusConfirmed:
		return from == enums.OrderStatusPlaced
	case enums.OrderStatusProcessing:
		return from == enums.OrderStatusPlaced || from == enums.OrderStatusConfirmed
	case enums.OrderStatusShipped:
		return from == enums.OrderStatusConfirmed || from == enums.OrderStatusProcessing
	case enums.OrderStatusDelivered:
		return from == enums.OrderStatusShipped
	default:
		return false
	}
}
