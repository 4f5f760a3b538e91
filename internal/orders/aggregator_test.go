package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
)

func TestDeriveParentStatus(t *testing.T) {
	cases := []struct {
		name     string
		children []enums.OrderStatus
		want     enums.OrderStatus
	}{
		{
			name:     "no parts",
			children: nil,
			want:     enums.OrderStatusPlaced,
		},
		{
			name:     "all cancelled or rejected",
			children: []enums.OrderStatus{enums.OrderStatusCancelled, enums.OrderStatusRejected},
			want:     enums.OrderStatusCancelled,
		},
		{
			name:     "customer cancellations count as cancelled",
			children: []enums.OrderStatus{enums.OrderStatusCancelledByCustomer, enums.OrderStatusCancelledByUser},
			want:     enums.OrderStatusCancelled,
		},
		{
			name:     "all delivered",
			children: []enums.OrderStatus{enums.OrderStatusDelivered, enums.OrderStatusDelivered},
			want:     enums.OrderStatusDelivered,
		},
		{
			name:     "shipped and delivered mix",
			children: []enums.OrderStatus{enums.OrderStatusShipped, enums.OrderStatusDelivered},
			want:     enums.OrderStatusShipped,
		},
		{
			name:     "cancelled and shipped mix falls back to placed",
			children: []enums.OrderStatus{enums.OrderStatusCancelled, enums.OrderStatusShipped},
			want:     enums.OrderStatusPlaced,
		},
		{
			name:     "cancelled and delivered mix falls back to placed",
			children: []enums.OrderStatus{enums.OrderStatusCancelled, enums.OrderStatusDelivered},
			want:     enums.OrderStatusPlaced,
		},
		{
			name:     "rejected and delivered mix falls back to placed",
			children: []enums.OrderStatus{enums.OrderStatusRejected, enums.OrderStatusDelivered, enums.OrderStatusDelivered},
			want:     enums.OrderStatusPlaced,
		},
		{
			name:     "cancelled sibling with processing part stays processing",
			children: []enums.OrderStatus{enums.OrderStatusCancelled, enums.OrderStatusProcessing},
			want:     enums.OrderStatusProcessing,
		},
		{
			name:     "any processing wins over placed",
			children: []enums.OrderStatus{enums.OrderStatusProcessing, enums.OrderStatusPlaced},
			want:     enums.OrderStatusProcessing,
		},
		{
			name:     "confirmed counts as processing",
			children: []enums.OrderStatus{enums.OrderStatusConfirmed, enums.OrderStatusPlaced},
			want:     enums.OrderStatusProcessing,
		},
		{
			name:     "all placed",
			children: []enums.OrderStatus{enums.OrderStatusPlaced, enums.OrderStatusPlaced},
			want:     enums.OrderStatusPlaced,
		},
		{
			name:     "unstarted part holds parent at placed",
			children: []enums.OrderStatus{enums.OrderStatusShipped, enums.OrderStatusCancelled, enums.OrderStatusPlaced},
			want:     enums.OrderStatusPlaced,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveParentStatus(tc.children))
		})
	}
}

func TestDeriveParentStatusIsIdempotent(t *testing.T) {
	children := []enums.OrderStatus{enums.OrderStatusShipped, enums.OrderStatusDelivered}
	first := DeriveParentStatus(children)
	assert.Equal(t, first, DeriveParentStatus(children))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from enums.OrderStatus
		to   enums.OrderStatus
		want bool
	}{
		{enums.OrderStatusPlaced, enums.OrderStatusConfirmed, true},
		{enums.OrderStatusPlaced, enums.OrderStatusProcessing, true},
		{enums.OrderStatusPlaced, enums.OrderStatusShipped, false},
		{enums.OrderStatusPlaced, enums.OrderStatusDelivered, false},
		{enums.OrderStatusConfirmed, enums.OrderStatusProcessing, true},
		{enums.OrderStatusConfirmed, enums.OrderStatusShipped, true},
		{enums.OrderStatusProcessing, enums.OrderStatusShipped, true},
		{enums.OrderStatusProcessing, enums.OrderStatusConfirmed, false},
		{enums.OrderStatusShipped, enums.OrderStatusDelivered, true},
		{enums.OrderStatusShipped, enums.OrderStatusProcessing, false},
		{enums.OrderStatusPlaced, enums.OrderStatusCancelled, true},
		{enums.OrderStatusShipped, enums.OrderStatusRejected, true},
		{enums.OrderStatusDelivered, enums.OrderStatusCancelled, false},
		{enums.OrderStatusCancelled, enums.OrderStatusConfirmed, false},
		{enums.OrderStatusCancelledByCustomer, enums.OrderStatusCancelled, false},
		{enums.OrderStatusPlaced, enums.OrderStatusPlaced, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, canTransition(tc.from, tc.to))
		})
	}
}
