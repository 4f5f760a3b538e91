package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/internal/commission"
	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
)

func TestVendorOrderStatusJobReaggregatesParents(t *testing.T) {
	parentID := uuid.New()
	reader := &fakeForwardedReader{parents: []uuid.UUID{parentID}}
	aggregator := &fakeParentAggregator{}
	ledger := &fakeCommissionLedger{accrued: map[uuid.UUID]bool{}}
	job := newVendorOrderStatusJob(t, reader, aggregator, ledger)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(aggregator.parents) != 1 || aggregator.parents[0] != parentID {
		t.Fatalf("expected parent %s aggregated, got %v", parentID, aggregator.parents)
	}
}

func TestVendorOrderStatusJobBackfillsMissingAccruals(t *testing.T) {
	forwardedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	accrued := models.VendorOrder{
		ID:              uuid.New(),
		ParentOrderID:   uuid.New(),
		VendorStoreID:   uuid.New(),
		Status:          enums.OrderStatusProcessing,
		TotalCents:      7000,
		CommissionCents: 1400,
		ForwardedAt:     &forwardedAt,
	}
	missing := models.VendorOrder{
		ID:              uuid.New(),
		ParentOrderID:   uuid.New(),
		VendorStoreID:   uuid.New(),
		Status:          enums.OrderStatusProcessing,
		TotalCents:      5000,
		CommissionCents: 1000,
		ForwardedAt:     &forwardedAt,
	}
	reversed := models.VendorOrder{
		ID:                 uuid.New(),
		ParentOrderID:      uuid.New(),
		VendorStoreID:      uuid.New(),
		Status:             enums.OrderStatusCancelled,
		TotalCents:         3000,
		CommissionCents:    600,
		CommissionReversed: true,
	}
	reader := &fakeForwardedReader{orders: []models.VendorOrder{accrued, missing, reversed}}
	ledger := &fakeCommissionLedger{accrued: map[uuid.UUID]bool{accrued.ID: true}}
	job := newVendorOrderStatusJob(t, reader, &fakeParentAggregator{}, ledger)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ledger.accruals) != 1 {
		t.Fatalf("expected 1 backfilled accrual, got %d", len(ledger.accruals))
	}
	input := ledger.accruals[0]
	if input.VendorOrderID != missing.ID {
		t.Fatalf("unexpected vendor order: %s", input.VendorOrderID)
	}
	if input.CommissionCents != 1000 {
		t.Fatalf("unexpected commission: %d", input.CommissionCents)
	}
	if !input.OccurredAt.Equal(forwardedAt) {
		t.Fatalf("unexpected period: %s", input.OccurredAt)
	}
}

func TestVendorOrderStatusJobReissuesLostReversals(t *testing.T) {
	forwardedAt := time.Date(2026, 4, 2, 11, 0, 0, 0, time.UTC)
	lostReversal := models.VendorOrder{
		ID:                 uuid.New(),
		ParentOrderID:      uuid.New(),
		VendorStoreID:      uuid.New(),
		Status:             enums.OrderStatusCancelled,
		TotalCents:         4000,
		CommissionCents:    800,
		CommissionReversed: true,
		ForwardedAt:        &forwardedAt,
	}
	settled := models.VendorOrder{
		ID:                 uuid.New(),
		ParentOrderID:      uuid.New(),
		VendorStoreID:      uuid.New(),
		Status:             enums.OrderStatusCancelled,
		TotalCents:         2500,
		CommissionCents:    500,
		CommissionReversed: true,
	}
	reader := &fakeForwardedReader{orders: []models.VendorOrder{lostReversal, settled}}
	ledger := &fakeCommissionLedger{accrued: map[uuid.UUID]bool{lostReversal.ID: true}}
	job := newVendorOrderStatusJob(t, reader, &fakeParentAggregator{}, ledger)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ledger.reversals) != 1 {
		t.Fatalf("expected 1 re-issued reversal, got %d", len(ledger.reversals))
	}
	input := ledger.reversals[0]
	if input.VendorOrderID != lostReversal.ID {
		t.Fatalf("unexpected vendor order: %s", input.VendorOrderID)
	}
	if input.CommissionCents != 800 {
		t.Fatalf("unexpected commission: %d", input.CommissionCents)
	}
	if !input.OccurredAt.Equal(forwardedAt) {
		t.Fatalf("unexpected period: %s", input.OccurredAt)
	}
	if len(ledger.accruals) != 0 {
		t.Fatalf("reversed rows must not accrue, got %d accruals", len(ledger.accruals))
	}

	// A second run finds the pending transaction gone and stays quiet.
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(ledger.reversals) != 1 {
		t.Fatalf("reversal must not be re-issued twice, got %d", len(ledger.reversals))
	}
}

func TestVendorOrderStatusJobCollectsFailuresAndContinues(t *testing.T) {
	broken := models.VendorOrder{
		ID:            uuid.New(),
		ParentOrderID: uuid.New(),
		VendorStoreID: uuid.New(),
		Status:        enums.OrderStatusProcessing,
	}
	fine := models.VendorOrder{
		ID:              uuid.New(),
		ParentOrderID:   uuid.New(),
		VendorStoreID:   uuid.New(),
		Status:          enums.OrderStatusProcessing,
		TotalCents:      5000,
		CommissionCents: 1000,
	}
	reader := &fakeForwardedReader{orders: []models.VendorOrder{broken, fine}}
	ledger := &fakeCommissionLedger{
		accrued:   map[uuid.UUID]bool{},
		existsErr: map[uuid.UUID]error{broken.ID: errors.New("boom")},
	}
	job := newVendorOrderStatusJob(t, reader, &fakeParentAggregator{}, ledger)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected collected failure")
	}
	if len(ledger.accruals) != 1 {
		t.Fatalf("expected healthy row still backfilled, got %d accruals", len(ledger.accruals))
	}
}

func newVendorOrderStatusJob(t *testing.T, reader *fakeForwardedReader, aggregator *fakeParentAggregator, ledger *fakeCommissionLedger) Job {
	t.Helper()
	job, err := NewVendorOrderStatusJob(VendorOrderStatusJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Orders:     reader,
		Aggregator: aggregator,
		Ledger:     ledger,
	})
	if err != nil {
		t.Fatalf("NewVendorOrderStatusJob: %v", err)
	}
	return job
}

type fakeForwardedReader struct {
	orders  []models.VendorOrder
	parents []uuid.UUID
}

func (f *fakeForwardedReader) ListForwardedVendorOrders(_ context.Context, _ int) ([]models.VendorOrder, error) {
	return f.orders, nil
}

func (f *fakeForwardedReader) ListSplitParentIDs(_ context.Context, _ int) ([]uuid.UUID, error) {
	return f.parents, nil
}

type fakeParentAggregator struct {
	parents []uuid.UUID
}

func (f *fakeParentAggregator) AggregateParent(_ context.Context, parentID uuid.UUID) error {
	f.parents = append(f.parents, parentID)
	return nil
}

type fakeCommissionLedger struct {
	accrued   map[uuid.UUID]bool
	existsErr map[uuid.UUID]error
	accruals  []commission.AccrueInput
	reversals []commission.ReverseInput
}

func (f *fakeCommissionLedger) HasAccrualForVendorOrder(_ context.Context, vendorOrderID uuid.UUID) (bool, error) {
	if err := f.existsErr[vendorOrderID]; err != nil {
		return false, err
	}
	return f.accrued[vendorOrderID], nil
}

func (f *fakeCommissionLedger) Accrue(_ context.Context, input commission.AccrueInput) error {
	f.accruals = append(f.accruals, input)
	return nil
}

func (f *fakeCommissionLedger) Reverse(_ context.Context, input commission.ReverseInput) error {
	f.reversals = append(f.reversals, input)
	delete(f.accrued, input.VendorOrderID)
	return nil
}
