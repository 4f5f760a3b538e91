package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/jcastellanos-dev/mercata-backend/internal/commission"
	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
)

const defaultReconcileBatch = 500

type forwardedOrderReader interface {
	ListForwardedVendorOrders(ctx context.Context, limit int) ([]models.VendorOrder, error)
	ListSplitParentIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
}

type parentAggregator interface {
	AggregateParent(ctx context.Context, parentID uuid.UUID) error
}

type commissionLedger interface {
	HasAccrualForVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) (bool, error)
	Accrue(ctx context.Context, input commission.AccrueInput) error
	Reverse(ctx context.Context, input commission.ReverseInput) error
}

// VendorOrderStatusJobParams configure the reconciliation job.
type VendorOrderStatusJobParams struct {
	Logger     *logger.Logger
	Orders     forwardedOrderReader
	Aggregator parentAggregator
	Ledger     commissionLedger
	BatchSize  int
}

// NewVendorOrderStatusJob builds the cron job that re-derives split parent
// statuses and repairs the ledger: accruals lost after a forward committed
// are re-issued, and reversals lost after a cancel committed are re-issued.
func NewVendorOrderStatusJob(params VendorOrderStatusJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders reader required")
	}
	if params.Aggregator == nil {
		return nil, fmt.Errorf("parent aggregator required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("commission ledger required")
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultReconcileBatch
	}
	return &vendorOrderStatusJob{
		logg:       params.Logger,
		orders:     params.Orders,
		aggregator: params.Aggregator,
		ledger:     params.Ledger,
		batchSize:  batchSize,
	}, nil
}

type vendorOrderStatusJob struct {
	logg       *logger.Logger
	orders     forwardedOrderReader
	aggregator parentAggregator
	ledger     commissionLedger
	batchSize  int
}

func (j *vendorOrderStatusJob) Name() string { return "vendor-order-status" }

func (j *vendorOrderStatusJob) Run(ctx context.Context) error {
	var errs []error
	if err := j.reaggregateParents(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := j.reconcileLedger(ctx); err != nil {
		errs = append(errs, err)
	}
	return multierr.Combine(errs...)
}

func (j *vendorOrderStatusJob) reaggregateParents(ctx context.Context) error {
	parentIDs, err := j.orders.ListSplitParentIDs(ctx, j.batchSize)
	if err != nil {
		return fmt.Errorf("list split parents: %w", err)
	}
	var failures error
	count := 0
	for _, parentID := range parentIDs {
		if err := j.aggregator.AggregateParent(ctx, parentID); err != nil {
			failures = multierr.Append(failures, fmt.Errorf("parent %s: %w", parentID, err))
			continue
		}
		count++
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": count})
	j.logg.Info(logCtx, "parent status reconciliation complete")
	return failures
}

func (j *vendorOrderStatusJob) reconcileLedger(ctx context.Context) error {
	vendorOrders, err := j.orders.ListForwardedVendorOrders(ctx, j.batchSize)
	if err != nil {
		return fmt.Errorf("list forwarded vendor orders: %w", err)
	}
	var failures error
	accrued := 0
	reversed := 0
	for _, vendorOrder := range vendorOrders {
		if vendorOrder.CommissionReversed {
			// The cancel committed with the reversed flag set; if the
			// pending accrual transaction is still on the record the
			// ledger reversal itself was lost and must be re-issued.
			exists, err := j.ledger.HasAccrualForVendorOrder(ctx, vendorOrder.ID)
			if err != nil {
				failures = multierr.Append(failures, fmt.Errorf("vendor order %s: %w", vendorOrder.ID, err))
				continue
			}
			if !exists {
				continue
			}
			if err := j.ledger.Reverse(ctx, commission.ReverseInput{
				VendorStoreID:   vendorOrder.VendorStoreID,
				VendorOrderID:   vendorOrder.ID,
				OrderCents:      vendorOrder.TotalCents,
				CommissionCents: vendorOrder.CommissionCents,
				OccurredAt:      accrualTime(vendorOrder),
			}); err != nil {
				failures = multierr.Append(failures, fmt.Errorf("vendor order %s: %w", vendorOrder.ID, err))
				continue
			}
			reversed++
			continue
		}
		if vendorOrder.Status.IsCancellation() {
			continue
		}
		exists, err := j.ledger.HasAccrualForVendorOrder(ctx, vendorOrder.ID)
		if err != nil {
			failures = multierr.Append(failures, fmt.Errorf("vendor order %s: %w", vendorOrder.ID, err))
			continue
		}
		if exists {
			continue
		}
		if err := j.ledger.Accrue(ctx, commission.AccrueInput{
			VendorStoreID:   vendorOrder.VendorStoreID,
			OrderID:         vendorOrder.ParentOrderID,
			VendorOrderID:   vendorOrder.ID,
			OrderCents:      vendorOrder.TotalCents,
			CommissionCents: vendorOrder.CommissionCents,
			OccurredAt:      accrualTime(vendorOrder),
		}); err != nil {
			failures = multierr.Append(failures, fmt.Errorf("vendor order %s: %w", vendorOrder.ID, err))
			continue
		}
		accrued++
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"accrued": accrued, "reversed": reversed})
	j.logg.Info(logCtx, "commission ledger reconciliation complete")
	return failures
}

func accrualTime(vendorOrder models.VendorOrder) time.Time {
	if vendorOrder.ForwardedAt != nil {
		return *vendorOrder.ForwardedAt
	}
	if !vendorOrder.CreatedAt.IsZero() {
		return vendorOrder.CreatedAt
	}
	return time.Now().UTC()
}
