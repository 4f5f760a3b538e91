package commission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
	"github.com/jcastellanos-dev/mercata-backend/pkg/metrics"
	"github.com/jcastellanos-dev/mercata-backend/pkg/outbox"
	"github.com/jcastellanos-dev/mercata-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service is the only writer of the monthly commission ledger. Every
// mutation is an atomic upsert-with-increment so concurrent forwards and
// cancellations for the same vendor never produce lost updates.
type Service interface {
	Accrue(ctx context.Context, input AccrueInput) error
	Reverse(ctx context.Context, input ReverseInput) error
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.MonthlyCommissionRecord, error)
	VendorSummary(ctx context.Context, vendorStoreID uuid.UUID) (*VendorSummary, error)
	MonthlyRecord(ctx context.Context, vendorStoreID uuid.UUID, month, year int) (*models.MonthlyCommissionRecord, error)
	Quote(ctx context.Context, vendorStoreID uuid.UUID, totalCents int) (Breakdown, error)
	HasAccrualForVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) (bool, error)
}

// RecordPaymentInput captures an admin-entered vendor payment.
type RecordPaymentInput struct {
	VendorStoreID uuid.UUID
	Month         int
	Year          int
	AmountCents   int
	Method        string
	Notes         *string
	AdminUserID   uuid.UUID
}

// VendorSummary is the read-only aggregation exposed to vendor reporting.
type VendorSummary struct {
	VendorStoreID          uuid.UUID                        `json:"vendor_store_id"`
	TotalOrders            int                              `json:"total_orders"`
	TotalSalesCents        int                              `json:"total_sales_cents"`
	TotalCommissionCents   int                              `json:"total_commission_cents"`
	PaidCommissionCents    int                              `json:"paid_commission_cents"`
	PendingCommissionCents int                              `json:"pending_commission_cents"`
	Months                 []models.MonthlyCommissionRecord `json:"months"`
}

type service struct {
	repo        Repository
	tx          txRunner
	outbox      outboxPublisher
	logg        *logger.Logger
	metrics     *metrics.LedgerMetrics
	ratePercent decimal.Decimal
}

// NewService wires the ledger service with its collaborators. The rate is
// the global commission percentage; per-vendor overrides only apply on the
// Quote path.
func NewService(repo Repository, tx txRunner, ob outboxPublisher, logg *logger.Logger, m *metrics.LedgerMetrics, ratePercent decimal.Decimal) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("commission repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ob == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		tx:          tx,
		outbox:      ob,
		logg:        logg,
		metrics:     m,
		ratePercent: ratePercent,
	}, nil
}

func (s *service) Accrue(ctx context.Context, input AccrueInput) error {
	if input.VendorStoreID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor store id required")
	}
	if input.VendorOrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor order id required")
	}
	if input.CommissionCents < 0 || input.OrderCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amounts must not be negative")
	}
	if input.OccurredAt.IsZero() {
		input.OccurredAt = time.Now().UTC()
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		record, err := repo.Accrue(ctx, input)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "accrue commission")
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventCommissionAccrued,
			AggregateType: enums.AggregateCommissionRecord,
			AggregateID:   record.ID,
			Version:       1,
			Data: payloads.CommissionAccruedEvent{
				VendorStoreID:   input.VendorStoreID,
				OrderID:         input.OrderID,
				VendorOrderID:   input.VendorOrderID,
				OrderCents:      input.OrderCents,
				CommissionCents: input.CommissionCents,
				Month:           record.Month,
				Year:            record.Year,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return err
	}
	s.metrics.IncAccrual()
	return nil
}

func (s *service) Reverse(ctx context.Context, input ReverseInput) error {
	if input.VendorStoreID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor store id required")
	}
	if input.VendorOrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor order id required")
	}
	if input.OccurredAt.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "accrual date required for reversal")
	}

	var clamped bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		before, err := repo.FindRecord(ctx, input.VendorStoreID, int(input.OccurredAt.Month()), input.OccurredAt.Year())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no commission record for period")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commission record")
		}
		clamped = before.TotalCommissionCents < input.CommissionCents ||
			before.TotalSalesCents < input.OrderCents

		record, err := repo.Reverse(ctx, input)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reverse commission")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventCommissionReversed,
			AggregateType: enums.AggregateCommissionRecord,
			AggregateID:   record.ID,
			Version:       1,
			Data: payloads.CommissionReversedEvent{
				VendorStoreID:   input.VendorStoreID,
				VendorOrderID:   input.VendorOrderID,
				OrderCents:      input.OrderCents,
				CommissionCents: input.CommissionCents,
				Month:           record.Month,
				Year:            record.Year,
				Clamped:         clamped,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return err
	}
	if clamped {
		lctx := s.logg.WithFields(ctx, map[string]any{
			"vendor_store_id": input.VendorStoreID.String(),
			"vendor_order_id": input.VendorOrderID.String(),
		})
		s.logg.Warn(lctx, "commission reversal clamped at zero")
		s.metrics.IncClamp()
	}
	s.metrics.IncReversal()
	return nil
}

func (s *service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.MonthlyCommissionRecord, error) {
	if input.VendorStoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor store id required")
	}
	if input.Month < 1 || input.Month > 12 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")
	}
	if input.Year < 2000 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid year")
	}
	if input.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}
	if strings.TrimSpace(input.Method) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method required")
	}
	if input.AdminUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin user id required")
	}

	var updated *models.MonthlyCommissionRecord
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.FindRecord(ctx, input.VendorStoreID, input.Month, input.Year)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no commission accrued for period")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commission record")
		}

		payment := &models.CommissionPayment{
			AmountCents: input.AmountCents,
			Method:      input.Method,
			Notes:       input.Notes,
			AdminUserID: input.AdminUserID,
			PaidAt:      time.Now().UTC(),
		}
		updated, err = repo.AddPayment(ctx, record.ID, payment)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record commission payment")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventCommissionPaymentRecorded,
			AggregateType: enums.AggregateCommissionRecord,
			AggregateID:   updated.ID,
			Version:       1,
			Data: payloads.CommissionPaymentRecordedEvent{
				VendorStoreID: input.VendorStoreID,
				RecordID:      updated.ID,
				AmountCents:   input.AmountCents,
				Method:        input.Method,
				Month:         updated.Month,
				Year:          updated.Year,
				PaymentStatus: updated.PaymentStatus,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncPayment()
	return updated, nil
}

// VendorSummary aggregates the vendor's ledger records. Totals for sales and
// commission come from the vendor orders' explicit fields, which win over
// any rate-based recomputation; paid and pending come from the ledger.
func (s *service) VendorSummary(ctx context.Context, vendorStoreID uuid.UUID) (*VendorSummary, error) {
	if vendorStoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor store id required")
	}

	records, err := s.repo.ListRecordsByVendor(ctx, vendorStoreID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list commission records")
	}
	totals, err := s.repo.VendorOrderTotals(ctx, vendorStoreID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate vendor orders")
	}

	summary := &VendorSummary{
		VendorStoreID:        vendorStoreID,
		TotalOrders:          totals.OrderCount,
		TotalSalesCents:      totals.TotalSalesCents,
		TotalCommissionCents: totals.TotalCommissionCents,
		Months:               records,
	}
	for _, record := range records {
		summary.PaidCommissionCents += record.PaidCommissionCents
		summary.PendingCommissionCents += record.PendingCommissionCents
	}
	return summary, nil
}

func (s *service) MonthlyRecord(ctx context.Context, vendorStoreID uuid.UUID, month, year int) (*models.MonthlyCommissionRecord, error) {
	if vendorStoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor store id required")
	}
	if month < 1 || month > 12 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")
	}
	record, err := s.repo.FindRecord(ctx, vendorStoreID, month, year)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no commission record for period")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commission record")
	}
	return record, nil
}

// Quote computes the commission for an order amount, consulting the vendor's
// rate override when one is configured. Forwarding does not use this path;
// it always applies the global rate.
func (s *service) Quote(ctx context.Context, vendorStoreID uuid.UUID, totalCents int) (Breakdown, error) {
	if vendorStoreID == uuid.Nil {
		return Breakdown{}, pkgerrors.New(pkgerrors.CodeValidation, "vendor store id required")
	}
	if totalCents < 0 {
		return Breakdown{}, pkgerrors.New(pkgerrors.CodeValidation, "total must not be negative")
	}

	store, err := s.repo.FindStore(ctx, vendorStoreID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return Breakdown{}, pkgerrors.New(pkgerrors.CodeNotFound, "vendor store not found")
		}
		return Breakdown{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor store")
	}
	return Calculate(totalCents, s.ratePercent, store.CommissionRatePercent), nil
}

func (s *service) HasAccrualForVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) (bool, error) {
	if vendorOrderID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "vendor order id required")
	}
	return s.repo.HasTransactionForVendorOrder(ctx, vendorOrderID)
}
