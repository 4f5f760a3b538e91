package commission

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
)

// Repository manages persistence for the monthly commission ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Accrue(ctx context.Context, input AccrueInput) (*models.MonthlyCommissionRecord, error)
	Reverse(ctx context.Context, input ReverseInput) (*models.MonthlyCommissionRecord, error)
	AddPayment(ctx context.Context, recordID uuid.UUID, payment *models.CommissionPayment) (*models.MonthlyCommissionRecord, error)
	FindRecord(ctx context.Context, vendorStoreID uuid.UUID, month, year int) (*models.MonthlyCommissionRecord, error)
	ListRecordsByVendor(ctx context.Context, vendorStoreID uuid.UUID) ([]models.MonthlyCommissionRecord, error)
	HasTransactionForVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) (bool, error)
	FindStore(ctx context.Context, storeID uuid.UUID) (*models.Store, error)
	VendorOrderTotals(ctx context.Context, vendorStoreID uuid.UUID) (*VendorOrderTotals, error)
}

// AccrueInput carries one ledger accrual.
type AccrueInput struct {
	VendorStoreID   uuid.UUID
	OrderID         uuid.UUID
	VendorOrderID   uuid.UUID
	OrderCents      int
	CommissionCents int
	OccurredAt      time.Time
}

// ReverseInput undoes an accrual against the record for OccurredAt's period.
type ReverseInput struct {
	VendorStoreID   uuid.UUID
	VendorOrderID   uuid.UUID
	OrderCents      int
	CommissionCents int
	OccurredAt      time.Time
}

// VendorOrderTotals aggregates the explicit per-vendor-order commission
// fields. Reversed vendor orders contribute zero commission.
type VendorOrderTotals struct {
	OrderCount           int
	TotalSalesCents      int
	TotalCommissionCents int
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Accrue upserts the vendor's record for the accrual period and increments
// the running totals in a single statement, so concurrent accruals for the
// same vendor never lose an update. The matching transaction row is appended
// afterwards against the upserted record.
func (r *repository) Accrue(ctx context.Context, input AccrueInput) (*models.MonthlyCommissionRecord, error) {
	month := int(input.OccurredAt.Month())
	year := input.OccurredAt.Year()

	record := models.MonthlyCommissionRecord{
		ID:                     uuid.New(),
		VendorStoreID:          input.VendorStoreID,
		Month:                  month,
		Year:                   year,
		TotalOrders:            1,
		TotalSalesCents:        input.OrderCents,
		TotalCommissionCents:   input.CommissionCents,
		PendingCommissionCents: input.CommissionCents,
		PaymentStatus:          enums.CommissionPaymentStatusPending,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "vendor_store_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_orders":           gorm.Expr("total_orders + 1"),
			"total_sales_cents":      gorm.Expr("total_sales_cents + ?", input.OrderCents),
			"total_commission_cents": gorm.Expr("total_commission_cents + ?", input.CommissionCents),
			"pending_commission_cents": gorm.Expr(
				"CASE WHEN total_commission_cents + ? - paid_commission_cents < 0 THEN 0 ELSE total_commission_cents + ? - paid_commission_cents END",
				input.CommissionCents, input.CommissionCents,
			),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}

	current, err := r.FindRecord(ctx, input.VendorStoreID, month, year)
	if err != nil {
		return nil, err
	}

	txn := models.CommissionTransaction{
		ID:            uuid.New(),
		RecordID:      current.ID,
		OrderID:       input.OrderID,
		VendorOrderID: input.VendorOrderID,
		AmountCents:   input.CommissionCents,
		Status:        enums.CommissionTransactionStatusPending,
		OccurredAt:    input.OccurredAt,
	}
	if err := r.db.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, err
	}
	current.Transactions = append(current.Transactions, txn)
	return current, nil
}

// Reverse decrements the period record with every field clamped at zero and
// deletes the pending transaction recorded for the vendor order. Callers
// compare the requested amounts against the returned record to detect clamps.
func (r *repository) Reverse(ctx context.Context, input ReverseInput) (*models.MonthlyCommissionRecord, error) {
	month := int(input.OccurredAt.Month())
	year := input.OccurredAt.Year()

	res := r.db.WithContext(ctx).Model(&models.MonthlyCommissionRecord{}).
		Where("vendor_store_id = ? AND month = ? AND year = ?", input.VendorStoreID, month, year).
		Updates(map[string]any{
			"total_orders":           gorm.Expr("CASE WHEN total_orders - 1 < 0 THEN 0 ELSE total_orders - 1 END"),
			"total_sales_cents":      gorm.Expr("CASE WHEN total_sales_cents - ? < 0 THEN 0 ELSE total_sales_cents - ? END", input.OrderCents, input.OrderCents),
			"total_commission_cents": gorm.Expr("CASE WHEN total_commission_cents - ? < 0 THEN 0 ELSE total_commission_cents - ? END", input.CommissionCents, input.CommissionCents),
			"pending_commission_cents": gorm.Expr(
				"CASE WHEN (CASE WHEN total_commission_cents - ? < 0 THEN 0 ELSE total_commission_cents - ? END) - paid_commission_cents < 0 THEN 0 "+
					"ELSE (CASE WHEN total_commission_cents - ? < 0 THEN 0 ELSE total_commission_cents - ? END) - paid_commission_cents END",
				input.CommissionCents, input.CommissionCents, input.CommissionCents, input.CommissionCents,
			),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	current, err := r.FindRecord(ctx, input.VendorStoreID, month, year)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("record_id = ? AND vendor_order_id = ? AND status = ?",
			current.ID, input.VendorOrderID, enums.CommissionTransactionStatusPending).
		Delete(&models.CommissionTransaction{}).Error
	if err != nil {
		return nil, err
	}
	return current, nil
}

// AddPayment applies a payment to an existing record: paid moves up, pending
// is recomputed and clamped, and the payment status flips to completed when
// nothing remains outstanding.
func (r *repository) AddPayment(ctx context.Context, recordID uuid.UUID, payment *models.CommissionPayment) (*models.MonthlyCommissionRecord, error) {
	amount := payment.AmountCents
	res := r.db.WithContext(ctx).Model(&models.MonthlyCommissionRecord{}).
		Where("id = ?", recordID).
		Updates(map[string]any{
			"paid_commission_cents": gorm.Expr("paid_commission_cents + ?", amount),
			"pending_commission_cents": gorm.Expr(
				"CASE WHEN total_commission_cents - paid_commission_cents - ? < 0 THEN 0 ELSE total_commission_cents - paid_commission_cents - ? END",
				amount, amount,
			),
			"payment_status": gorm.Expr(
				"CASE WHEN total_commission_cents - paid_commission_cents - ? <= 0 THEN ? ELSE ? END",
				amount, string(enums.CommissionPaymentStatusCompleted), string(enums.CommissionPaymentStatusPartial),
			),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	payment.RecordID = recordID
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}

	var record models.MonthlyCommissionRecord
	err := r.db.WithContext(ctx).
		Preload("Payments").
		Where("id = ?", recordID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindRecord(ctx context.Context, vendorStoreID uuid.UUID, month, year int) (*models.MonthlyCommissionRecord, error) {
	var record models.MonthlyCommissionRecord
	err := r.db.WithContext(ctx).
		Preload("Transactions").
		Preload("Payments").
		Where("vendor_store_id = ? AND month = ? AND year = ?", vendorStoreID, month, year).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListRecordsByVendor(ctx context.Context, vendorStoreID uuid.UUID) ([]models.MonthlyCommissionRecord, error) {
	var records []models.MonthlyCommissionRecord
	err := r.db.WithContext(ctx).
		Where("vendor_store_id = ?", vendorStoreID).
		Order("year DESC, month DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) HasTransactionForVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CommissionTransaction{}).
		Where("vendor_order_id = ?", vendorOrderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) FindStore(ctx context.Context, storeID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).Where("id = ?", storeID).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// VendorOrderTotals sums the explicit commission fields stored on vendor
// orders. These take precedence over rate-based recomputation in summaries.
func (r *repository) VendorOrderTotals(ctx context.Context, vendorStoreID uuid.UUID) (*VendorOrderTotals, error) {
	var row struct {
		OrderCount           int
		TotalSalesCents      int
		TotalCommissionCents int
	}
	err := r.db.WithContext(ctx).Model(&models.VendorOrder{}).
		Select(
			"COUNT(*) AS order_count, " +
				"COALESCE(SUM(total_cents), 0) AS total_sales_cents, " +
				"COALESCE(SUM(CASE WHEN commission_reversed THEN 0 ELSE commission_cents END), 0) AS total_commission_cents",
		).
		Where("vendor_store_id = ?", vendorStoreID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &VendorOrderTotals{
		OrderCount:           row.OrderCount,
		TotalSalesCents:      row.TotalSalesCents,
		TotalCommissionCents: row.TotalCommissionCents,
	}, nil
}
