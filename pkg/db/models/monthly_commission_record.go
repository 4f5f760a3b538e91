package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
)

// MonthlyCommissionRecord accumulates commission owed by one vendor for one
// calendar month. Records are created lazily on first accrual and never
// deleted. PendingCommissionCents is always max(0, total - paid); every write
// path recomputes it in the same statement that moves total or paid.
type MonthlyCommissionRecord struct {
	ID                     uuid.UUID                     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorStoreID          uuid.UUID                     `gorm:"column:vendor_store_id;type:uuid;not null;uniqueIndex:ux_commission_vendor_period"`
	Month                  int                           `gorm:"column:month;not null;uniqueIndex:ux_commission_vendor_period"`
	Year                   int                           `gorm:"column:year;not null;uniqueIndex:ux_commission_vendor_period"`
	TotalOrders            int                           `gorm:"column:total_orders;not null;default:0"`
	TotalSalesCents        int                           `gorm:"column:total_sales_cents;not null;default:0"`
	TotalCommissionCents   int                           `gorm:"column:total_commission_cents;not null;default:0"`
	PaidCommissionCents    int                           `gorm:"column:paid_commission_cents;not null;default:0"`
	PendingCommissionCents int                           `gorm:"column:pending_commission_cents;not null;default:0"`
	PaymentStatus          enums.CommissionPaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	Transactions           []CommissionTransaction       `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`
	Payments               []CommissionPayment           `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time                     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time                     `gorm:"column:updated_at;autoUpdateTime"`
}
