package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
)

// CommissionTransaction ties one accrual on a monthly record back to the
// vendor order that produced it. Reversal deletes the matching row.
type CommissionTransaction struct {
	ID            uuid.UUID                         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RecordID      uuid.UUID                         `gorm:"column:record_id;type:uuid;not null;index"`
	OrderID       uuid.UUID                         `gorm:"column:order_id;type:uuid;not null"`
	VendorOrderID uuid.UUID                         `gorm:"column:vendor_order_id;type:uuid;not null;index"`
	AmountCents   int                               `gorm:"column:amount_cents;not null"`
	Status        enums.CommissionTransactionStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	OccurredAt    time.Time                         `gorm:"column:occurred_at;not null"`
	CreatedAt     time.Time                         `gorm:"column:created_at;autoCreateTime"`
}
