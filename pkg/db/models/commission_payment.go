package models

import (
	"time"

	"github.com/google/uuid"
)

// CommissionPayment records one vendor payment against a monthly record.
type CommissionPayment struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RecordID    uuid.UUID `gorm:"column:record_id;type:uuid;not null;index"`
	AmountCents int       `gorm:"column:amount_cents;not null"`
	Method      string    `gorm:"column:method;not null"`
	Notes       *string   `gorm:"column:notes"`
	AdminUserID uuid.UUID `gorm:"column:admin_user_id;type:uuid;not null"`
	PaidAt      time.Time `gorm:"column:paid_at;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
