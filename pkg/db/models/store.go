package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/google/uuid"
)

// Store is a vendor storefront. Code feeds derived vendor order numbers
// ({parentNumber}-{CODE}). CommissionRatePercent, when set, overrides the
// global rate for the per-order commission calculator only, never for the
// forwarding path.
type Store struct {
	ID                    uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code                  string           `gorm:"column:code;not null;uniqueIndex"`
	Name                  string           `gorm:"column:name;not null"`
	Email                 string           `gorm:"column:email;not null"`
	Active                bool             `gorm:"column:active;not null;default:true"`
	CommissionRatePercent *decimal.Decimal `gorm:"column:commission_rate_percent;type:numeric(5,2)"`
	CreatedAt             time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
