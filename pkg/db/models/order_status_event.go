package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
)

// OrderStatusEvent is one row of an order's append-only status history.
type OrderStatusEvent struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	FromStatus  enums.OrderStatus `gorm:"column:from_status;type:text;not null"`
	ToStatus    enums.OrderStatus `gorm:"column:to_status;type:text;not null"`
	ActorType   enums.ActorType   `gorm:"column:actor_type;type:text;not null"`
	ActorUserID *uuid.UUID        `gorm:"column:actor_user_id;type:uuid"`
	Note        *string           `gorm:"column:note"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}
