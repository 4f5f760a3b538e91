package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
	"github.com/jcastellanos-dev/mercata-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and vendor orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderLineItems(ctx context.Context, items []models.OrderLineItem) error
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderWithItems(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindPartsByParent(ctx context.Context, parentID uuid.UUID) ([]models.Order, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	AppendStatusEvent(ctx context.Context, event *models.OrderStatusEvent) error
	ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	FindVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) (*models.VendorOrder, error)
	FindVendorOrdersByParent(ctx context.Context, parentID uuid.UUID) ([]models.VendorOrder, error)
	FindOrderByVendorOrderID(ctx context.Context, vendorOrderID uuid.UUID) (*models.Order, error)
	UpdateVendorOrder(ctx context.Context, vendorOrderID uuid.UUID, updates map[string]any) error
	ListForwardedVendorOrders(ctx context.Context, limit int) ([]models.VendorOrder, error)
	ListSplitParentIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
}

// OrderFilters narrows the admin order list.
type OrderFilters struct {
	Status        *enums.OrderStatus
	OrderType     *enums.OrderType
	VendorStoreID *uuid.UUID
}
