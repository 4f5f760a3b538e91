package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastellanos-dev/mercata-backend/internal/commission"
	"github.com/jcastellanos-dev/mercata-backend/internal/partition"
	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
	"github.com/jcastellanos-dev/mercata-backend/pkg/outbox"
	"github.com/jcastellanos-dev/mercata-backend/pkg/outbox/payloads"
	"github.com/jcastellanos-dev/mercata-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type partitioner interface {
	Partition(ctx context.Context, orderID uuid.UUID) (*partition.Result, error)
}

type ledgerReverser interface {
	Reverse(ctx context.Context, input commission.ReverseInput) error
}

type stockRestorer interface {
	Restore(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error
}

// Service owns the order lifecycle: checkout intake, the status machine for
// orders, parts and vendor orders, and parent status aggregation for split
// orders.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*partition.Result, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error)
	GetVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) (*models.VendorOrder, error)
	ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, input UpdateStatusInput) (*models.Order, error)
	UpdateVendorOrderStatus(ctx context.Context, vendorOrderID uuid.UUID, input UpdateStatusInput) (*models.VendorOrder, error)
	AggregateParent(ctx context.Context, parentID uuid.UUID) error
}

// OrderDetail bundles an order with its split parts and forwarded vendor
// orders for the detail endpoint.
type OrderDetail struct {
	Order        *models.Order        `json:"order"`
	Parts        []models.Order       `json:"parts,omitempty"`
	VendorOrders []models.VendorOrder `json:"vendor_orders,omitempty"`
}

type service struct {
	repo        Repository
	tx          txRunner
	outbox      outboxPublisher
	partitioner partitioner
	ledger      ledgerReverser
	stock       stockRestorer
	logg        *logger.Logger
}

// ServiceParams wires the order service dependencies.
type ServiceParams struct {
	Repo        Repository
	Tx          txRunner
	Outbox      outboxPublisher
	Partitioner partitioner
	Ledger      ledgerReverser
	Stock       stockRestorer
	Logger      *logger.Logger
}

// NewService validates dependencies and builds the order service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Partitioner == nil {
		return nil, fmt.Errorf("partitioner required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("commission ledger required")
	}
	if params.Stock == nil {
		return nil, fmt.Errorf("stock restorer required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        params.Repo,
		tx:          params.Tx,
		outbox:      params.Outbox,
		partitioner: params.Partitioner,
		ledger:      params.Ledger,
		stock:       params.Stock,
		logg:        params.Logger,
	}, nil
}

// CreateOrder persists the checkout submission and immediately partitions it
// by fulfiller. The returned result carries the parent plus any split parts.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*partition.Result, error) {
	if strings.TrimSpace(input.BuyerEmail) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer email is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if input.ShippingCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping amount cannot be negative")
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: name is required", i))
		}
		if item.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity must be positive", i))
		}
		if item.UnitPriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: unit price cannot be negative", i))
		}
	}

	order := &models.Order{
		ID:            uuid.New(),
		OrderNumber:   newOrderNumber(),
		Status:        enums.OrderStatusPlaced,
		BuyerEmail:    input.BuyerEmail,
		ShippingCents: input.ShippingCents,
	}
	items := make([]models.OrderLineItem, 0, len(input.Items))
	subtotal := 0
	for _, line := range input.Items {
		total := line.UnitPriceCents * line.Qty
		subtotal += total
		items = append(items, models.OrderLineItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      line.ProductID,
			VendorStoreID:  line.VendorStoreID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Qty:            line.Qty,
			TotalCents:     total,
		})
	}
	order.SubtotalCents = subtotal
	order.TotalCents = subtotal + input.ShippingCents

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := repo.CreateOrderLineItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := s.partitioner.Partition(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	lctx := s.logg.WithFields(ctx, map[string]any{
		"order_id":     order.ID.String(),
		"order_number": order.OrderNumber,
		"order_type":   string(result.OrderType),
	})
	s.logg.Info(lctx, "order created")
	return result, nil
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error) {
	order, err := s.repo.FindOrderWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	detail := &OrderDetail{Order: order}
	parts, err := s.repo.FindPartsByParent(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order parts")
	}
	detail.Parts = parts

	vendorOrders, err := s.repo.FindVendorOrdersByParent(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor orders")
	}
	detail.VendorOrders = vendorOrders
	return detail, nil
}

func (s *service) GetVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) (*models.VendorOrder, error) {
	order, err := s.repo.FindVendorOrder(ctx, vendorOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor order")
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	list, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// pendingReversal carries a ledger reversal out of the status transaction so
// it runs after commit. A reversal failure never rolls back the cancel.
type pendingReversal struct {
	input commission.ReverseInput
}

// UpdateStatus moves an order or part through the status machine. Orders
// cancelled by the customer are locked against further changes.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, input UpdateStatusInput) (*models.Order, error) {
	if err := validateStatusInput(input); err != nil {
		return nil, err
	}

	var (
		updated   *models.Order
		parentID  *uuid.UUID
		reversals []pendingReversal
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderWithItems(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if err := s.guardTransition(order.Status, order.CancelledBy, input.Status); err != nil {
			return err
		}

		updates := map[string]any{
			"status":               string(input.Status),
			"status_update_reason": input.Reason,
		}
		if input.Status.IsCancellation() {
			updates["cancelled_by"] = string(input.ActorType)
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if err := repo.AppendStatusEvent(ctx, &models.OrderStatusEvent{
			OrderID:     order.ID,
			FromStatus:  order.Status,
			ToStatus:    input.Status,
			ActorType:   input.ActorType,
			ActorUserID: input.ActorUserID,
			Note:        input.Reason,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record status event")
		}

		if input.Status.IsCancellation() {
			s.restoreItems(ctx, tx, order.Items)
			reversal, err := s.cancelLinkedVendorOrder(ctx, tx, repo, order, input)
			if err != nil {
				return err
			}
			if reversal != nil {
				reversals = append(reversals, *reversal)
			}
		}

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Data: payloads.OrderStatusChangedEvent{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				ParentOrderID: order.ParentOrderID,
				VendorOrderID: order.VendorOrderID,
				BuyerEmail:    order.BuyerEmail,
				OldStatus:     order.Status,
				NewStatus:     input.Status,
				Reason:        derefString(input.Reason),
			},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit status event")
		}

		parentID = order.ParentOrderID
		reloaded, err := repo.FindOrderWithItems(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.runReversals(ctx, reversals)
	if parentID != nil {
		if err := s.AggregateParent(ctx, *parentID); err != nil {
			lctx := s.logg.WithField(ctx, "parent_order_id", parentID.String())
			s.logg.Error(lctx, "aggregate parent status", err)
		}
	}
	return updated, nil
}

// UpdateVendorOrderStatus applies a vendor-side transition and keeps the
// linked part order in sync.
func (s *service) UpdateVendorOrderStatus(ctx context.Context, vendorOrderID uuid.UUID, input UpdateStatusInput) (*models.VendorOrder, error) {
	if err := validateStatusInput(input); err != nil {
		return nil, err
	}

	var (
		updated   *models.VendorOrder
		parentID  *uuid.UUID
		reversals []pendingReversal
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		vendorOrder, err := repo.FindVendorOrder(ctx, vendorOrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vendor order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor order")
		}
		if err := s.guardTransition(vendorOrder.Status, vendorOrder.CancelledBy, input.Status); err != nil {
			return err
		}

		updates := map[string]any{"status": string(input.Status)}
		if input.Status.IsCancellation() {
			updates["cancelled_by"] = string(input.ActorType)
			if !vendorOrder.CommissionReversed {
				updates["commission_reversed"] = true
				reversals = append(reversals, pendingReversal{input: reversalFor(vendorOrder)})
			}
		}
		if err := repo.UpdateVendorOrder(ctx, vendorOrder.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor order status")
		}

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateVendorOrder,
			AggregateID:   vendorOrder.ID,
			Data: payloads.OrderStatusChangedEvent{
				OrderID:       vendorOrder.ParentOrderID,
				OrderNumber:   vendorOrder.OrderNumber,
				VendorOrderID: &vendorOrder.ID,
				OldStatus:     vendorOrder.Status,
				NewStatus:     input.Status,
				Reason:        derefString(input.Reason),
			},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit status event")
		}

		linkedParentID, err := s.syncLinkedOrder(ctx, tx, repo, vendorOrder, input)
		if err != nil {
			return err
		}
		parentID = linkedParentID

		reloaded, err := repo.FindVendorOrder(ctx, vendorOrder.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload vendor order")
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.runReversals(ctx, reversals)
	if parentID != nil {
		if err := s.AggregateParent(ctx, *parentID); err != nil {
			lctx := s.logg.WithField(ctx, "parent_order_id", parentID.String())
			s.logg.Error(lctx, "aggregate parent status", err)
		}
	}
	return updated, nil
}

// AggregateParent re-derives a split parent's status from its parts and
// writes it only when it changed. Customer-cancelled parents stay locked.
func (s *service) AggregateParent(ctx context.Context, parentID uuid.UUID) error {
	if parentID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "parent order id is required")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		parts, err := repo.FindPartsByParent(ctx, parentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order parts")
		}
		if len(parts) == 0 {
			return nil
		}

		statuses := make([]enums.OrderStatus, 0, len(parts))
		for _, part := range parts {
			statuses = append(statuses, part.Status)
		}
		derived := DeriveParentStatus(statuses)

		parent, err := repo.FindOrder(ctx, parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "parent order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent order")
		}
		if parent.Status == derived || parent.Status.IsCustomerCancelled() {
			return nil
		}

		reason := "derived from part statuses"
		updates := map[string]any{
			"status":               string(derived),
			"status_update_reason": reason,
		}
		if derived.IsCancellation() && parent.CancelledBy == nil {
			updates["cancelled_by"] = string(enums.ActorTypeSystem)
		}
		if err := repo.UpdateOrder(ctx, parent.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update parent status")
		}
		if err := repo.AppendStatusEvent(ctx, &models.OrderStatusEvent{
			OrderID:    parent.ID,
			FromStatus: parent.Status,
			ToStatus:   derived,
			ActorType:  enums.ActorTypeSystem,
			Note:       &reason,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record status event")
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   parent.ID,
			Data: payloads.OrderStatusChangedEvent{
				OrderID:     parent.ID,
				OrderNumber: parent.OrderNumber,
				BuyerEmail:  parent.BuyerEmail,
				OldStatus:   parent.Status,
				NewStatus:   derived,
				Reason:      reason,
			},
		})
	})
}

// guardTransition enforces the customer-cancel lock before the state machine.
func (s *service) guardTransition(current enums.OrderStatus, cancelledBy *enums.ActorType, next enums.OrderStatus) error {
	if current.IsCustomerCancelled() {
		details := map[string]any{"current_status": string(current)}
		if cancelledBy != nil {
			details["cancelled_by"] = string(*cancelledBy)
		}
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order was cancelled by the customer").
			WithDetails(details)
	}
	if !canTransition(current, next) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "invalid status transition").
			WithDetails(map[string]any{
				"from": string(current),
				"to":   string(next),
			})
	}
	return nil
}

// restoreItems returns cancelled stock to the shelf. A failed line is logged
// and skipped so one broken product never blocks the cancel.
func (s *service) restoreItems(ctx context.Context, tx *gorm.DB, items []models.OrderLineItem) {
	for _, item := range items {
		if item.ProductID == nil {
			continue
		}
		if err := s.stock.Restore(ctx, tx, *item.ProductID, item.Qty); err != nil {
			lctx := s.logg.WithFields(ctx, map[string]any{
				"product_id": item.ProductID.String(),
				"qty":        item.Qty,
			})
			s.logg.Warn(lctx, "stock restore failed: "+err.Error())
		}
	}
}

// cancelLinkedVendorOrder propagates a part cancellation to its forwarded
// vendor order and queues the commission reversal.
func (s *service) cancelLinkedVendorOrder(ctx context.Context, tx *gorm.DB, repo Repository, order *models.Order, input UpdateStatusInput) (*pendingReversal, error) {
	if order.VendorOrderID == nil {
		return nil, nil
	}
	vendorOrder, err := repo.FindVendorOrder(ctx, *order.VendorOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load linked vendor order")
	}
	if vendorOrder.Status.IsCancellation() && vendorOrder.CommissionReversed {
		return nil, nil
	}

	updates := map[string]any{}
	if !vendorOrder.Status.IsCancellation() {
		updates["status"] = string(input.Status)
		updates["cancelled_by"] = string(input.ActorType)
	}
	var reversal *pendingReversal
	if !vendorOrder.CommissionReversed {
		updates["commission_reversed"] = true
		reversal = &pendingReversal{input: reversalFor(vendorOrder)}
	}
	if err := repo.UpdateVendorOrder(ctx, vendorOrder.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel linked vendor order")
	}
	if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventOrderStatusChanged,
		AggregateType: enums.AggregateVendorOrder,
		AggregateID:   vendorOrder.ID,
		Data: payloads.OrderStatusChangedEvent{
			OrderID:       vendorOrder.ParentOrderID,
			OrderNumber:   vendorOrder.OrderNumber,
			VendorOrderID: &vendorOrder.ID,
			OldStatus:     vendorOrder.Status,
			NewStatus:     input.Status,
			Reason:        derefString(input.Reason),
		},
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit status event")
	}
	return reversal, nil
}

// syncLinkedOrder mirrors a vendor order transition onto the part order
// that was forwarded, including stock restoration on cancel. Returns the
// part's parent ID so the caller can re-aggregate.
func (s *service) syncLinkedOrder(ctx context.Context, tx *gorm.DB, repo Repository, vendorOrder *models.VendorOrder, input UpdateStatusInput) (*uuid.UUID, error) {
	linked, err := repo.FindOrderByVendorOrderID(ctx, vendorOrder.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load linked order")
	}
	if linked.Status.IsCustomerCancelled() || !canTransition(linked.Status, input.Status) {
		return linked.ParentOrderID, nil
	}

	updates := map[string]any{
		"status":               string(input.Status),
		"status_update_reason": input.Reason,
	}
	if input.Status.IsCancellation() {
		updates["cancelled_by"] = string(input.ActorType)
	}
	if err := repo.UpdateOrder(ctx, linked.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sync linked order status")
	}
	if err := repo.AppendStatusEvent(ctx, &models.OrderStatusEvent{
		OrderID:     linked.ID,
		FromStatus:  linked.Status,
		ToStatus:    input.Status,
		ActorType:   input.ActorType,
		ActorUserID: input.ActorUserID,
		Note:        input.Reason,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record status event")
	}
	if input.Status.IsCancellation() {
		withItems, err := repo.FindOrderWithItems(ctx, linked.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load linked order items")
		}
		s.restoreItems(ctx, tx, withItems.Items)
	}
	return linked.ParentOrderID, nil
}

// runReversals executes ledger reversals collected during a cancel. The
// cancel already committed; a reversal failure is logged for the
// reconciliation job to retry.
func (s *service) runReversals(ctx context.Context, reversals []pendingReversal) {
	for _, reversal := range reversals {
		if err := s.ledger.Reverse(ctx, reversal.input); err != nil {
			lctx := s.logg.WithFields(ctx, map[string]any{
				"vendor_store_id": reversal.input.VendorStoreID.String(),
				"vendor_order_id": reversal.input.VendorOrderID.String(),
			})
			s.logg.Error(lctx, "commission reversal failed", err)
		}
	}
}

func reversalFor(vendorOrder *models.VendorOrder) commission.ReverseInput {
	occurredAt := vendorOrder.CreatedAt
	if vendorOrder.ForwardedAt != nil {
		occurredAt = *vendorOrder.ForwardedAt
	}
	return commission.ReverseInput{
		VendorStoreID:   vendorOrder.VendorStoreID,
		VendorOrderID:   vendorOrder.ID,
		OrderCents:      vendorOrder.TotalCents,
		CommissionCents: vendorOrder.CommissionCents,
		OccurredAt:      occurredAt,
	}
}

func validateStatusInput(input UpdateStatusInput) error {
	if !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}
	if !input.ActorType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown actor type")
	}
	return nil
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UTC().Unix(), strings.ToUpper(uuid.NewString()[:8]))
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
