package forwarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jcastellanos-dev/mercata-backend/internal/commission"
	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
	"github.com/jcastellanos-dev/mercata-backend/pkg/metrics"
	"github.com/jcastellanos-dev/mercata-backend/pkg/outbox"
	"github.com/jcastellanos-dev/mercata-backend/pkg/outbox/payloads"
	"github.com/jcastellanos-dev/mercata-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type ledgerAccruer interface {
	Accrue(ctx context.Context, input commission.AccrueInput) error
}

type parentAggregator interface {
	AggregateParent(ctx context.Context, parentID uuid.UUID) error
}

// ForwardInput identifies the order unit to hand to its vendor. VendorStoreID
// is optional; when absent the vendor is resolved from the order itself.
type ForwardInput struct {
	OrderID       uuid.UUID
	VendorStoreID *uuid.UUID
	AdminUserID   *uuid.UUID
	Notes         *string
}

// Service turns a vendor-fulfilled order unit into a billable vendor order.
type Service interface {
	Forward(ctx context.Context, input ForwardInput) (*models.VendorOrder, error)
}

type service struct {
	repo        Repository
	tx          txRunner
	outbox      outboxPublisher
	ledger      ledgerAccruer
	aggregator  parentAggregator
	logg        *logger.Logger
	metrics     *metrics.ForwardingMetrics
	ratePercent decimal.Decimal
}

// ServiceParams wires the forwarding service dependencies.
type ServiceParams struct {
	Repo        Repository
	Tx          txRunner
	Outbox      outboxPublisher
	Ledger      ledgerAccruer
	Aggregator  parentAggregator
	Logger      *logger.Logger
	Metrics     *metrics.ForwardingMetrics
	RatePercent decimal.Decimal
}

// NewService validates dependencies and builds the forwarding service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("forwarding repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("commission ledger required")
	}
	if params.Aggregator == nil {
		return nil, fmt.Errorf("parent aggregator required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.RatePercent.IsNegative() {
		return nil, fmt.Errorf("commission rate cannot be negative")
	}
	return &service{
		repo:        params.Repo,
		tx:          params.Tx,
		outbox:      params.Outbox,
		ledger:      params.Ledger,
		aggregator:  params.Aggregator,
		logg:        params.Logger,
		metrics:     params.Metrics,
		ratePercent: params.RatePercent,
	}, nil
}

// Forward snapshots the order's vendor items into a new vendor order, marks
// the source unit forwarded and accrues the commission. The vendor order is
// priced with the global rate; per-store overrides only feed quotes.
func (s *service) Forward(ctx context.Context, input ForwardInput) (*models.VendorOrder, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	var (
		vendorOrder *models.VendorOrder
		accrual     *commission.AccrueInput
		parentID    *uuid.UUID
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderWithItems(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if err := s.guardForwardable(order); err != nil {
			s.metrics.IncConflict()
			return err
		}

		vendorItems := vendorLineItems(order.Items)
		if len(vendorItems) == 0 {
			s.metrics.IncConflict()
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order has no vendor items to forward")
		}

		store, err := s.resolveVendor(ctx, repo, input, order, vendorItems)
		if err != nil {
			return err
		}

		baseNumber, rootID, err := s.forwardRoot(ctx, repo, order)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		subtotal := 0
		for _, item := range vendorItems {
			subtotal += item.TotalCents
		}
		// The forwarded unit's shipping travels with the vendor order;
		// commission applies to the shipped total, not the item subtotal.
		total := subtotal + order.ShippingCents
		breakdown := commission.Calculate(total, s.ratePercent, nil)

		vendorOrder = &models.VendorOrder{
			ID:                 uuid.New(),
			ParentOrderID:      rootID,
			OrderNumber:        fmt.Sprintf("%s-%s", baseNumber, store.Code),
			VendorStoreID:      store.ID,
			Status:             enums.OrderStatusProcessing,
			ItemsSubtotalCents: subtotal,
			ShippingCents:      order.ShippingCents,
			TotalCents:         total,
			CommissionCents:    breakdown.CommissionCents,
			IsForwardedByAdmin: true,
			ForwardedAt:        &now,
			AdminNotes:         input.Notes,
		}
		if err := repo.CreateVendorOrder(ctx, vendorOrder); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor order")
		}

		snapshots := make([]models.VendorOrderItem, 0, len(vendorItems))
		for _, item := range vendorItems {
			snapshots = append(snapshots, models.VendorOrderItem{
				ID:             uuid.New(),
				VendorOrderID:  vendorOrder.ID,
				ProductID:      item.ProductID,
				Name:           item.Name,
				UnitPriceCents: item.UnitPriceCents,
				Qty:            item.Qty,
				ItemTotalCents: item.TotalCents,
			})
		}
		if err := repo.CreateVendorOrderItems(ctx, snapshots); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot vendor items")
		}

		updates := map[string]any{
			"is_forwarded_to_vendor": true,
			"forwarded_at":           now,
			"vendor_order_id":        vendorOrder.ID,
			"vendor_store_id":        store.ID,
			"needs_forwarding":       false,
		}
		statusChanged := canTransitionToProcessing(order.Status)
		if statusChanged {
			updates["status"] = string(enums.OrderStatusProcessing)
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order forwarded")
		}
		if statusChanged {
			if err := repo.AppendStatusEvent(ctx, &models.OrderStatusEvent{
				OrderID:     order.ID,
				FromStatus:  order.Status,
				ToStatus:    enums.OrderStatusProcessing,
				ActorType:   enums.ActorTypeAdmin,
				ActorUserID: input.AdminUserID,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record status event")
			}
		}

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventVendorOrderForwarded,
			AggregateType: enums.AggregateVendorOrder,
			AggregateID:   vendorOrder.ID,
			Data: payloads.VendorOrderForwardedEvent{
				VendorOrderID:   vendorOrder.ID,
				ParentOrderID:   rootID,
				OrderNumber:     vendorOrder.OrderNumber,
				VendorStoreID:   store.ID,
				VendorEmail:     store.Email,
				TotalCents:      vendorOrder.TotalCents,
				CommissionCents: vendorOrder.CommissionCents,
				ForwardedAt:     now,
			},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit forwarded event")
		}

		accrual = &commission.AccrueInput{
			VendorStoreID:   store.ID,
			OrderID:         rootID,
			VendorOrderID:   vendorOrder.ID,
			OrderCents:      vendorOrder.TotalCents,
			CommissionCents: vendorOrder.CommissionCents,
			OccurredAt:      now,
		}
		parentID = order.ParentOrderID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The forward already committed; an accrual failure is logged and left
	// to the reconciliation job.
	if accrual != nil {
		if err := s.ledger.Accrue(ctx, *accrual); err != nil {
			lctx := s.logg.WithFields(ctx, map[string]any{
				"vendor_order_id": accrual.VendorOrderID.String(),
				"vendor_store_id": accrual.VendorStoreID.String(),
			})
			s.logg.Error(lctx, "commission accrual failed", err)
		}
	}
	if parentID != nil {
		if err := s.aggregator.AggregateParent(ctx, *parentID); err != nil {
			lctx := s.logg.WithField(ctx, "parent_order_id", parentID.String())
			s.logg.Error(lctx, "aggregate parent status", err)
		}
	}

	s.metrics.IncForward()
	lctx := s.logg.WithFields(ctx, map[string]any{
		"order_id":        input.OrderID.String(),
		"vendor_order_id": vendorOrder.ID.String(),
		"order_number":    vendorOrder.OrderNumber,
	})
	s.logg.Info(lctx, "order forwarded to vendor")
	return vendorOrder, nil
}

// guardForwardable rejects locked, terminal and already-forwarded units.
func (s *service) guardForwardable(order *models.Order) error {
	if order.Status.IsCustomerCancelled() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order was cancelled by the customer").
			WithDetails(map[string]any{"current_status": string(order.Status)})
	}
	if order.Status.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order is in a terminal status").
			WithDetails(map[string]any{"current_status": string(order.Status)})
	}
	if order.VendorOrderID != nil || order.IsForwardedToVendor {
		err := pkgerrors.New(pkgerrors.CodeStateConflict, "order already forwarded to vendor")
		if order.VendorOrderID != nil {
			err = err.WithDetails(map[string]any{"vendor_order_id": order.VendorOrderID.String()})
		}
		return err
	}
	if order.PartialOrderType == enums.PartialOrderTypeAdminPart {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "admin part has no vendor items to forward")
	}
	if order.PartialOrderType == enums.PartialOrderTypeNone && order.OrderType != nil && *order.OrderType == enums.OrderTypeMixed {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "mixed order must be forwarded through its vendor parts")
	}
	return nil
}

// resolveVendor picks the vendor store: explicit input first, then the
// order's own vendor, then the first vendor-tagged item.
func (s *service) resolveVendor(ctx context.Context, repo Repository, input ForwardInput, order *models.Order, vendorItems []models.OrderLineItem) (*models.Store, error) {
	ref := types.VendorRef{}
	switch {
	case input.VendorStoreID != nil:
		ref = types.VendorRefFromID(*input.VendorStoreID)
	case order.VendorStoreID != nil:
		ref = types.VendorRefFromID(*order.VendorStoreID)
	default:
		ref = types.VendorRefFromID(*vendorItems[0].VendorStoreID)
	}

	store, err := ref.Resolve(ctx, repo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor store")
	}
	if !store.Active {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "vendor store is inactive").
			WithDetails(map[string]any{"vendor_store_id": store.ID.String()})
	}
	return store, nil
}

// forwardRoot returns the order number and id the vendor order hangs off:
// the parent for split parts, the order itself otherwise.
func (s *service) forwardRoot(ctx context.Context, repo Repository, order *models.Order) (string, uuid.UUID, error) {
	if order.ParentOrderID == nil {
		return order.OrderNumber, order.ID, nil
	}
	parent, err := repo.FindOrder(ctx, *order.ParentOrderID)
	if err != nil {
		return "", uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent order")
	}
	return parent.OrderNumber, parent.ID, nil
}

func vendorLineItems(items []models.OrderLineItem) []models.OrderLineItem {
	vendorItems := make([]models.OrderLineItem, 0, len(items))
	for _, item := range items {
		if item.VendorStoreID != nil {
			vendorItems = append(vendorItems, item)
		}
	}
	return vendorItems
}

func canTransitionToProcessing(from enums.OrderStatus) bool {
	return from == enums.OrderStatusPlaced || from == enums.OrderStatusConfirmed
}
