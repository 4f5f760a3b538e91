package partition

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service splits mixed orders into admin and vendor parts and backfills
// order types on legacy rows.
type Service interface {
	Partition(ctx context.Context, orderID uuid.UUID) (*Result, error)
	Recategorize(ctx context.Context, batchSize int) (*RecategorizeReport, error)
}

// Result describes the outcome of partitioning one order. VendorParts are
// the split-off vendor units awaiting forwarding; billable VendorOrders are
// only materialized when the admin forwards them.
type Result struct {
	Order       *models.Order
	OrderType   enums.OrderType
	AdminPart   *models.Order
	VendorParts []models.Order
}

// RecategorizeReport summarizes a bulk recategorization pass. Failures is
// the per-order error collection; a failed order never aborts the batch.
type RecategorizeReport struct {
	Scanned  int
	Updated  int
	Failures error
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService wires the partitioner with its dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("partition repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

// Partition groups the order's cart by fulfiller and, for mixed carts,
// materializes the split parts. Calling it again on an already-partitioned
// order returns the existing parts without creating duplicates.
func (s *service) Partition(ctx context.Context, orderID uuid.UUID) (*Result, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrderWithItems(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.ParentOrderID != nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot partition a part")
		}

		orderType, err := Classify(order.Items)
		if err != nil {
			return err
		}

		existing, err := repo.FindPartsByParent(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load existing parts")
		}
		if len(existing) > 0 || (order.OrderType != nil && !order.NeedsForwarding) {
			result = buildResult(order, orderType, existing)
			return nil
		}

		grouping := GroupItems(order.Items)
		created := make([]models.Order, 0, len(grouping.VendorIDs)+1)

		if orderType == enums.OrderTypeMixed {
			adminPart, err := s.createPart(ctx, repo, order, partSpec{
				number: fmt.Sprintf("%s-ADM", order.OrderNumber),
				kind:   enums.PartialOrderTypeAdminPart,
				items:  grouping.AdminItems,
			})
			if err != nil {
				return err
			}
			created = append(created, *adminPart)

			for i, vendorID := range grouping.VendorIDs {
				vendorPart, err := s.createPart(ctx, repo, order, partSpec{
					number:   fmt.Sprintf("%s-P%d", order.OrderNumber, i+1),
					kind:     enums.PartialOrderTypeVendorPart,
					items:    grouping.VendorItems[vendorID],
					vendorID: &vendorID,
				})
				if err != nil {
					return err
				}
				created = append(created, *vendorPart)
			}
		}

		needsForwarding := orderType.HasVendorItems()
		updates := map[string]any{
			"order_type":       string(orderType),
			"needs_forwarding": needsForwarding,
		}
		if orderType == enums.OrderTypeVendorOnly && len(grouping.VendorIDs) == 1 {
			updates["vendor_store_id"] = grouping.VendorIDs[0]
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order type")
		}

		order.OrderType = &orderType
		order.NeedsForwarding = needsForwarding
		result = buildResult(order, orderType, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type partSpec struct {
	number   string
	kind     enums.PartialOrderType
	items    []models.OrderLineItem
	vendorID *uuid.UUID
}

func (s *service) createPart(ctx context.Context, repo Repository, parent *models.Order, spec partSpec) (*models.Order, error) {
	subtotal := SubtotalCents(spec.items)
	partType := partTypeFor(spec.kind)
	part := &models.Order{
		ID:               uuid.New(),
		OrderNumber:      spec.number,
		ParentOrderID:    &parent.ID,
		PartialOrderType: spec.kind,
		OrderType:        &partType,
		Status:           enums.OrderStatusPlaced,
		BuyerEmail:       parent.BuyerEmail,
		VendorStoreID:    spec.vendorID,
		NeedsForwarding:  spec.kind == enums.PartialOrderTypeVendorPart,
		SubtotalCents:    subtotal,
		TotalCents:       subtotal,
	}
	if err := repo.CreateOrder(ctx, part); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order part")
	}

	items := make([]models.OrderLineItem, 0, len(spec.items))
	for _, item := range spec.items {
		items = append(items, models.OrderLineItem{
			ID:             uuid.New(),
			OrderID:        part.ID,
			ProductID:      item.ProductID,
			VendorStoreID:  item.VendorStoreID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Qty:            item.Qty,
			TotalCents:     item.TotalCents,
		})
	}
	if err := repo.CreateOrderLineItems(ctx, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create part line items")
	}
	part.Items = items
	return part, nil
}

func partTypeFor(kind enums.PartialOrderType) enums.OrderType {
	if kind == enums.PartialOrderTypeVendorPart {
		return enums.OrderTypeVendorOnly
	}
	return enums.OrderTypeAdminOnly
}

func buildResult(order *models.Order, orderType enums.OrderType, parts []models.Order) *Result {
	result := &Result{Order: order, OrderType: orderType}
	for i := range parts {
		if parts[i].PartialOrderType == enums.PartialOrderTypeAdminPart {
			result.AdminPart = &parts[i]
			continue
		}
		result.VendorParts = append(result.VendorParts, parts[i])
	}
	return result
}

// Recategorize backfills order_type on orders that never got one. Each
// order is classified from its cart and updated in isolation; failures are
// collected per order so one bad row cannot sink the batch. Orders with an
// empty cart are marked legacy so the scan does not pick them up again.
func (s *service) Recategorize(ctx context.Context, batchSize int) (*RecategorizeReport, error) {
	orders, err := s.repo.ListOrdersMissingType(ctx, batchSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scan uncategorized orders")
	}

	report := &RecategorizeReport{Scanned: len(orders)}
	for _, order := range orders {
		orderType, classifyErr := Classify(order.Items)
		if classifyErr != nil {
			orderType = enums.OrderTypeLegacy
		}
		updates := map[string]any{
			"order_type":       string(orderType),
			"needs_forwarding": orderType.HasVendorItems() && !order.IsForwardedToVendor,
		}
		if err := s.repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			lctx := s.logg.WithField(ctx, "order_id", order.ID.String())
			s.logg.Error(lctx, "recategorize order failed", err)
			report.Failures = multierr.Append(report.Failures,
				fmt.Errorf("order %s: %w", order.ID, err))
			continue
		}
		report.Updated++
	}
	return report, nil
}
