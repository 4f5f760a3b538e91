package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/api/middleware"
	"github.com/jcastellanos-dev/mercata-backend/api/responses"
	"github.com/jcastellanos-dev/mercata-backend/api/validators"
	"github.com/jcastellanos-dev/mercata-backend/internal/forwarding"
	internalorders "github.com/jcastellanos-dev/mercata-backend/internal/orders"
	"github.com/jcastellanos-dev/mercata-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
	"github.com/jcastellanos-dev/mercata-backend/pkg/pagination"
)

// CreateOrder accepts a checkout submission and returns the partitioned
// result: the parent order plus any admin/vendor parts carved out of it.
func CreateOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload internalorders.CreateOrderInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateOrder(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ListOrders pages through root orders newest-first with optional status,
// order type and vendor store filters.
func ListOrders(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		filters, err := buildOrderFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListOrders(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// OrderDetail returns an order with its line items, split parts and any
// forwarded vendor orders.
func OrderDetail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseUUIDParam(r, "orderId", "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// UpdateOrderStatus applies a status transition to an order, recording the
// acting party from the request context when the body omits it.
func UpdateOrderStatus(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseUUIDParam(r, "orderId", "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := decodeStatusInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), orderID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

type forwardOrderRequest struct {
	VendorStoreID *uuid.UUID `json:"vendor_store_id,omitempty" validate:"omitempty,uuid"`
	Notes         *string    `json:"notes,omitempty"`
}

// ForwardOrder hands a vendor-fulfilled order unit to its vendor, creating
// the billable vendor order and accruing commission for the period.
func ForwardOrder(svc forwarding.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "forwarding service unavailable"))
			return
		}

		orderID, err := parseUUIDParam(r, "orderId", "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload forwardOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := forwarding.ForwardInput{
			OrderID:       orderID,
			VendorStoreID: payload.VendorStoreID,
			Notes:         sanitizeNotes(payload.Notes),
		}
		if actorID, ok := actorUserID(r); ok {
			input.AdminUserID = &actorID
		}

		vendorOrder, err := svc.Forward(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vendorOrder)
	}
}

func buildOrderFilters(r *http.Request) (internalorders.OrderFilters, error) {
	var filters internalorders.OrderFilters

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status := enums.OrderStatus(raw)
		if !status.IsValid() {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
		filters.Status = &status
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		orderType := enums.OrderType(raw)
		if !orderType.IsValid() {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid type filter")
		}
		filters.OrderType = &orderType
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("vendor_store_id")); raw != "" {
		vendorStoreID, err := uuid.Parse(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor store id filter")
		}
		filters.VendorStoreID = &vendorStoreID
	}

	return filters, nil
}

func decodeStatusInput(r *http.Request) (internalorders.UpdateStatusInput, error) {
	var input internalorders.UpdateStatusInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		return input, err
	}
	if input.ActorUserID == nil {
		if actorID, ok := actorUserID(r); ok {
			input.ActorUserID = &actorID
		}
	}
	return input, nil
}

func actorUserID(r *http.Request) (uuid.UUID, bool) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

const maxNotesLen = 500

func sanitizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	clean := validators.SanitizeString(*notes, maxNotesLen)
	if clean == "" {
		return nil
	}
	return &clean
}

func parseUUIDParam(r *http.Request, name, label string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, label+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+label)
	}
	return id, nil
}
