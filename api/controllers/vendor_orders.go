package controllers

import (
	"net/http"

	"github.com/jcastellanos-dev/mercata-backend/api/responses"
	internalorders "github.com/jcastellanos-dev/mercata-backend/internal/orders"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
)

// VendorOrderDetail returns a forwarded vendor order with its item snapshot.
func VendorOrderDetail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		vendorOrderID, err := parseUUIDParam(r, "vendorOrderId", "vendor order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendorOrder, err := svc.GetVendorOrder(r.Context(), vendorOrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendorOrder)
	}
}

// UpdateVendorOrderStatus applies a status transition to a vendor order and
// mirrors it onto the linked order unit.
func UpdateVendorOrderStatus(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		vendorOrderID, err := parseUUIDParam(r, "vendorOrderId", "vendor order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := decodeStatusInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendorOrder, err := svc.UpdateVendorOrderStatus(r.Context(), vendorOrderID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendorOrder)
	}
}
