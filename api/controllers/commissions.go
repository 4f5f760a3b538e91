package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jcastellanos-dev/mercata-backend/api/responses"
	"github.com/jcastellanos-dev/mercata-backend/api/validators"
	"github.com/jcastellanos-dev/mercata-backend/internal/commission"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
)

type recordCommissionPaymentRequest struct {
	Month       int     `json:"month" validate:"required,gte=1,lte=12"`
	Year        int     `json:"year" validate:"required,gte=2000"`
	AmountCents int     `json:"amount_cents" validate:"gt=0"`
	Method      string  `json:"method" validate:"required"`
	Notes       *string `json:"notes,omitempty"`
}

// RecordCommissionPayment books an admin-entered payment against a vendor's
// monthly ledger record.
func RecordCommissionPayment(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		vendorStoreID, err := parseUUIDParam(r, "vendorStoreId", "vendor store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adminID, ok := actorUserID(r)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin user context required"))
			return
		}

		var payload recordCommissionPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.RecordPayment(r.Context(), commission.RecordPaymentInput{
			VendorStoreID: vendorStoreID,
			Month:         payload.Month,
			Year:          payload.Year,
			AmountCents:   payload.AmountCents,
			Method:        payload.Method,
			Notes:         sanitizeNotes(payload.Notes),
			AdminUserID:   adminID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// VendorCommissionSummary returns the vendor's lifetime ledger aggregation
// together with its per-month records.
func VendorCommissionSummary(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		vendorStoreID, err := parseUUIDParam(r, "vendorStoreId", "vendor store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.VendorSummary(r.Context(), vendorStoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// MonthlyCommissionRecord returns a single period's ledger record with its
// payment history.
func MonthlyCommissionRecord(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		vendorStoreID, err := parseUUIDParam(r, "vendorStoreId", "vendor store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		year, err := parseIntParam(r, "year", "year")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		month, err := parseIntParam(r, "month", "month")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.MonthlyRecord(r.Context(), vendorStoreID, month, year)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// CommissionQuote previews the commission breakdown for an order total,
// applying the vendor's rate override when one is configured.
func CommissionQuote(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		vendorStoreID, err := parseUUIDParam(r, "vendorStoreId", "vendor store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw := strings.TrimSpace(r.URL.Query().Get("total_cents"))
		if raw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "total_cents is required"))
			return
		}
		totalCents, err := strconv.Atoi(raw)
		if err != nil || totalCents < 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid total_cents"))
			return
		}

		breakdown, err := svc.Quote(r.Context(), vendorStoreID, totalCents)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, breakdown)
	}
}

func parseIntParam(r *http.Request, name, label string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, label+" is required")
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+label)
	}
	return value, nil
}
