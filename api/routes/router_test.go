package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/internal/commission"
	"github.com/jcastellanos-dev/mercata-backend/internal/forwarding"
	"github.com/jcastellanos-dev/mercata-backend/internal/orders"
	"github.com/jcastellanos-dev/mercata-backend/internal/partition"
	"github.com/jcastellanos-dev/mercata-backend/pkg/config"
	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
	"github.com/jcastellanos-dev/mercata-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubOrdersService struct {
	vendorOrder *models.VendorOrder
}

func (s stubOrdersService) CreateOrder(ctx context.Context, input orders.CreateOrderInput) (*partition.Result, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s stubOrdersService) GetOrder(ctx context.Context, orderID uuid.UUID) (*orders.OrderDetail, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s stubOrdersService) GetVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) (*models.VendorOrder, error) {
	if s.vendorOrder != nil {
		return s.vendorOrder, nil
	}
	return nil, fmt.Errorf("not implemented")
}

func (s stubOrdersService) ListOrders(ctx context.Context, params pagination.Params, filters orders.OrderFilters) (*orders.OrderList, error) {
	return &orders.OrderList{Orders: []orders.OrderSummary{}}, nil
}

func (s stubOrdersService) UpdateStatus(ctx context.Context, orderID uuid.UUID, input orders.UpdateStatusInput) (*models.Order, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s stubOrdersService) UpdateVendorOrderStatus(ctx context.Context, vendorOrderID uuid.UUID, input orders.UpdateStatusInput) (*models.VendorOrder, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s stubOrdersService) AggregateParent(ctx context.Context, parentID uuid.UUID) error {
	return nil
}

type stubForwardingService struct{}

func (stubForwardingService) Forward(ctx context.Context, input forwarding.ForwardInput) (*models.VendorOrder, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubCommissionService struct{}

func (stubCommissionService) Accrue(ctx context.Context, input commission.AccrueInput) error {
	return nil
}

func (stubCommissionService) Reverse(ctx context.Context, input commission.ReverseInput) error {
	return nil
}

func (stubCommissionService) RecordPayment(ctx context.Context, input commission.RecordPaymentInput) (*models.MonthlyCommissionRecord, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubCommissionService) VendorSummary(ctx context.Context, vendorStoreID uuid.UUID) (*commission.VendorSummary, error) {
	return &commission.VendorSummary{VendorStoreID: vendorStoreID}, nil
}

func (stubCommissionService) MonthlyRecord(ctx context.Context, vendorStoreID uuid.UUID, month, year int) (*models.MonthlyCommissionRecord, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubCommissionService) Quote(ctx context.Context, vendorStoreID uuid.UUID, totalCents int) (commission.Breakdown, error) {
	return commission.Breakdown{}, nil
}

func (stubCommissionService) HasAccrualForVendorOrder(ctx context.Context, vendorOrderID uuid.UUID) (bool, error) {
	return false, nil
}

func newTestRouter(ordersSvc orders.Service) http.Handler {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	logg := logger.New(logger.Options{ServiceName: "router-test"})
	return NewRouter(cfg, logg, stubPinger{}, nil, ordersSvc, stubForwardingService{}, stubCommissionService{})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Mercata-Env") != "test" {
		t.Fatalf("expected env header, got %q", rec.Header().Get("X-Mercata-Env"))
	}
}

func TestRouterOrderCreateRequiresIdempotencyKey(t *testing.T) {
	router := newTestRouter(stubOrdersService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"buyer_email":"a@b.com","items":[]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without Idempotency-Key, got %d", rec.Code)
	}
}

func TestRouterOrderDetailRejectsMalformedID(t *testing.T) {
	router := newTestRouter(stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouterVendorOrderDetailDispatches(t *testing.T) {
	vendorOrderID := uuid.New()
	router := newTestRouter(stubOrdersService{vendorOrder: &models.VendorOrder{ID: vendorOrderID}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor-orders/"+vendorOrderID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.ID != vendorOrderID.String() {
		t.Fatalf("expected vendor order %s, got %s", vendorOrderID, payload.Data.ID)
	}
}

func TestRouterCommissionSummaryDispatches(t *testing.T) {
	router := newTestRouter(stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/commissions/"+uuid.NewString()+"/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
