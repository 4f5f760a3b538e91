package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcastellanos-dev/mercata-backend/api/controllers"
	"github.com/jcastellanos-dev/mercata-backend/api/middleware"
	"github.com/jcastellanos-dev/mercata-backend/internal/commission"
	"github.com/jcastellanos-dev/mercata-backend/internal/forwarding"
	"github.com/jcastellanos-dev/mercata-backend/internal/orders"
	"github.com/jcastellanos-dev/mercata-backend/pkg/config"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
	"github.com/jcastellanos-dev/mercata-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient controllers.Pinger,
	redisClient *redis.Client,
	ordersSvc orders.Service,
	forwardingSvc forwarding.Service,
	commissionSvc commission.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.CORS(),
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	checkoutPolicy := middleware.NewRateLimitPolicy(
		"checkout",
		cfg.RateLimit.CheckoutWindow,
		cfg.RateLimit.CheckoutIPLimit,
		cfg.RateLimit.CheckoutEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbClient, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ActorContext())
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.RateLimit(checkoutPolicy, redisClient, logg)).Post("/", controllers.CreateOrder(ordersSvc, logg))
			r.Get("/", controllers.ListOrders(ordersSvc, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersSvc, logg))
			r.Post("/{orderId}/status", controllers.UpdateOrderStatus(ordersSvc, logg))
			r.Post("/{orderId}/forward", controllers.ForwardOrder(forwardingSvc, logg))
		})

		r.Route("/vendor-orders", func(r chi.Router) {
			r.Get("/{vendorOrderId}", controllers.VendorOrderDetail(ordersSvc, logg))
			r.Post("/{vendorOrderId}/status", controllers.UpdateVendorOrderStatus(ordersSvc, logg))
		})

		r.Route("/commissions/{vendorStoreId}", func(r chi.Router) {
			r.Post("/payments", controllers.RecordCommissionPayment(commissionSvc, logg))
			r.Get("/summary", controllers.VendorCommissionSummary(commissionSvc, logg))
			r.Get("/quote", controllers.CommissionQuote(commissionSvc, logg))
			r.Get("/{year}/{month}", controllers.MonthlyCommissionRecord(commissionSvc, logg))
		})
	})

	return r
}
