package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jcastellanos-dev/mercata-backend/api/routes"
	"github.com/jcastellanos-dev/mercata-backend/internal/commission"
	"github.com/jcastellanos-dev/mercata-backend/internal/forwarding"
	"github.com/jcastellanos-dev/mercata-backend/internal/inventory"
	"github.com/jcastellanos-dev/mercata-backend/internal/orders"
	"github.com/jcastellanos-dev/mercata-backend/internal/partition"
	"github.com/jcastellanos-dev/mercata-backend/pkg/config"
	"github.com/jcastellanos-dev/mercata-backend/pkg/db"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
	"github.com/jcastellanos-dev/mercata-backend/pkg/metrics"
	"github.com/jcastellanos-dev/mercata-backend/pkg/migrate"
	"github.com/jcastellanos-dev/mercata-backend/pkg/outbox"
	"github.com/jcastellanos-dev/mercata-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	outboxSvc := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	partitionSvc, err := partition.NewService(partition.NewRepository(dbClient.DB()), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create partition service", err)
		os.Exit(1)
	}

	ledgerMetrics := metrics.NewLedgerMetrics(prometheus.DefaultRegisterer)
	commissionSvc, err := commission.NewService(
		commission.NewRepository(dbClient.DB()),
		dbClient,
		outboxSvc,
		logg,
		ledgerMetrics,
		cfg.Commission.Percent(),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create commission service", err)
		os.Exit(1)
	}

	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Repo:        orders.NewRepository(dbClient.DB()),
		Tx:          dbClient,
		Outbox:      outboxSvc,
		Partitioner: partitionSvc,
		Ledger:      commissionSvc,
		Stock:       inventory.NewRestorer(dbClient.DB()),
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	forwardingSvc, err := forwarding.NewService(forwarding.ServiceParams{
		Repo:        forwarding.NewRepository(dbClient.DB()),
		Tx:          dbClient,
		Outbox:      outboxSvc,
		Ledger:      commissionSvc,
		Aggregator:  ordersSvc,
		Logger:      logg,
		Metrics:     metrics.NewForwardingMetrics(prometheus.DefaultRegisterer),
		RatePercent: cfg.Commission.Percent(),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create forwarding service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, ordersSvc, forwardingSvc, commissionSvc),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
