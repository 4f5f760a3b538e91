package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jcastellanos-dev/mercata-backend/internal/commission"
	"github.com/jcastellanos-dev/mercata-backend/internal/cron"
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

const lockKeyFormat = "mercata:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	outboxRepo := outbox.NewRepository(dbClient.DB())
	outboxSvc := outbox.NewService(outboxRepo, logg)

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

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Repo:        ordersRepo,
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

	retentionJob, err := cron.NewOutboxRetentionJob(cron.OutboxRetentionJobParams{
		Logger:     logg,
		DB:         dbClient,
		Repository: outboxRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create outbox retention job", err)
		os.Exit(1)
	}

	recategorizeJob, err := cron.NewRecategorizeJob(cron.RecategorizeJobParams{
		Logger:      logg,
		Partitioner: partitionSvc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create recategorize job", err)
		os.Exit(1)
	}

	vendorOrderStatusJob, err := cron.NewVendorOrderStatusJob(cron.VendorOrderStatusJobParams{
		Logger:     logg,
		Orders:     ordersRepo,
		Aggregator: ordersSvc,
		Ledger:     commissionSvc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor order status job", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(retentionJob, recategorizeJob, vendorOrderStatusJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
