package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/mixtrack-backend/internal/cron"
	"github.com/angelmondragon/mixtrack-backend/internal/receipts"
	"github.com/angelmondragon/mixtrack-backend/pkg/config"
	"github.com/angelmondragon/mixtrack-backend/pkg/db"
	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
	"github.com/angelmondragon/mixtrack-backend/pkg/logger"
	"github.com/angelmondragon/mixtrack-backend/pkg/metrics"
	"github.com/angelmondragon/mixtrack-backend/pkg/migrate"
	"github.com/angelmondragon/mixtrack-backend/pkg/redis"
)

const serviceKind = "cron-worker"

func main() {
	bootLog := logger.New(logger.Options{ServiceName: serviceKind})
	if err := godotenv.Load(); err != nil {
		bootLog.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		bootLog.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	cfg.Service.Kind = serviceKind
	logg := logger.New(logger.Options{
		ServiceName: serviceKind,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "serviceKind": serviceKind})

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		stop()
		os.Exit(1)
	}
	logg.Info(ctx, "cron worker shutting down gracefully")
}

// run wires the reconcile job behind a Redis lease and blocks until ctx is
// cancelled.
func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("bootstrap database: %w", err)
	}
	defer closeWith(ctx, logg, "database", dbClient.Close)

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return fmt.Errorf("dev migrations: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return fmt.Errorf("bootstrap redis: %w", err)
	}
	defer closeWith(ctx, logg, "redis", redisClient.Close)

	receiptService, err := receipts.NewService(receipts.ServiceParams{
		Repo:    receipts.NewRepository(dbClient.DB()),
		DB:      dbClient,
		Kinds:   enums.NewReceiptKindSet(cfg.Receipts.Kinds),
		Logger:  logg,
		Metrics: metrics.NewCascadeMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		return fmt.Errorf("receipt service: %w", err)
	}

	reconcileJob, err := cron.NewReceiptStatusReconcileJob(cron.ReceiptStatusReconcileJobParams{
		Logger:   logg,
		Receipts: receiptService,
	})
	if err != nil {
		return fmt.Errorf("reconcile job: %w", err)
	}
	registry, err := cron.NewRegistry(reconcileJob)
	if err != nil {
		return fmt.Errorf("register jobs: %w", err)
	}

	env := cfg.App.Env
	if env == "" {
		env = "local"
	}
	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey(serviceKind+":"+env), cfg.Cron.LockTTL)
	if err != nil {
		return fmt.Errorf("cron lock: %w", err)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
		Schedule: cfg.Cron.Schedule,
	})
	if err != nil {
		return fmt.Errorf("cron service: %w", err)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"schedule": cfg.Cron.Schedule,
		"interval": cfg.Cron.Interval.String(),
		"jobs":     registry.Names(),
	}), "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func closeWith(ctx context.Context, logg *logger.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logg.Error(ctx, "error closing "+name, err)
	}
}
