package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/shopbalance-backend/internal/cron"
	"github.com/angelmondragon/shopbalance-backend/internal/reconcile"
	"github.com/angelmondragon/shopbalance-backend/pkg/config"
	"github.com/angelmondragon/shopbalance-backend/pkg/db"
	"github.com/angelmondragon/shopbalance-backend/pkg/instance"
	"github.com/angelmondragon/shopbalance-backend/pkg/logger"
	"github.com/angelmondragon/shopbalance-backend/pkg/metrics"
	"github.com/angelmondragon/shopbalance-backend/pkg/migrate"
	"github.com/angelmondragon/shopbalance-backend/pkg/redis"
)

func main() {
	once := flag.Bool("once", false, "run a single cycle and exit")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	if err := run(logg, *once); err != nil {
		logg.Error(context.Background(), "cron worker failed", err)
		os.Exit(1)
	}
}

// run owns the database and redis connections so they are closed on every
// return path before main exits.
func run(logg *logger.Logger, once bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("bootstrapping database: %w", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		return fmt.Errorf("running dev migrations: %w", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		return fmt.Errorf("bootstrapping redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	loc, err := cfg.Reconcile.Location()
	if err != nil {
		return err
	}

	reconciler, err := reconcile.NewServiceFromConfig(dbClient, cfg.Reconcile, logg, metrics.NewReconcileMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		return fmt.Errorf("creating reconcile service: %w", err)
	}

	dailyBalance, err := cron.NewDailyBalanceJob(cron.DailyBalanceJobParams{
		Logger:       logg,
		Reconciler:   reconciler,
		Location:     loc,
		LookbackDays: cfg.Reconcile.LookbackDays,
	})
	if err != nil {
		return fmt.Errorf("creating daily balance job: %w", err)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey(cron.LockName), cfg.Reconcile.CronLockTTL)
	if err != nil {
		return fmt.Errorf("creating cron lock: %w", err)
	}

	registry := cron.NewRegistry(dailyBalance)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Reconcile.CronInterval,
	})
	if err != nil {
		return fmt.Errorf("creating cron service: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"instance":    instance.GetID(),
		"timezone":    loc.String(),
		"jobs":        registry.Names(),
	})

	if once {
		logg.Info(ctx, "running single cron cycle")
		return service.RunOnce(ctx)
	}

	logg.Info(ctx, "starting cron worker")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("cron worker stopped unexpectedly: %w", err)
	}
	logg.Info(ctx, "cron worker shutting down gracefully")
	return nil
}
