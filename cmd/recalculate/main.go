package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/angelmondragon/shopbalance-backend/internal/reconcile"
	"github.com/angelmondragon/shopbalance-backend/pkg/config"
	"github.com/angelmondragon/shopbalance-backend/pkg/db"
	"github.com/angelmondragon/shopbalance-backend/pkg/logger"
	"github.com/angelmondragon/shopbalance-backend/pkg/metrics"
	"github.com/angelmondragon/shopbalance-backend/pkg/types"
)

const maxRangeDays = 366

type recalculator interface {
	RecalculateDailyReport(ctx context.Context, date time.Time) (reconcile.RecalculateResult, error)
}

func main() {
	date := flag.String("date", "", "single report date (YYYY-MM-DD)")
	from := flag.String("from", "", "first report date of a range (YYYY-MM-DD)")
	to := flag.String("to", "", "last report date of a range, inclusive (YYYY-MM-DD)")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "recalculate"})
	_ = godotenv.Load()

	dates, err := resolveDates(*date, *from, *to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	if err := run(logg, dates); err != nil {
		logg.Error(context.Background(), "recalculate failed", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred closes happen before main exits.
func run(logg *logger.Logger, dates []time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logg = logger.New(logger.Options{
		ServiceName: "recalculate",
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

	svc, err := reconcile.NewServiceFromConfig(dbClient, cfg.Reconcile, logg, metrics.NewReconcileMetrics(nil))
	if err != nil {
		return fmt.Errorf("creating reconcile service: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	return recalculateAll(ctx, svc, dates, os.Stdout)
}

func resolveDates(date, from, to string) ([]time.Time, error) {
	switch {
	case date != "" && (from != "" || to != ""):
		return nil, fmt.Errorf("use either -date or -from/-to, not both")
	case date != "":
		d, err := types.ParseDate(date)
		if err != nil {
			return nil, err
		}
		return []time.Time{d}, nil
	case from != "" && to != "":
		start, err := types.ParseDate(from)
		if err != nil {
			return nil, fmt.Errorf("-from: %w", err)
		}
		end, err := types.ParseDate(to)
		if err != nil {
			return nil, fmt.Errorf("-to: %w", err)
		}
		return types.DateRange(start, end, maxRangeDays)
	default:
		return nil, fmt.Errorf("-date or both -from and -to are required")
	}
}

// recalculateAll rebuilds each date in its own transaction and keeps going
// past failures, stopping only when ctx is canceled.
func recalculateAll(ctx context.Context, svc recalculator, dates []time.Time, out io.Writer) error {
	var errs error
	for _, d := range dates {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		day := d.Format(time.DateOnly)
		if _, err := svc.RecalculateDailyReport(ctx, d); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", day, err))
			fmt.Fprintf(out, "%s\tFAILED\t%v\n", day, err)
			continue
		}
		fmt.Fprintf(out, "%s\tOK\n", day)
	}
	return errs
}
