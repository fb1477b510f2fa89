package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/shopbalance-backend/internal/reconcile"
	"github.com/angelmondragon/shopbalance-backend/pkg/logger"
	"github.com/angelmondragon/shopbalance-backend/pkg/types"
)

const defaultLookbackDays = 1

type dailyReportRecalculator interface {
	RecalculateDailyReport(ctx context.Context, date time.Time) (reconcile.RecalculateResult, error)
}

// DailyBalanceJobParams configure the nightly balance rebuild.
type DailyBalanceJobParams struct {
	Logger       *logger.Logger
	Reconciler   dailyReportRecalculator
	Location     *time.Location
	LookbackDays int
}

// NewDailyBalanceJob builds the cron job that rebuilds the most recent
// completed days.
func NewDailyBalanceJob(params DailyBalanceJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reconciler == nil {
		return nil, fmt.Errorf("reconciler required")
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	lookback := params.LookbackDays
	if lookback <= 0 {
		lookback = defaultLookbackDays
	}
	return &dailyBalanceJob{
		logg:       params.Logger,
		reconciler: params.Reconciler,
		location:   loc,
		lookback:   lookback,
		now:        time.Now,
	}, nil
}

type dailyBalanceJob struct {
	logg       *logger.Logger
	reconciler dailyReportRecalculator
	location   *time.Location
	lookback   int
	now        func() time.Time
}

func (j *dailyBalanceJob) Name() string { return "daily-balance" }

// Run rebuilds each of the lookback days, oldest first. A failing day does not
// stop the others.
func (j *dailyBalanceJob) Run(ctx context.Context) error {
	var errs error
	rebuilt := 0
	for _, date := range j.dates() {
		if _, err := j.reconciler.RecalculateDailyReport(ctx, date); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rebuild %s: %w", date.Format(time.DateOnly), err))
			continue
		}
		rebuilt++
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"days_rebuilt": rebuilt, "days_requested": j.lookback})
	j.logg.Info(logCtx, "daily balance rebuild loop complete")
	return errs
}

// dates lists the completed calendar days in the report timezone, excluding
// today.
func (j *dailyBalanceJob) dates() []time.Time {
	today := types.NormalizeDate(j.now().In(j.location))
	dates := make([]time.Time, 0, j.lookback)
	for offset := j.lookback; offset >= 1; offset-- {
		dates = append(dates, today.AddDate(0, 0, -offset))
	}
	return dates
}
