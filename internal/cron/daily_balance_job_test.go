package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/shopbalance-backend/internal/reconcile"
	"github.com/angelmondragon/shopbalance-backend/pkg/logger"
)

type fakeRecalculator struct {
	calls []time.Time
	fail  map[string]error
}

func (f *fakeRecalculator) RecalculateDailyReport(_ context.Context, date time.Time) (reconcile.RecalculateResult, error) {
	f.calls = append(f.calls, date)
	day := date.Format(time.DateOnly)
	if err := f.fail[day]; err != nil {
		return reconcile.RecalculateResult{Date: day}, err
	}
	return reconcile.RecalculateResult{Success: true, Date: day}, nil
}

func newDailyBalanceJobTest(t *testing.T, params DailyBalanceJobParams) *dailyBalanceJob {
	t.Helper()
	params.Logger = logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard})
	job, err := NewDailyBalanceJob(params)
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	return job.(*dailyBalanceJob)
}

func TestDailyBalanceJobRebuildsYesterdayByDefault(t *testing.T) {
	recalc := &fakeRecalculator{}
	job := newDailyBalanceJobTest(t, DailyBalanceJobParams{Reconciler: recalc})
	job.now = func() time.Time { return time.Date(2024, 1, 11, 2, 30, 0, 0, time.UTC) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(recalc.calls) != 1 {
		t.Fatalf("expected 1 rebuild, got %d", len(recalc.calls))
	}
	if got := recalc.calls[0].Format(time.DateOnly); got != "2024-01-10" {
		t.Fatalf("expected 2024-01-10, got %s", got)
	}
}

func TestDailyBalanceJobUsesReportTimezone(t *testing.T) {
	recalc := &fakeRecalculator{}
	job := newDailyBalanceJobTest(t, DailyBalanceJobParams{
		Reconciler: recalc,
		Location:   time.FixedZone("UTC+3", 3*3600),
	})
	// 22:00 UTC on the 10th is already the 11th at UTC+3.
	job.now = func() time.Time { return time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := recalc.calls[0].Format(time.DateOnly); got != "2024-01-10" {
		t.Fatalf("expected 2024-01-10, got %s", got)
	}
}

func TestDailyBalanceJobContinuesPastFailures(t *testing.T) {
	boom := errors.New("boom")
	recalc := &fakeRecalculator{fail: map[string]error{"2024-01-08": boom}}
	job := newDailyBalanceJobTest(t, DailyBalanceJobParams{Reconciler: recalc, LookbackDays: 3})
	job.now = func() time.Time { return time.Date(2024, 1, 11, 0, 5, 0, 0, time.UTC) }

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected failure to be reported")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if n := len(multierr.Errors(err)); n != 1 {
		t.Fatalf("expected 1 combined error, got %d", n)
	}

	want := []string{"2024-01-08", "2024-01-09", "2024-01-10"}
	if len(recalc.calls) != len(want) {
		t.Fatalf("expected %d rebuilds, got %d", len(want), len(recalc.calls))
	}
	for i, day := range want {
		if got := recalc.calls[i].Format(time.DateOnly); got != day {
			t.Fatalf("call %d: expected %s, got %s", i, day, got)
		}
	}
}

func TestNewDailyBalanceJobValidatesParams(t *testing.T) {
	if _, err := NewDailyBalanceJob(DailyBalanceJobParams{Reconciler: &fakeRecalculator{}}); err == nil {
		t.Fatal("expected missing logger to fail")
	}
	logg := logger.New(logger.Options{Output: io.Discard})
	if _, err := NewDailyBalanceJob(DailyBalanceJobParams{Logger: logg}); err == nil {
		t.Fatal("expected missing reconciler to fail")
	}
	job, err := NewDailyBalanceJob(DailyBalanceJobParams{Logger: logg, Reconciler: &fakeRecalculator{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Name() != "daily-balance" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
}
