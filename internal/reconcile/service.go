package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopbalance-backend/internal/balances"
	"github.com/angelmondragon/shopbalance-backend/internal/debts"
	"github.com/angelmondragon/shopbalance-backend/internal/orders"
	"github.com/angelmondragon/shopbalance-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/shopbalance-backend/pkg/errors"
	"github.com/angelmondragon/shopbalance-backend/pkg/logger"
	"github.com/angelmondragon/shopbalance-backend/pkg/metrics"
	"github.com/angelmondragon/shopbalance-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service rebuilds daily shop balances from orders and serves the reports
// read from them.
type Service interface {
	RecalculateDailyReport(ctx context.Context, date time.Time) (RecalculateResult, error)
	FindReportsByDate(ctx context.Context, date time.Time) ([]ShopReport, error)
	FindDetailedReport(ctx context.Context, date time.Time, shopID uuid.UUID) (*DetailedReport, error)
}

// ServiceParams wires the reconciliation service.
type ServiceParams struct {
	TxRunner          txRunner
	Orders            orders.Repository
	Balances          balances.Repository
	Debts             debts.Repository
	RemittanceFormula balances.RemittanceFormula
	Location          *time.Location
	Logger            *logger.Logger
	Metrics           *metrics.ReconcileMetrics
}

type service struct {
	tx           txRunner
	orders       orders.Repository
	balances     balances.Repository
	debts        debts.Repository
	calculator   *balances.Calculator
	accumulator  *balances.Accumulator
	synchronizer *debts.Synchronizer
	location     *time.Location
	logg         *logger.Logger
	metrics      *metrics.ReconcileMetrics
}

// NewService builds the reconciliation service. Location defaults to UTC and
// the remittance formula to GrossRemittance.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Balances == nil {
		return nil, fmt.Errorf("balances repository required")
	}
	if params.Debts == nil {
		return nil, fmt.Errorf("debts repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}

	accumulator, err := balances.NewAccumulator(params.Balances)
	if err != nil {
		return nil, err
	}
	balanceRepo := params.Balances
	synchronizer, err := debts.NewSynchronizer(params.Debts, func(tx *gorm.DB) debts.BalanceReader {
		return balanceRepo.WithTx(tx)
	})
	if err != nil {
		return nil, err
	}

	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		tx:           params.TxRunner,
		orders:       params.Orders,
		balances:     params.Balances,
		debts:        params.Debts,
		calculator:   balances.NewCalculator(params.RemittanceFormula),
		accumulator:  accumulator,
		synchronizer: synchronizer,
		location:     loc,
		logg:         params.Logger,
		metrics:      params.Metrics,
	}, nil
}

type rebuildStats struct {
	balancesPurged int64
	debtsPurged    int64
	ordersReplayed int
	shopsSynced    int
}

// RecalculateDailyReport discards the derived state of date and replays every
// order created on it in one transaction. Nothing is committed on failure.
func (s *service) RecalculateDailyReport(ctx context.Context, date time.Time) (RecalculateResult, error) {
	window := s.window(date)
	ctx = s.logg.WithReportDate(ctx, window.Date)
	ctx = s.logg.WithField(ctx, "event", "reconcile.rebuild")
	s.logg.Info(ctx, "daily balance rebuild starting")

	start := time.Now()
	var stats rebuildStats
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		stats, err = s.rebuild(ctx, tx, window)
		return err
	})
	duration := time.Since(start)
	ctx = s.logg.WithField(ctx, "duration_ms", duration.Milliseconds())

	if err != nil {
		err = classify(err, "rebuild daily balances")
		s.metrics.ObserveRebuild(metrics.OutcomeFailure, duration)
		s.logg.Error(ctx, "daily balance rebuild failed", err)
		return RecalculateResult{Success: false, Date: window.String()}, err
	}

	s.metrics.ObserveRebuild(metrics.OutcomeSuccess, duration)
	s.metrics.AddReplayed(stats.ordersReplayed)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"balances_purged": stats.balancesPurged,
		"debts_purged":    stats.debtsPurged,
		"orders_replayed": stats.ordersReplayed,
		"shops_synced":    stats.shopsSynced,
	})
	s.logg.Info(ctx, "daily balance rebuild complete")
	return RecalculateResult{Success: true, Date: window.String()}, nil
}

func (s *service) rebuild(ctx context.Context, tx *gorm.DB, window types.DayWindow) (rebuildStats, error) {
	var stats rebuildStats
	if err := db.AcquireXactLock(tx, rebuildLockKey(window)); err != nil {
		return stats, fmt.Errorf("acquire rebuild lock: %w", err)
	}

	balanceRepo := s.balances.WithTx(tx)
	purged, err := balanceRepo.DeleteByDate(ctx, window.Date)
	if err != nil {
		return stats, fmt.Errorf("purge balances: %w", err)
	}
	stats.balancesPurged = purged

	purged, err = s.debts.WithTx(tx).DeleteDailyBalanceByWindow(ctx, window)
	if err != nil {
		return stats, fmt.Errorf("purge debts: %w", err)
	}
	stats.debtsPurged = purged

	rows, err := s.orders.WithTx(tx).ListForReportDate(ctx, window)
	if err != nil {
		return stats, fmt.Errorf("load orders: %w", err)
	}
	for _, order := range rows {
		if err := s.replay(ctx, tx, window, order); err != nil {
			return stats, err
		}
		stats.ordersReplayed++
	}

	shopIDs, err := balanceRepo.ListShopIDsByDate(ctx, window.Date)
	if err != nil {
		return stats, fmt.Errorf("list balances: %w", err)
	}
	for _, shopID := range shopIDs {
		if _, err := s.synchronizer.Sync(ctx, tx, shopID, window); err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeIntegrity) {
				s.metrics.IncIntegrityViolation()
			}
			return stats, fmt.Errorf("sync debt for shop %s: %w", shopID, err)
		}
		stats.shopsSynced++
	}
	return stats, nil
}

// replay applies the sent impact of order and, for settled orders, its final
// impact.
func (s *service) replay(ctx context.Context, tx *gorm.DB, window types.DayWindow, order orders.BillableOrder) error {
	sent, err := s.calculator.SentImpact(order)
	if err != nil {
		return err
	}
	if err := s.accumulator.Apply(ctx, tx, order.ShopID, window.Date, sent); err != nil {
		return fmt.Errorf("apply sent impact of order %s: %w", order.ID, err)
	}

	final, ok, err := s.calculator.FinalImpact(order)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := s.accumulator.Apply(ctx, tx, order.ShopID, window.Date, final); err != nil {
		return fmt.Errorf("apply final impact of order %s: %w", order.ID, err)
	}
	return nil
}

func (s *service) window(date time.Time) types.DayWindow {
	return types.NewDayWindow(types.NormalizeDate(date), s.location)
}

func rebuildLockKey(window types.DayWindow) string {
	return "daily_balance:" + window.String()
}

// classify maps untyped failures onto the error taxonomy, keeping typed errors
// raised deeper in the stack untouched.
func classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	if db.IsTransient(err) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
