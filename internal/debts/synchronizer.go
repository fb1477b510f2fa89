package debts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopbalance-backend/pkg/db/models"
	"github.com/angelmondragon/shopbalance-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopbalance-backend/pkg/errors"
	"github.com/angelmondragon/shopbalance-backend/pkg/types"
)

// debtNamespace seeds deterministic ids so a rebuilt debt keeps its id.
var debtNamespace = uuid.MustParse("5b0f6f7e-3c0d-4f4b-9a8e-2f51d7c1a9d4")

// SyncAction describes what Sync did to the ledger.
type SyncAction string

const (
	SyncActionCreated   SyncAction = "created"
	SyncActionUpdated   SyncAction = "updated"
	SyncActionUnchanged SyncAction = "unchanged"
)

// BalanceReader is the slice of the balance repository Sync needs.
type BalanceReader interface {
	FindForUpdate(ctx context.Context, shopID uuid.UUID, date time.Time) (*models.DailyShopBalance, error)
}

// BalanceReaderFactory binds a balance reader to a transaction.
type BalanceReaderFactory func(tx *gorm.DB) BalanceReader

// Synchronizer keeps exactly one daily_balance debt per (shop, day) equal to
// the day's remittance amount.
type Synchronizer struct {
	repo     Repository
	balances BalanceReaderFactory
}

// NewSynchronizer wires a synchronizer with its repositories.
func NewSynchronizer(repo Repository, balances BalanceReaderFactory) (*Synchronizer, error) {
	if repo == nil {
		return nil, fmt.Errorf("debt repository required")
	}
	if balances == nil {
		return nil, fmt.Errorf("balance reader required")
	}
	return &Synchronizer{repo: repo, balances: balances}, nil
}

// Sync aligns the shop's daily_balance debt for window with its balance. It
// must run after every balance mutation for the day, inside the same tx.
// When duplicates exist the oldest is updated and an integrity error is
// returned alongside the action taken.
func (s *Synchronizer) Sync(ctx context.Context, tx *gorm.DB, shopID uuid.UUID, window types.DayWindow) (SyncAction, error) {
	balance, err := s.balances(tx).FindForUpdate(ctx, shopID, window.Date)
	if err != nil {
		return "", fmt.Errorf("load balance: %w", err)
	}
	if balance == nil {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "no balance to project into a debt").
			WithDetails(map[string]any{"shop_id": shopID.String(), "date": window.String()})
	}

	repo := s.repo.WithTx(tx)
	existing, err := repo.ListDailyBalance(ctx, shopID, window)
	if err != nil {
		return "", fmt.Errorf("list debts: %w", err)
	}

	if len(existing) == 0 {
		description := fmt.Sprintf("Daily balance %s", window.String())
		debt := &models.Debt{
			ID:          DailyBalanceDebtID(shopID, window),
			ShopID:      shopID,
			Type:        enums.DebtTypeDailyBalance,
			Amount:      balance.RemittanceAmount,
			Description: &description,
			CreatedAt:   window.Start,
		}
		if err := repo.Create(ctx, debt); err != nil {
			return "", fmt.Errorf("create debt: %w", err)
		}
		return SyncActionCreated, nil
	}

	target := existing[0]
	action := SyncActionUnchanged
	if !target.Amount.Equal(balance.RemittanceAmount) {
		if err := repo.UpdateAmount(ctx, target.ID, balance.RemittanceAmount); err != nil {
			return "", fmt.Errorf("update debt: %w", err)
		}
		action = SyncActionUpdated
	}

	if len(existing) > 1 {
		return action, pkgerrors.New(pkgerrors.CodeIntegrity, "multiple daily balance debts for shop and day").
			WithDetails(map[string]any{
				"shop_id": shopID.String(),
				"date":    window.String(),
				"count":   len(existing),
				"kept_id": target.ID.String(),
			})
	}
	return action, nil
}

// DailyBalanceDebtID derives the stable id of the daily_balance debt for a shop
// and day.
func DailyBalanceDebtID(shopID uuid.UUID, window types.DayWindow) uuid.UUID {
	return uuid.NewSHA1(debtNamespace, []byte("daily_balance:"+shopID.String()+":"+window.String()))
}
