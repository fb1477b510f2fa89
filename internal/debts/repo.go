package debts

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopbalance-backend/internal/repo"
	"github.com/angelmondragon/shopbalance-backend/pkg/db/models"
	"github.com/angelmondragon/shopbalance-backend/pkg/enums"
	"github.com/angelmondragon/shopbalance-backend/pkg/types"
)

// Repository manages the daily_balance slice of the debts ledger. Rows of any
// other type are never touched.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListDailyBalance(ctx context.Context, shopID uuid.UUID, window types.DayWindow) ([]models.Debt, error)
	Create(ctx context.Context, debt *models.Debt) error
	UpdateAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	DeleteDailyBalanceByWindow(ctx context.Context, window types.DayWindow) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a debt repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

// ListDailyBalance returns the shop's daily_balance debts dated inside window,
// oldest first.
func (r *repository) ListDailyBalance(ctx context.Context, shopID uuid.UUID, window types.DayWindow) ([]models.Debt, error) {
	var debts []models.Debt
	err := r.DB(ctx).
		Where("shop_id = ? AND type = ?", shopID, enums.DebtTypeDailyBalance).
		Where("created_at >= ? AND created_at < ?", window.Start, window.End).
		Order("created_at ASC, id ASC").
		Find(&debts).Error
	if err != nil {
		return nil, err
	}
	return debts, nil
}

func (r *repository) Create(ctx context.Context, debt *models.Debt) error {
	return r.DB(ctx).Create(debt).Error
}

func (r *repository) UpdateAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return r.DB(ctx).
		Model(&models.Debt{}).
		Where("id = ? AND type = ?", id, enums.DebtTypeDailyBalance).
		Update("amount", amount).Error
}

func (r *repository) DeleteDailyBalanceByWindow(ctx context.Context, window types.DayWindow) (int64, error) {
	result := r.DB(ctx).
		Where("type = ?", enums.DebtTypeDailyBalance).
		Where("created_at >= ? AND created_at < ?", window.Start, window.End).
		Delete(&models.Debt{})
	return result.RowsAffected, result.Error
}
