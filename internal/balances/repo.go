package balances

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopbalance-backend/internal/repo"
	"github.com/angelmondragon/shopbalance-backend/pkg/db/models"
)

// ShopBalanceRow is a balance joined with the display fields of its shop.
type ShopBalanceRow struct {
	models.DailyShopBalance `gorm:"embedded"`
	ShopName                string          `gorm:"column:shop_name"`
	ShopExpeditionFee       decimal.Decimal `gorm:"column:shop_expedition_fee"`
}

// Repository persists daily shop balances.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindForUpdate(ctx context.Context, shopID uuid.UUID, date time.Time) (*models.DailyShopBalance, error)
	Create(ctx context.Context, balance *models.DailyShopBalance) error
	Update(ctx context.Context, balance *models.DailyShopBalance) error
	DeleteByDate(ctx context.Context, date time.Time) (int64, error)
	ListShopIDsByDate(ctx context.Context, date time.Time) ([]uuid.UUID, error)
	ListWithShopByDate(ctx context.Context, date time.Time) ([]ShopBalanceRow, error)
	FindWithShop(ctx context.Context, shopID uuid.UUID, date time.Time) (*ShopBalanceRow, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a balance repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

// FindForUpdate returns nil when no row exists. On Postgres the row is locked
// until the surrounding transaction ends.
func (r *repository) FindForUpdate(ctx context.Context, shopID uuid.UUID, date time.Time) (*models.DailyShopBalance, error) {
	var balance models.DailyShopBalance
	err := r.LockedDB(ctx).Where("shop_id = ? AND report_date = ?", shopID, date).Take(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

func (r *repository) Create(ctx context.Context, balance *models.DailyShopBalance) error {
	return r.DB(ctx).Create(balance).Error
}

func (r *repository) Update(ctx context.Context, balance *models.DailyShopBalance) error {
	return r.DB(ctx).
		Model(&models.DailyShopBalance{}).
		Where("shop_id = ? AND report_date = ?", balance.ShopID, balance.ReportDate).
		Updates(map[string]any{
			"total_orders_sent":      balance.TotalOrdersSent,
			"total_orders_delivered": balance.TotalOrdersDelivered,
			"total_revenue_articles": balance.TotalRevenueArticles,
			"total_delivery_fees":    balance.TotalDeliveryFees,
			"total_expedition_fees":  balance.TotalExpeditionFees,
			"total_packaging_fees":   balance.TotalPackagingFees,
			"total_storage_fees":     balance.TotalStorageFees,
			"remittance_amount":      balance.RemittanceAmount,
		}).Error
}

func (r *repository) DeleteByDate(ctx context.Context, date time.Time) (int64, error) {
	result := r.DB(ctx).Where("report_date = ?", date).Delete(&models.DailyShopBalance{})
	return result.RowsAffected, result.Error
}

func (r *repository) ListShopIDsByDate(ctx context.Context, date time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB(ctx).
		Model(&models.DailyShopBalance{}).
		Where("report_date = ?", date).
		Order("shop_id ASC").
		Pluck("shop_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) ListWithShopByDate(ctx context.Context, date time.Time) ([]ShopBalanceRow, error) {
	var rows []ShopBalanceRow
	err := r.withShop(ctx).
		Where("b.report_date = ?", date).
		Order("s.name ASC, b.shop_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindWithShop returns nil when the shop has no balance for date.
func (r *repository) FindWithShop(ctx context.Context, shopID uuid.UUID, date time.Time) (*ShopBalanceRow, error) {
	var rows []ShopBalanceRow
	err := r.withShop(ctx).
		Where("b.report_date = ? AND b.shop_id = ?", date, shopID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *repository) withShop(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Table("daily_shop_balances AS b").
		Select("b.*, s.name AS shop_name, s.expedition_fee AS shop_expedition_fee").
		Joins("JOIN shops s ON s.id = b.shop_id")
}
