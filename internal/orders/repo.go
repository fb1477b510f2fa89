package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopbalance-backend/internal/repo"
	"github.com/angelmondragon/shopbalance-backend/pkg/db/models"
	"github.com/angelmondragon/shopbalance-backend/pkg/enums"
	"github.com/angelmondragon/shopbalance-backend/pkg/types"
)

// BillableOrder is an order joined with the billing flags of its shop, the
// input the balance calculator needs.
type BillableOrder struct {
	ID             uuid.UUID           `gorm:"column:id"`
	ShopID         uuid.UUID           `gorm:"column:shop_id"`
	Status         enums.OrderStatus   `gorm:"column:status"`
	ArticleAmount  decimal.NullDecimal `gorm:"column:article_amount"`
	DeliveryFee    decimal.NullDecimal `gorm:"column:delivery_fee"`
	ExpeditionFee  decimal.NullDecimal `gorm:"column:expedition_fee"`
	AmountReceived decimal.NullDecimal `gorm:"column:amount_received"`
	CreatedAt      time.Time           `gorm:"column:created_at"`
	BillPackaging  bool                `gorm:"column:bill_packaging"`
	PackagingPrice decimal.NullDecimal `gorm:"column:packaging_price"`
}

// Repository reads the order tables owned by the order-processing subsystem.
// It never writes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListForReportDate(ctx context.Context, window types.DayWindow) ([]BillableOrder, error)
	ListSettledForShop(ctx context.Context, shopID uuid.UUID, window types.DayWindow) ([]models.Order, error)
	ListItemsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]models.OrderItem, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns an order reader bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) ListForReportDate(ctx context.Context, window types.DayWindow) ([]BillableOrder, error) {
	var rows []BillableOrder
	err := r.DB(ctx).
		Table("orders AS o").
		Select(`o.id, o.shop_id, o.status, o.article_amount, o.delivery_fee, o.expedition_fee,
			o.amount_received, o.created_at, s.bill_packaging, s.packaging_price`).
		Joins("JOIN shops s ON s.id = o.shop_id").
		Where("o.created_at >= ? AND o.created_at < ?", window.Start, window.End).
		Order("o.created_at ASC, o.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListSettledForShop(ctx context.Context, shopID uuid.UUID, window types.DayWindow) ([]models.Order, error) {
	var rows []models.Order
	err := r.DB(ctx).
		Where("shop_id = ?", shopID).
		Where("status IN ?", enums.SettledOrderStatuses).
		Where("created_at >= ? AND created_at < ?", window.Start, window.End).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListItemsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]models.OrderItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var items []models.OrderItem
	err := r.DB(ctx).
		Where("order_id IN ?", orderIDs).
		Order("order_id ASC, item_name ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
