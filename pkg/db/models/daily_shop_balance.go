package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyShopBalance is the per-(shop, day) financial summary derived from
// orders. It is a materialized view: only the reconciliation engine writes it.
type DailyShopBalance struct {
	ShopID               uuid.UUID       `gorm:"column:shop_id;type:uuid;primaryKey"`
	ReportDate           time.Time       `gorm:"column:report_date;type:date;primaryKey"`
	TotalOrdersSent      int64           `gorm:"column:total_orders_sent;not null;default:0"`
	TotalOrdersDelivered int64           `gorm:"column:total_orders_delivered;not null;default:0"`
	TotalRevenueArticles decimal.Decimal `gorm:"column:total_revenue_articles;type:numeric(14,2);not null;default:0"`
	TotalDeliveryFees    decimal.Decimal `gorm:"column:total_delivery_fees;type:numeric(14,2);not null;default:0"`
	TotalExpeditionFees  decimal.Decimal `gorm:"column:total_expedition_fees;type:numeric(14,2);not null;default:0"`
	TotalPackagingFees   decimal.Decimal `gorm:"column:total_packaging_fees;type:numeric(14,2);not null;default:0"`
	TotalStorageFees     decimal.Decimal `gorm:"column:total_storage_fees;type:numeric(14,2);not null;default:0"`
	RemittanceAmount     decimal.Decimal `gorm:"column:remittance_amount;type:numeric(14,2);not null;default:0"`
}

// TableName pins the table name used by migrations.
func (DailyShopBalance) TableName() string { return "daily_shop_balances" }
