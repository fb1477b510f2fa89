package reconcile

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopbalance-backend/pkg/enums"
)

// RecalculateResult confirms which date a rebuild processed.
type RecalculateResult struct {
	Success bool   `json:"success"`
	Date    string `json:"date"`
}

// ShopReport is the public summary of one shop's balance for a day. The
// remittance column is exposed as amount_to_remit.
type ShopReport struct {
	ShopID               uuid.UUID       `json:"shop_id"`
	ShopName             string          `json:"shop_name"`
	ReportDate           string          `json:"report_date"`
	TotalOrdersSent      int64           `json:"total_orders_sent"`
	TotalOrdersDelivered int64           `json:"total_orders_delivered"`
	TotalRevenueArticles decimal.Decimal `json:"total_revenue_articles"`
	TotalDeliveryFees    decimal.Decimal `json:"total_delivery_fees"`
	TotalExpeditionFees  decimal.Decimal `json:"total_expedition_fees"`
	TotalPackagingFees   decimal.Decimal `json:"total_packaging_fees"`
	TotalStorageFees     decimal.Decimal `json:"total_storage_fees"`
	AmountToRemit        decimal.Decimal `json:"amount_to_remit"`
	ExpeditionFee        decimal.Decimal `json:"expedition_fee"`
}

// ReportOrder is a settled order listed in a detailed report.
type ReportOrder struct {
	ID               uuid.UUID           `json:"id"`
	DeliveryLocation *string             `json:"delivery_location"`
	CustomerPhone    *string             `json:"customer_phone"`
	ArticleAmount    decimal.NullDecimal `json:"article_amount"`
	DeliveryFee      decimal.NullDecimal `json:"delivery_fee"`
	Status           enums.OrderStatus   `json:"status"`
	AmountReceived   decimal.NullDecimal `json:"amount_received"`
	ProductsList     string              `json:"products_list"`
}

// DetailedReport is a shop summary plus the day's delivered and failed orders.
type DetailedReport struct {
	ShopReport
	Orders []ReportOrder `json:"orders"`
}
