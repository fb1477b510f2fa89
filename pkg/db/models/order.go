package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopbalance-backend/pkg/enums"
)

// Order is a delivery order as written by the order-processing subsystem.
// Monetary columns are nullable; absent amounts count as zero.
type Order struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	ShopID           uuid.UUID           `gorm:"column:shop_id;type:uuid;not null"`
	Status           enums.OrderStatus   `gorm:"column:status;type:text;not null"`
	ArticleAmount    decimal.NullDecimal `gorm:"column:article_amount;type:numeric(14,2)"`
	DeliveryFee      decimal.NullDecimal `gorm:"column:delivery_fee;type:numeric(14,2)"`
	ExpeditionFee    decimal.NullDecimal `gorm:"column:expedition_fee;type:numeric(14,2)"`
	AmountReceived   decimal.NullDecimal `gorm:"column:amount_received;type:numeric(14,2)"`
	DeliveryLocation *string             `gorm:"column:delivery_location"`
	CustomerPhone    *string             `gorm:"column:customer_phone"`
	Items            []OrderItem         `gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time           `gorm:"column:created_at"`
	UpdatedAt        time.Time           `gorm:"column:updated_at"`
}
