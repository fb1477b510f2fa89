package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopbalance-backend/pkg/enums"
)

// Debt is an entry of the shared debts ledger. Rows of type daily_balance are
// projections of DailyShopBalance and are dated through CreatedAt.
type Debt struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ShopID      uuid.UUID       `gorm:"column:shop_id;type:uuid;not null"`
	Type        enums.DebtType  `gorm:"column:type;type:text;not null"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Description *string         `gorm:"column:description"`
	CreatedAt   time.Time       `gorm:"column:created_at;not null"`
}
