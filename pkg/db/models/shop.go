package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shop is the merchant account whose orders settle daily. Owned by the
// account subsystem; the reconciliation engine only reads it.
type Shop struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name           string          `gorm:"column:name;not null"`
	BillPackaging  bool            `gorm:"column:bill_packaging;not null;default:false"`
	PackagingPrice decimal.Decimal `gorm:"column:packaging_price;type:numeric(14,2);not null;default:0"`
	ExpeditionFee  decimal.Decimal `gorm:"column:expedition_fee;type:numeric(14,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
