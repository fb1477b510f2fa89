package models

import "github.com/google/uuid"

// OrderItem is one product line of an order.
type OrderItem struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ItemName string    `gorm:"column:item_name;not null"`
	Quantity int       `gorm:"column:quantity;not null"`
}
