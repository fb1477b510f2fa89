// Package dbtest opens throwaway sqlite databases carrying the reconciliation
// schema for package tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/angelmondragon/shopbalance-backend/pkg/db/models"
	"github.com/angelmondragon/shopbalance-backend/pkg/enums"
)

var dbSeq atomic.Int64

const schema = `
CREATE TABLE shops (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  bill_packaging INTEGER NOT NULL DEFAULT 0,
  packaging_price NUMERIC NOT NULL DEFAULT 0,
  expedition_fee NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE orders (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL REFERENCES shops(id),
  status TEXT NOT NULL,
  article_amount NUMERIC,
  delivery_fee NUMERIC,
  expedition_fee NUMERIC,
  amount_received NUMERIC,
  delivery_location TEXT,
  customer_phone TEXT,
  created_at DATETIME NOT NULL,
  updated_at DATETIME
);
CREATE TABLE order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id),
  item_name TEXT NOT NULL,
  quantity INTEGER NOT NULL
);
CREATE TABLE daily_shop_balances (
  shop_id TEXT NOT NULL REFERENCES shops(id),
  report_date DATE NOT NULL,
  total_orders_sent INTEGER NOT NULL DEFAULT 0,
  total_orders_delivered INTEGER NOT NULL DEFAULT 0,
  total_revenue_articles NUMERIC NOT NULL DEFAULT 0,
  total_delivery_fees NUMERIC NOT NULL DEFAULT 0,
  total_expedition_fees NUMERIC NOT NULL DEFAULT 0,
  total_packaging_fees NUMERIC NOT NULL DEFAULT 0,
  total_storage_fees NUMERIC NOT NULL DEFAULT 0,
  remittance_amount NUMERIC NOT NULL DEFAULT 0,
  PRIMARY KEY (shop_id, report_date)
);
CREATE TABLE debts (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL REFERENCES shops(id),
  type TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  description TEXT,
  created_at DATETIME NOT NULL
);`

// Open returns an isolated in-memory database with the reconciliation tables.
// A single connection is kept open so every statement sees the same memory
// database; code under test must route work inside a transaction through tx.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:shopbalance_%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

// Money parses a decimal literal, failing the test on bad input.
func Money(t testing.TB, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	require.NoError(t, err)
	return d
}

// NullMoney is Money wrapped as a present nullable amount.
func NullMoney(t testing.TB, raw string) decimal.NullDecimal {
	t.Helper()
	return decimal.NewNullDecimal(Money(t, raw))
}

// RequireMoney asserts decimal equality by value so "5000" equals "5000.00".
func RequireMoney(t testing.TB, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, Money(t, want).Equal(got), "expected %s, got %s", want, got.String())
}

// ShopOption tweaks a seeded shop.
type ShopOption func(*models.Shop)

// WithPackaging enables packaging billing at price.
func WithPackaging(price decimal.Decimal) ShopOption {
	return func(s *models.Shop) {
		s.BillPackaging = true
		s.PackagingPrice = price
	}
}

// WithExpeditionFee sets the shop's configured expedition fee.
func WithExpeditionFee(fee decimal.Decimal) ShopOption {
	return func(s *models.Shop) { s.ExpeditionFee = fee }
}

// CreateShop inserts a shop named name.
func CreateShop(t testing.TB, db *gorm.DB, name string, opts ...ShopOption) models.Shop {
	t.Helper()
	shop := models.Shop{ID: uuid.New(), Name: name}
	for _, opt := range opts {
		opt(&shop)
	}
	require.NoError(t, db.Create(&shop).Error)
	return shop
}

// OrderSpec describes a seeded order. Empty amount strings are stored as NULL.
type OrderSpec struct {
	Status         enums.OrderStatus
	ArticleAmount  string
	DeliveryFee    string
	ExpeditionFee  string
	AmountReceived string
	CreatedAt      time.Time
	Items          map[string]int
}

// CreateOrder inserts an order for shop along with its items.
func CreateOrder(t testing.TB, db *gorm.DB, shopID uuid.UUID, spec OrderSpec) models.Order {
	t.Helper()
	order := models.Order{
		ID:             uuid.New(),
		ShopID:         shopID,
		Status:         spec.Status,
		ArticleAmount:  nullable(t, spec.ArticleAmount),
		DeliveryFee:    nullable(t, spec.DeliveryFee),
		ExpeditionFee:  nullable(t, spec.ExpeditionFee),
		AmountReceived: nullable(t, spec.AmountReceived),
		CreatedAt:      spec.CreatedAt.UTC(),
		UpdatedAt:      spec.CreatedAt.UTC(),
	}
	require.NoError(t, db.Omit("Items").Create(&order).Error)

	for name, qty := range spec.Items {
		item := models.OrderItem{ID: uuid.New(), OrderID: order.ID, ItemName: name, Quantity: qty}
		require.NoError(t, db.Create(&item).Error)
		order.Items = append(order.Items, item)
	}
	return order
}

// SetOrderStatus rewrites the status column directly, bypassing enum checks.
func SetOrderStatus(t testing.TB, db *gorm.DB, orderID uuid.UUID, status string) {
	t.Helper()
	require.NoError(t, db.Exec("UPDATE orders SET status = ? WHERE id = ?", status, orderID).Error)
}

// Balances returns every balance row for date ordered by shop.
func Balances(t testing.TB, db *gorm.DB, date time.Time) []models.DailyShopBalance {
	t.Helper()
	var rows []models.DailyShopBalance
	require.NoError(t, db.Where("report_date = ?", date).Order("shop_id ASC").Find(&rows).Error)
	return rows
}

// Debts returns every debt of the given type ordered by shop and creation.
func Debts(t testing.TB, db *gorm.DB, debtType enums.DebtType) []models.Debt {
	t.Helper()
	var rows []models.Debt
	require.NoError(t, db.Where("type = ?", debtType).Order("shop_id ASC, created_at ASC, id ASC").Find(&rows).Error)
	return rows
}

func nullable(t testing.TB, raw string) decimal.NullDecimal {
	if raw == "" {
		return decimal.NullDecimal{}
	}
	return NullMoney(t, raw)
}
