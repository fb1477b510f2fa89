package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopbalance-backend/pkg/db/dbtest"
	"github.com/angelmondragon/shopbalance-backend/pkg/enums"
	"github.com/angelmondragon/shopbalance-backend/pkg/types"
)

func TestRepositoryListForReportDateJoinsShopFlags(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	packer := dbtest.CreateShop(t, db, "Packer", dbtest.WithPackaging(dbtest.Money(t, "500")))
	plain := dbtest.CreateShop(t, db, "Plain")

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	second := dbtest.CreateOrder(t, db, plain.ID, dbtest.OrderSpec{
		Status:        enums.OrderStatusPending,
		ExpeditionFee: "1000",
		CreatedAt:     day.Add(14 * time.Hour),
	})
	first := dbtest.CreateOrder(t, db, packer.ID, dbtest.OrderSpec{
		Status:        enums.OrderStatusDelivered,
		ArticleAmount: "10000",
		DeliveryFee:   "1000",
		ExpeditionFee: "1000",
		CreatedAt:     day.Add(9 * time.Hour),
	})
	dbtest.CreateOrder(t, db, packer.ID, dbtest.OrderSpec{
		Status:    enums.OrderStatusDelivered,
		CreatedAt: day.Add(-time.Second),
	})
	dbtest.CreateOrder(t, db, packer.ID, dbtest.OrderSpec{
		Status:    enums.OrderStatusDelivered,
		CreatedAt: day.Add(24 * time.Hour),
	})

	repo := NewRepository(db)
	rows, err := repo.ListForReportDate(ctx, types.NewDayWindow(day, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, first.ID, rows[0].ID)
	assert.True(t, rows[0].BillPackaging)
	dbtest.RequireMoney(t, "500", rows[0].PackagingPrice.Decimal)
	dbtest.RequireMoney(t, "10000", rows[0].ArticleAmount.Decimal)
	assert.Equal(t, enums.OrderStatusDelivered, rows[0].Status)

	assert.Equal(t, second.ID, rows[1].ID)
	assert.False(t, rows[1].BillPackaging)
	assert.False(t, rows[1].ArticleAmount.Valid)
	assert.Equal(t, plain.ID, rows[1].ShopID)
}

func TestRepositoryListForReportDateHonoursTimezone(t *testing.T) {
	db := dbtest.Open(t)
	shop := dbtest.CreateShop(t, db, "Lagos")

	loc := time.FixedZone("WAT", 3600)
	// 23:30 UTC on the 9th is 00:30 on the 10th in WAT.
	late := dbtest.CreateOrder(t, db, shop.ID, dbtest.OrderSpec{
		Status:    enums.OrderStatusPending,
		CreatedAt: time.Date(2024, 1, 9, 23, 30, 0, 0, time.UTC),
	})
	dbtest.CreateOrder(t, db, shop.ID, dbtest.OrderSpec{
		Status:    enums.OrderStatusPending,
		CreatedAt: time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC),
	})

	rows, err := NewRepository(db).ListForReportDate(context.Background(),
		types.NewDayWindow(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), loc))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, late.ID, rows[0].ID)
}

func TestRepositoryListSettledForShop(t *testing.T) {
	db := dbtest.Open(t)
	shop := dbtest.CreateShop(t, db, "Settled")
	other := dbtest.CreateShop(t, db, "Other")
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	delivered := dbtest.CreateOrder(t, db, shop.ID, dbtest.OrderSpec{Status: enums.OrderStatusDelivered, CreatedAt: day.Add(time.Hour)})
	failed := dbtest.CreateOrder(t, db, shop.ID, dbtest.OrderSpec{Status: enums.OrderStatusFailedDelivery, CreatedAt: day.Add(2 * time.Hour)})
	dbtest.CreateOrder(t, db, shop.ID, dbtest.OrderSpec{Status: enums.OrderStatusCancelled, CreatedAt: day.Add(3 * time.Hour)})
	dbtest.CreateOrder(t, db, shop.ID, dbtest.OrderSpec{Status: enums.OrderStatusInProgress, CreatedAt: day.Add(4 * time.Hour)})
	dbtest.CreateOrder(t, db, other.ID, dbtest.OrderSpec{Status: enums.OrderStatusDelivered, CreatedAt: day.Add(time.Hour)})

	rows, err := NewRepository(db).ListSettledForShop(context.Background(), shop.ID, types.NewDayWindow(day, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, delivered.ID, rows[0].ID)
	assert.Equal(t, failed.ID, rows[1].ID)
}

func TestRepositoryListItemsByOrderIDs(t *testing.T) {
	db := dbtest.Open(t)
	shop := dbtest.CreateShop(t, db, "Items")
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	order := dbtest.CreateOrder(t, db, shop.ID, dbtest.OrderSpec{
		Status:    enums.OrderStatusDelivered,
		CreatedAt: day,
		Items:     map[string]int{"Soap": 2, "Candle": 1},
	})
	dbtest.CreateOrder(t, db, shop.ID, dbtest.OrderSpec{
		Status:    enums.OrderStatusDelivered,
		CreatedAt: day,
		Items:     map[string]int{"Ignored": 5},
	})

	repo := NewRepository(db)
	items, err := repo.ListItemsByOrderIDs(context.Background(), []uuid.UUID{order.ID})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Candle", items[0].ItemName)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "Soap", items[1].ItemName)

	empty, err := repo.ListItemsByOrderIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
