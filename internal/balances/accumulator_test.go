package balances

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopbalance-backend/pkg/db/dbtest"
)

var reportDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func TestAccumulatorCreatesThenAdds(t *testing.T) {
	db := dbtest.Open(t)
	shop := dbtest.CreateShop(t, db, "Accumulate")
	acc, err := NewAccumulator(NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := acc.Apply(ctx, tx, shop.ID, reportDate, Delta{OrdersSent: 1, ExpeditionFees: money(1000)}); err != nil {
			return err
		}
		return acc.Apply(ctx, tx, shop.ID, reportDate, Delta{
			OrdersDelivered:  1,
			RevenueArticles:  money(10000),
			DeliveryFees:     money(1000),
			PackagingFees:    money(500),
			RemittanceAmount: money(11000),
		})
	})
	require.NoError(t, err)

	rows := dbtest.Balances(t, db, reportDate)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, shop.ID, row.ShopID)
	assert.EqualValues(t, 1, row.TotalOrdersSent)
	assert.EqualValues(t, 1, row.TotalOrdersDelivered)
	dbtest.RequireMoney(t, "10000", row.TotalRevenueArticles)
	dbtest.RequireMoney(t, "1000", row.TotalDeliveryFees)
	dbtest.RequireMoney(t, "1000", row.TotalExpeditionFees)
	dbtest.RequireMoney(t, "500", row.TotalPackagingFees)
	dbtest.RequireMoney(t, "0", row.TotalStorageFees)
	dbtest.RequireMoney(t, "11000", row.RemittanceAmount)
}

func TestAccumulatorZeroDeltaIsNoop(t *testing.T) {
	db := dbtest.Open(t)
	shop := dbtest.CreateShop(t, db, "Idle")
	acc, err := NewAccumulator(NewRepository(db))
	require.NoError(t, err)

	require.NoError(t, acc.Apply(context.Background(), db, shop.ID, reportDate, Delta{}))
	assert.Empty(t, dbtest.Balances(t, db, reportDate))
}

func TestAccumulatorRollsBackWithTransaction(t *testing.T) {
	db := dbtest.Open(t)
	shop := dbtest.CreateShop(t, db, "Rollback")
	acc, err := NewAccumulator(NewRepository(db))
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := acc.Apply(context.Background(), tx, shop.ID, reportDate, Delta{OrdersSent: 1}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, dbtest.Balances(t, db, reportDate))
}

func TestAccumulatorValidatesInput(t *testing.T) {
	_, err := NewAccumulator(nil)
	require.Error(t, err)

	db := dbtest.Open(t)
	acc, err := NewAccumulator(NewRepository(db))
	require.NoError(t, err)
	require.Error(t, acc.Apply(context.Background(), db, uuid.Nil, reportDate, Delta{OrdersSent: 1}))
}
