package balances

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopbalance-backend/pkg/db/models"
)

// Accumulator folds deltas into the per-(shop, date) balance row. It does not
// deduplicate: each delta must be applied exactly once by the caller.
type Accumulator struct {
	repo Repository
}

// NewAccumulator wires an accumulator with the balance repository.
func NewAccumulator(repo Repository) (*Accumulator, error) {
	if repo == nil {
		return nil, fmt.Errorf("balance repository required")
	}
	return &Accumulator{repo: repo}, nil
}

// Apply adds delta to the balance of shopID on date inside tx, creating the row
// from zero when it does not exist yet. It never commits.
func (a *Accumulator) Apply(ctx context.Context, tx *gorm.DB, shopID uuid.UUID, date time.Time, delta Delta) error {
	if shopID == uuid.Nil {
		return fmt.Errorf("shop id is required")
	}
	if delta.IsZero() {
		return nil
	}
	repo := a.repo.WithTx(tx)

	current, err := repo.FindForUpdate(ctx, shopID, date)
	if err != nil {
		return fmt.Errorf("load balance: %w", err)
	}
	if current == nil {
		row := &models.DailyShopBalance{ShopID: shopID, ReportDate: date}
		applyDelta(row, delta)
		if err := repo.Create(ctx, row); err != nil {
			return fmt.Errorf("create balance: %w", err)
		}
		return nil
	}

	applyDelta(current, delta)
	if err := repo.Update(ctx, current); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

func applyDelta(row *models.DailyShopBalance, d Delta) {
	row.TotalOrdersSent += d.OrdersSent
	row.TotalOrdersDelivered += d.OrdersDelivered
	row.TotalRevenueArticles = row.TotalRevenueArticles.Add(d.RevenueArticles)
	row.TotalDeliveryFees = row.TotalDeliveryFees.Add(d.DeliveryFees)
	row.TotalExpeditionFees = row.TotalExpeditionFees.Add(d.ExpeditionFees)
	row.TotalPackagingFees = row.TotalPackagingFees.Add(d.PackagingFees)
	row.TotalStorageFees = row.TotalStorageFees.Add(d.StorageFees)
	row.RemittanceAmount = row.RemittanceAmount.Add(d.RemittanceAmount)
}
