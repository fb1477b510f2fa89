package reconcile

import (
	"github.com/angelmondragon/shopbalance-backend/internal/balances"
	"github.com/angelmondragon/shopbalance-backend/internal/debts"
	"github.com/angelmondragon/shopbalance-backend/internal/orders"
	"github.com/angelmondragon/shopbalance-backend/pkg/config"
	"github.com/angelmondragon/shopbalance-backend/pkg/db"
	"github.com/angelmondragon/shopbalance-backend/pkg/logger"
	"github.com/angelmondragon/shopbalance-backend/pkg/metrics"
)

// NewServiceFromConfig assembles the service and its repositories on client
// using the reconcile section of the configuration.
func NewServiceFromConfig(client *db.Client, cfg config.ReconcileConfig, logg *logger.Logger, m *metrics.ReconcileMetrics) (Service, error) {
	formula, err := balances.ParseRemittanceFormula(cfg.RemittanceFormula)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	conn := client.DB()
	return NewService(ServiceParams{
		TxRunner:          client,
		Orders:            orders.NewRepository(conn),
		Balances:          balances.NewRepository(conn),
		Debts:             debts.NewRepository(conn),
		RemittanceFormula: formula,
		Location:          loc,
		Logger:            logg,
		Metrics:           m,
	})
}
