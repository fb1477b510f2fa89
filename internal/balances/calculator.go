package balances

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopbalance-backend/internal/orders"
	"github.com/angelmondragon/shopbalance-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopbalance-backend/pkg/errors"
)

// Calculator maps an order to its balance impacts. It is pure: it never reads
// or writes storage.
type Calculator struct {
	remittance RemittanceFormula
}

// NewCalculator builds a calculator using the given remittance rule, falling
// back to GrossRemittance when nil.
func NewCalculator(formula RemittanceFormula) *Calculator {
	if formula == nil {
		formula = GrossRemittance
	}
	return &Calculator{remittance: formula}
}

// SentImpact is applied once per order regardless of its final status.
func (c *Calculator) SentImpact(order orders.BillableOrder) (Delta, error) {
	if !order.Status.IsValid() {
		return Delta{}, invalidStatus(order)
	}
	return Delta{
		OrdersSent:     1,
		ExpeditionFees: amount(order.ExpeditionFee),
	}, nil
}

// FinalImpact returns the delta for the order's terminal status. The boolean
// is false for statuses that carry no final-status impact.
func (c *Calculator) FinalImpact(order orders.BillableOrder) (Delta, bool, error) {
	switch order.Status {
	case enums.OrderStatusDelivered:
		s := Settlement{
			ArticleAmount: amount(order.ArticleAmount),
			DeliveryFee:   amount(order.DeliveryFee),
			PackagingFee:  packagingFee(order),
		}
		return Delta{
			OrdersDelivered:  1,
			RevenueArticles:  s.ArticleAmount,
			DeliveryFees:     s.DeliveryFee,
			PackagingFees:    s.PackagingFee,
			RemittanceAmount: c.remittance(s),
		}, true, nil
	case enums.OrderStatusFailedDelivery:
		s := Settlement{PackagingFee: packagingFee(order)}
		return Delta{
			PackagingFees:    s.PackagingFee,
			RemittanceAmount: c.remittance(s),
		}, true, nil
	case enums.OrderStatusPending, enums.OrderStatusInProgress, enums.OrderStatusCancelled:
		return Delta{}, false, nil
	default:
		return Delta{}, false, invalidStatus(order)
	}
}

// Impact is the total contribution of an order: sent plus any final impact.
func (c *Calculator) Impact(order orders.BillableOrder) (Delta, error) {
	sent, err := c.SentImpact(order)
	if err != nil {
		return Delta{}, err
	}
	final, ok, err := c.FinalImpact(order)
	if err != nil {
		return Delta{}, err
	}
	if !ok {
		return sent, nil
	}
	return sent.Add(final), nil
}

func packagingFee(order orders.BillableOrder) decimal.Decimal {
	if !order.BillPackaging {
		return decimal.Zero
	}
	return amount(order.PackagingPrice)
}

func amount(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

func invalidStatus(order orders.BillableOrder) error {
	return pkgerrors.New(pkgerrors.CodeInvalidOrderState, "order has an unrecognized status").
		WithDetails(map[string]any{"order_id": order.ID.String(), "status": string(order.Status)})
}
