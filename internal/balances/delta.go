package balances

import "github.com/shopspring/decimal"

// Delta is the financial change one order contributes to its shop's daily
// balance at one lifecycle point. Zero fields mean "unchanged".
type Delta struct {
	OrdersSent       int64
	OrdersDelivered  int64
	RevenueArticles  decimal.Decimal
	DeliveryFees     decimal.Decimal
	ExpeditionFees   decimal.Decimal
	PackagingFees    decimal.Decimal
	StorageFees      decimal.Decimal
	RemittanceAmount decimal.Decimal
}

// Add returns the field-wise sum of d and other.
func (d Delta) Add(other Delta) Delta {
	return Delta{
		OrdersSent:       d.OrdersSent + other.OrdersSent,
		OrdersDelivered:  d.OrdersDelivered + other.OrdersDelivered,
		RevenueArticles:  d.RevenueArticles.Add(other.RevenueArticles),
		DeliveryFees:     d.DeliveryFees.Add(other.DeliveryFees),
		ExpeditionFees:   d.ExpeditionFees.Add(other.ExpeditionFees),
		PackagingFees:    d.PackagingFees.Add(other.PackagingFees),
		StorageFees:      d.StorageFees.Add(other.StorageFees),
		RemittanceAmount: d.RemittanceAmount.Add(other.RemittanceAmount),
	}
}

// IsZero reports whether applying d would change nothing.
func (d Delta) IsZero() bool {
	return d.OrdersSent == 0 &&
		d.OrdersDelivered == 0 &&
		d.RevenueArticles.IsZero() &&
		d.DeliveryFees.IsZero() &&
		d.ExpeditionFees.IsZero() &&
		d.PackagingFees.IsZero() &&
		d.StorageFees.IsZero() &&
		d.RemittanceAmount.IsZero()
}
