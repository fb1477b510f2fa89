package balances

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopbalance-backend/pkg/config"
)

// Settlement holds the monetary facts of a settled order that feed the
// remittance rule. Articles and delivery are zero for failed deliveries.
type Settlement struct {
	ArticleAmount decimal.Decimal
	DeliveryFee   decimal.Decimal
	PackagingFee  decimal.Decimal
}

// RemittanceFormula computes the amount owed between platform and shop for one
// settled order.
type RemittanceFormula func(s Settlement) decimal.Decimal

// GrossRemittance owes the shop its article amount plus the delivery fee.
func GrossRemittance(s Settlement) decimal.Decimal {
	return s.ArticleAmount.Add(s.DeliveryFee)
}

// NetOfPackagingRemittance additionally deducts billed packaging.
func NetOfPackagingRemittance(s Settlement) decimal.Decimal {
	return s.ArticleAmount.Add(s.DeliveryFee).Sub(s.PackagingFee)
}

// ParseRemittanceFormula maps a configured formula name to its implementation.
func ParseRemittanceFormula(name string) (RemittanceFormula, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", config.RemittanceFormulaGross:
		return GrossRemittance, nil
	case config.RemittanceFormulaNetOfPackaging:
		return NetOfPackagingRemittance, nil
	}
	return nil, fmt.Errorf("unknown remittance formula %q", name)
}
