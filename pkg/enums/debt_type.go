package enums

import "fmt"

// DebtType classifies rows of the shared debts ledger.
type DebtType string

const (
	DebtTypeDailyBalance DebtType = "daily_balance"
	DebtTypeManual       DebtType = "manual"
	DebtTypeStorage      DebtType = "storage"
)

var validDebtTypes = []DebtType{
	DebtTypeDailyBalance,
	DebtTypeManual,
	DebtTypeStorage,
}

// IsValid reports whether the value matches a known debt type.
func (t DebtType) IsValid() bool {
	for _, candidate := range validDebtTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseDebtType converts raw input into DebtType.
func ParseDebtType(value string) (DebtType, error) {
	for _, candidate := range validDebtTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid debt type %q", value)
}
