package enums

import "fmt"

// OrderStatus mirrors the delivery status the order-processing subsystem
// stores on each order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusInProgress     OrderStatus = "in_progress"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusFailedDelivery OrderStatus = "failed_delivery"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusDelivered,
	OrderStatusFailedDelivery,
	OrderStatusCancelled,
}

// SettledOrderStatuses are the terminal statuses that carry a final-status
// balance impact.
var SettledOrderStatuses = []OrderStatus{
	OrderStatusDelivered,
	OrderStatusFailedDelivery,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
