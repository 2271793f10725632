package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks the lifecycle of a storefront order.
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusProcessing    OrderStatus = "processing"
	OrderStatusOnHold        OrderStatus = "on-hold"
	OrderStatusCompleted     OrderStatus = "completed"
	OrderStatusCancelled     OrderStatus = "cancelled"
	OrderStatusRefunded      OrderStatus = "refunded"
	OrderStatusFailed        OrderStatus = "failed"
	OrderStatusCheckoutDraft OrderStatus = "checkout-draft"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusOnHold,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusRefunded,
	OrderStatusFailed,
	OrderStatusCheckoutDraft,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:       "Pending payment",
	OrderStatusProcessing:    "Processing",
	OrderStatusOnHold:        "On hold",
	OrderStatusCompleted:     "Completed",
	OrderStatusCancelled:     "Cancelled",
	OrderStatusRefunded:      "Refunded",
	OrderStatusFailed:        "Failed",
	OrderStatusCheckoutDraft: "Draft",
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

// Label returns the human readable status name shown to shoppers. Unknown
// statuses fall back to their raw value.
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// NeedsPayment reports whether an order in this status still accepts payment.
func (s OrderStatus) NeedsPayment() bool {
	return s == OrderStatusPending || s == OrderStatusFailed
}

// ParseOrderStatus converts raw input into an OrderStatus. A leading "wc-"
// prefix, as stored by older storefront databases, is accepted.
func ParseOrderStatus(value string) (OrderStatus, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "wc-")
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
