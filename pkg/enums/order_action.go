package enums

import "fmt"

// OrderAction identifies a caller-initiated transition on an order.
type OrderAction string

const (
	OrderActionAccept   OrderAction = "accept"
	OrderActionReject   OrderAction = "reject"
	OrderActionConfirm  OrderAction = "confirm"
	OrderActionCancel   OrderAction = "cancel"
	OrderActionComplete OrderAction = "complete"
	OrderActionSettle   OrderAction = "settle"
)

var validOrderActions = []OrderAction{
	OrderActionAccept,
	OrderActionReject,
	OrderActionConfirm,
	OrderActionCancel,
	OrderActionComplete,
	OrderActionSettle,
}

// String implements fmt.Stringer.
func (a OrderAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known OrderAction.
func (a OrderAction) IsValid() bool {
	for _, candidate := range validOrderActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOrderAction converts raw input into an OrderAction.
func ParseOrderAction(value string) (OrderAction, error) {
	for _, candidate := range validOrderActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order action %q", value)
}
