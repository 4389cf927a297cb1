package orders

import (
	"fmt"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

// transition describes one legal move in the order lifecycle.
type transition struct {
	from []enums.OrderStatus
	to   enums.OrderStatus
	role enums.UserRole
}

// transitionTable is the full lifecycle. Settle is listed for completeness
// but driven by the settlements service, which owns the settlement insert.
var transitionTable = map[enums.OrderAction]transition{
	enums.OrderActionAccept: {
		from: []enums.OrderStatus{enums.OrderStatusRequested},
		to:   enums.OrderStatusAccepted,
		role: enums.UserRolePartner,
	},
	enums.OrderActionReject: {
		from: []enums.OrderStatus{enums.OrderStatusRequested},
		to:   enums.OrderStatusCancelled,
		role: enums.UserRolePartner,
	},
	enums.OrderActionConfirm: {
		from: []enums.OrderStatus{enums.OrderStatusAccepted},
		to:   enums.OrderStatusConfirmed,
		role: enums.UserRoleStaff,
	},
	enums.OrderActionCancel: {
		from: []enums.OrderStatus{
			enums.OrderStatusRequested,
			enums.OrderStatusAccepted,
			enums.OrderStatusConfirmed,
		},
		to:   enums.OrderStatusCancelled,
		role: enums.UserRoleStaff,
	},
	enums.OrderActionComplete: {
		from: []enums.OrderStatus{enums.OrderStatusConfirmed},
		to:   enums.OrderStatusCompleted,
		role: enums.UserRolePartner,
	},
	enums.OrderActionSettle: {
		from: []enums.OrderStatus{enums.OrderStatusCompleted},
		to:   enums.OrderStatusSettled,
		role: enums.UserRoleStaff,
	},
}

// validateTransitionTable rejects malformed tables at construction time so a
// bad edit fails service startup instead of silently skipping a transition.
func validateTransitionTable() error {
	for action, rule := range transitionTable {
		if !action.IsValid() {
			return fmt.Errorf("transition table references unknown action %q", action)
		}
		if !rule.to.IsValid() {
			return fmt.Errorf("transition %q targets unknown status %q", action, rule.to)
		}
		if !rule.role.IsValid() {
			return fmt.Errorf("transition %q names unknown role %q", action, rule.role)
		}
		if len(rule.from) == 0 {
			return fmt.Errorf("transition %q has no source statuses", action)
		}
		for _, from := range rule.from {
			if !from.IsValid() {
				return fmt.Errorf("transition %q sources unknown status %q", action, from)
			}
			if from == rule.to {
				return fmt.Errorf("transition %q maps status %q onto itself", action, from)
			}
		}
	}
	for _, action := range []enums.OrderAction{
		enums.OrderActionAccept,
		enums.OrderActionReject,
		enums.OrderActionConfirm,
		enums.OrderActionCancel,
		enums.OrderActionComplete,
		enums.OrderActionSettle,
	} {
		if _, ok := transitionTable[action]; !ok {
			return fmt.Errorf("transition table missing action %q", action)
		}
	}
	return nil
}

func transitionFor(action enums.OrderAction) (transition, bool) {
	rule, ok := transitionTable[action]
	return rule, ok
}

func (t transition) allowsFrom(status enums.OrderStatus) bool {
	for _, from := range t.from {
		if from == status {
			return true
		}
	}
	return false
}
