package orders

import (
	"testing"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

func TestTransitionTableIsValid(t *testing.T) {
	if err := validateTransitionTable(); err != nil {
		t.Fatalf("transition table invalid: %v", err)
	}
}

func TestTransitionSources(t *testing.T) {
	cases := []struct {
		action  enums.OrderAction
		from    enums.OrderStatus
		allowed bool
	}{
		{enums.OrderActionAccept, enums.OrderStatusRequested, true},
		{enums.OrderActionAccept, enums.OrderStatusAccepted, false},
		{enums.OrderActionReject, enums.OrderStatusRequested, true},
		{enums.OrderActionReject, enums.OrderStatusConfirmed, false},
		{enums.OrderActionConfirm, enums.OrderStatusAccepted, true},
		{enums.OrderActionConfirm, enums.OrderStatusRequested, false},
		{enums.OrderActionCancel, enums.OrderStatusRequested, true},
		{enums.OrderActionCancel, enums.OrderStatusAccepted, true},
		{enums.OrderActionCancel, enums.OrderStatusConfirmed, true},
		{enums.OrderActionCancel, enums.OrderStatusCompleted, false},
		{enums.OrderActionCancel, enums.OrderStatusSettled, false},
		{enums.OrderActionComplete, enums.OrderStatusConfirmed, true},
		{enums.OrderActionComplete, enums.OrderStatusAccepted, false},
		{enums.OrderActionSettle, enums.OrderStatusCompleted, true},
		{enums.OrderActionSettle, enums.OrderStatusCancelled, false},
	}

	for _, tc := range cases {
		rule, ok := transitionFor(tc.action)
		if !ok {
			t.Fatalf("missing transition for %s", tc.action)
		}
		if got := rule.allowsFrom(tc.from); got != tc.allowed {
			t.Errorf("%s from %s: got %v, want %v", tc.action, tc.from, got, tc.allowed)
		}
	}
}

func TestTerminalStatusesHaveNoOutgoingTransitions(t *testing.T) {
	for action, rule := range transitionTable {
		for _, from := range rule.from {
			if isTerminal(from) {
				t.Errorf("%s allows transition out of terminal status %s", action, from)
			}
		}
	}
}
