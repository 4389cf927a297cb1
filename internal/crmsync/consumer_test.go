package crmsync

import (
	"testing"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

func TestSyncActionsCoverLifecycle(t *testing.T) {
	cases := []struct {
		event  enums.OutboxEventType
		action SyncAction
		status string
	}{
		{enums.EventOrderCreated, ActionCreated, "requested"},
		{enums.EventOrderDetailsUpdated, ActionUpdated, ""},
		{enums.EventOrderAccepted, ActionStatusChanged, "accepted"},
		{enums.EventOrderRejected, ActionStatusChanged, "cancelled"},
		{enums.EventOrderConfirmed, ActionStatusChanged, "confirmed"},
		{enums.EventOrderCancelled, ActionStatusChanged, "cancelled"},
		{enums.EventOrderCompleted, ActionStatusChanged, "completed"},
		{enums.EventSettlementConfirmed, ActionStatusChanged, "settled"},
	}
	for _, tc := range cases {
		rule, ok := syncActions[string(tc.event)]
		if !ok {
			t.Fatalf("event %s must be synced", tc.event)
		}
		if rule.action != tc.action {
			t.Fatalf("event %s: expected action %s, got %s", tc.event, tc.action, rule.action)
		}
		if rule.status != tc.status {
			t.Fatalf("event %s: expected status %q, got %q", tc.event, tc.status, rule.status)
		}
	}
}

func TestSyncActionsSkipMessageEvents(t *testing.T) {
	if _, ok := syncActions[string(enums.EventOrderMessagePosted)]; ok {
		t.Fatal("chat messages must not be mirrored to the crm")
	}
	if _, ok := syncActions[string(enums.EventAttachmentUploaded)]; ok {
		t.Fatal("attachment uploads must not be mirrored to the crm")
	}
}
