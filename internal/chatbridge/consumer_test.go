package chatbridge

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/payloads"
)

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

func TestFormatEventLeadsWithOrderCode(t *testing.T) {
	serviceAt := time.Date(2026, 9, 12, 11, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		event enums.OutboxEventType
		data  any
		want  string
	}{
		{
			name:  "created",
			event: enums.EventOrderCreated,
			data: payloads.OrderCreatedEvent{
				OrderNumber: "ORD260912007",
				ServiceType: "wedding_hall",
				ServiceAt:   serviceAt,
				Location:    "Gangnam, Seoul",
				AmountKRW:   1_500_000,
			},
			want: "#ORD260912007 new wedding_hall order requested for 2026-09-12 11:00 at Gangnam, Seoul (1500000 KRW)",
		},
		{
			name:  "rejected with reason",
			event: enums.EventOrderRejected,
			data:  payloads.OrderDecisionEvent{OrderNumber: "ORD260912007", Reason: "fully booked"},
			want:  "#ORD260912007 partner rejected the order: fully booked",
		},
		{
			name:  "confirmed",
			event: enums.EventOrderConfirmed,
			data:  payloads.OrderConfirmedEvent{OrderNumber: "ORD260912007", ServiceAt: serviceAt},
			want:  "#ORD260912007 order confirmed for 2026-09-12 11:00",
		},
		{
			name:  "settlement",
			event: enums.EventSettlementConfirmed,
			data: payloads.SettlementConfirmedEvent{
				OrderNumber: "ORD260912007",
				AmountKRW:   600000,
				PaymentDate: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC),
			},
			want: "#ORD260912007 settlement confirmed: 600000 KRW payable on 2026-10-10",
		},
		{
			name:  "app message",
			event: enums.EventOrderMessagePosted,
			data: payloads.OrderMessagePostedEvent{
				OrderNumber: "ORD260912007",
				SenderName:  "Lee Jiwoo",
				SenderRole:  enums.UserRolePartner,
				Body:        "parking confirmed",
				Source:      enums.MessageSourceApp,
			},
			want: "#ORD260912007 Lee Jiwoo: parking confirmed",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := formatEvent(string(tc.event), mustJSON(t, tc.data))
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if !strings.HasPrefix(got, "#ORD") {
				t.Fatalf("message must lead with the order code, got %q", got)
			}
		})
	}
}

func TestFormatEventSkipsSlackSourcedMessages(t *testing.T) {
	data := mustJSON(t, payloads.OrderMessagePostedEvent{
		MessageID:   uuid.New(),
		OrderNumber: "ORD260912007",
		SenderName:  "Lee Jiwoo",
		Body:        "from the channel",
		Source:      enums.MessageSourceSlack,
	})
	got, err := formatEvent(string(enums.EventOrderMessagePosted), data)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got != "" {
		t.Fatalf("slack-sourced messages must not echo back, got %q", got)
	}
}

func TestFormatEventSkipsStaffMessages(t *testing.T) {
	data := mustJSON(t, payloads.OrderMessagePostedEvent{
		MessageID:   uuid.New(),
		OrderNumber: "ORD260912007",
		SenderName:  "Kim Dahyun",
		SenderRole:  enums.UserRoleStaff,
		Body:        "internal note",
		Source:      enums.MessageSourceApp,
	})
	got, err := formatEvent(string(enums.EventOrderMessagePosted), data)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got != "" {
		t.Fatalf("staff messages stay off the bridge, got %q", got)
	}
}
