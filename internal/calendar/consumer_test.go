package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/payloads"
)

type fakeCalendarRepo struct {
	created []*models.CalendarEvent
	exists  bool
}

func (f *fakeCalendarRepo) Create(ctx context.Context, event *models.CalendarEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeCalendarRepo) ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	return f.exists, nil
}

func TestHandleAcceptedWritesTwoHourWindow(t *testing.T) {
	repo := &fakeCalendarRepo{}
	consumer := &Consumer{
		repo: repo,
		cfg:  config.CalendarConfig{DefaultDuration: 2 * time.Hour, DefaultColor: "#3b82f6"},
	}

	actorID := uuid.New()
	serviceAt := time.Date(2026, 9, 12, 11, 0, 0, 0, time.UTC)
	payload := payloads.OrderDecisionEvent{
		OrderID:     uuid.New(),
		OrderNumber: "ORD260912007",
		PartnerID:   actorID,
		ServiceAt:   serviceAt,
		Location:    "Gangnam, Seoul",
	}
	envelope := outbox.PayloadEnvelope{Actor: &outbox.ActorRef{UserID: actorID}}

	if err := consumer.handleAccepted(context.Background(), envelope, payload); err != nil {
		t.Fatalf("handle accepted: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one event, got %d", len(repo.created))
	}
	event := repo.created[0]
	if !event.StartsAt.Equal(serviceAt) || !event.EndsAt.Equal(serviceAt.Add(2*time.Hour)) {
		t.Fatalf("unexpected window %v - %v", event.StartsAt, event.EndsAt)
	}
	if event.Location != payload.Location {
		t.Fatalf("location must copy from the order, got %q", event.Location)
	}
	if event.CreatedBy != actorID {
		t.Fatal("creator must come from the event actor")
	}
	if event.Color != "#3b82f6" {
		t.Fatalf("unexpected color %q", event.Color)
	}
}

func TestHandleAcceptedSkipsExistingOrder(t *testing.T) {
	repo := &fakeCalendarRepo{exists: true}
	consumer := &Consumer{repo: repo, cfg: config.CalendarConfig{DefaultDuration: 2 * time.Hour}}

	err := consumer.handleAccepted(context.Background(), outbox.PayloadEnvelope{}, payloads.OrderDecisionEvent{
		OrderID:     uuid.New(),
		OrderNumber: "ORD260912007",
		ServiceAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("handle accepted: %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("must not duplicate the calendar event")
	}
}

func TestHandleAcceptedRequiresOrderID(t *testing.T) {
	consumer := &Consumer{repo: &fakeCalendarRepo{}, cfg: config.CalendarConfig{}}
	err := consumer.handleAccepted(context.Background(), outbox.PayloadEnvelope{}, payloads.OrderDecisionEvent{})
	if err == nil {
		t.Fatal("expected error for missing order id")
	}
}
