package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/idempotency"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/payloads"
)

const calendarConsumer = "calendar-worker"

type repository interface {
	Create(ctx context.Context, event *models.CalendarEvent) error
	ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
}

// Consumer writes a calendar event when a partner accepts an order. The
// event is a historical record; later order changes never cascade here.
type Consumer struct {
	repo         repository
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	cfg          config.CalendarConfig
	logg         *logger.Logger
}

// NewConsumer builds the calendar consumer.
func NewConsumer(repo repository, subscription *pubsub.Subscriber, manager *idempotency.Manager, cfg config.CalendarConfig, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("calendar repository required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("domain subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		subscription: subscription,
		idempotency:  manager,
		cfg:          cfg,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if eventType != string(enums.EventOrderAccepted) {
		return processResult{ack: true}
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, calendarConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	var payload payloads.OrderDecisionEvent
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		_ = c.idempotency.Delete(ctx, calendarConsumer, eventID)
		return processResult{nack: true}
	}

	if err := c.handleAccepted(ctx, envelope, payload); err != nil {
		c.logg.Error(logCtx, "calendar event write failed", err)
		_ = c.idempotency.Delete(ctx, calendarConsumer, eventID)
		return processResult{nack: true}
	}

	c.logg.Info(c.logg.WithFields(logCtx, map[string]any{
		"order_id":     payload.OrderID.String(),
		"order_number": payload.OrderNumber,
	}), "calendar event created")
	return processResult{ack: true}
}

func (c *Consumer) handleAccepted(ctx context.Context, envelope outbox.PayloadEnvelope, payload payloads.OrderDecisionEvent) error {
	if payload.OrderID == uuid.Nil {
		return fmt.Errorf("order id missing")
	}

	exists, err := c.repo.ExistsForOrder(ctx, payload.OrderID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	createdBy := payload.PartnerID
	if envelope.Actor != nil && envelope.Actor.UserID != uuid.Nil {
		createdBy = envelope.Actor.UserID
	}

	duration := c.cfg.DefaultDuration
	if duration <= 0 {
		duration = 2 * time.Hour
	}

	return c.repo.Create(ctx, &models.CalendarEvent{
		OrderID:     payload.OrderID,
		Title:       fmt.Sprintf("[%s] service booking", payload.OrderNumber),
		StartsAt:    payload.ServiceAt,
		EndsAt:      payload.ServiceAt.Add(duration),
		Location:    payload.Location,
		Description: fmt.Sprintf("Order %s accepted by partner", payload.OrderNumber),
		CreatedBy:   createdBy,
		Color:       c.cfg.DefaultColor,
	})
}
