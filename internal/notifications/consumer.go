package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/idempotency"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/payloads"
)

const notificationConsumer = "notifications-worker"

type orderDirectory interface {
	FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

// Consumer turns lifecycle events into in-app notification rows.
type Consumer struct {
	repo         Repository
	orders       orderDirectory
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds the notifications consumer.
func NewConsumer(repo Repository, orders orderDirectory, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order directory required")
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
		orders:       orders,
		subscription: subscription,
		idempotency:  manager,
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

var handledEvents = map[string]struct{}{
	string(enums.EventOrderConfirmed):      {},
	string(enums.EventOrderCancelled):      {},
	string(enums.EventSettlementConfirmed): {},
	string(enums.EventOrderMessagePosted):  {},
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if _, ok := handledEvents[eventType]; !ok {
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

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, notificationConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	if err := c.handleEvent(ctx, eventType, envelope.Data); err != nil {
		c.logg.Error(logCtx, "notification handling failed", err)
		_ = c.idempotency.Delete(ctx, notificationConsumer, eventID)
		return processResult{nack: true}
	}
	return processResult{ack: true}
}

func (c *Consumer) handleEvent(ctx context.Context, eventType string, data json.RawMessage) error {
	switch eventType {
	case string(enums.EventOrderConfirmed):
		var payload payloads.OrderConfirmedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		return c.notifyOrderConfirmed(ctx, payload)
	case string(enums.EventOrderCancelled):
		var payload payloads.OrderCancelledEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		return c.notifyOrderCancelled(ctx, payload)
	case string(enums.EventSettlementConfirmed):
		var payload payloads.SettlementConfirmedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		return c.notifySettlementConfirmed(ctx, payload)
	case string(enums.EventOrderMessagePosted):
		var payload payloads.OrderMessagePostedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		return c.notifyMessagePosted(ctx, payload)
	default:
		return nil
	}
}

func (c *Consumer) notifyOrderConfirmed(ctx context.Context, payload payloads.OrderConfirmedEvent) error {
	if payload.PartnerID == uuid.Nil {
		return fmt.Errorf("partner id missing")
	}
	return c.repo.Create(ctx, &models.Notification{
		UserID:         payload.PartnerID,
		Type:           enums.NotificationOrderConfirmed,
		Title:          "Order confirmed",
		Message:        fmt.Sprintf("Order %s has been confirmed for %s.", payload.OrderNumber, payload.ServiceAt.Format("2006-01-02 15:04")),
		RelatedOrderID: &payload.OrderID,
	})
}

func (c *Consumer) notifyOrderCancelled(ctx context.Context, payload payloads.OrderCancelledEvent) error {
	if payload.PartnerID == uuid.Nil {
		return fmt.Errorf("partner id missing")
	}
	message := fmt.Sprintf("Order %s was cancelled.", payload.OrderNumber)
	if payload.Reason != "" {
		message = fmt.Sprintf("Order %s was cancelled. Reason: %s", payload.OrderNumber, payload.Reason)
	}
	return c.repo.Create(ctx, &models.Notification{
		UserID:         payload.PartnerID,
		Type:           enums.NotificationOrderCancelled,
		Title:          "Order cancelled",
		Message:        message,
		RelatedOrderID: &payload.OrderID,
	})
}

func (c *Consumer) notifySettlementConfirmed(ctx context.Context, payload payloads.SettlementConfirmedEvent) error {
	if payload.PartnerID == uuid.Nil {
		return fmt.Errorf("partner id missing")
	}
	return c.repo.Create(ctx, &models.Notification{
		UserID:         payload.PartnerID,
		Type:           enums.NotificationSettlementConfirmed,
		Title:          "Settlement confirmed",
		Message:        fmt.Sprintf("Settlement for order %s (%d KRW) is scheduled for %s.", payload.OrderNumber, payload.AmountKRW, payload.PaymentDate.Format("2006-01-02")),
		RelatedOrderID: &payload.OrderID,
	})
}

// notifyMessagePosted addresses the counterpart of the sender on the order.
func (c *Consumer) notifyMessagePosted(ctx context.Context, payload payloads.OrderMessagePostedEvent) error {
	order, err := c.orders.FindByID(ctx, payload.OrderID)
	if err != nil {
		return err
	}
	recipient := order.PartnerID
	if payload.SenderRole == enums.UserRolePartner {
		recipient = order.StaffID
	}
	return c.repo.Create(ctx, &models.Notification{
		UserID:         recipient,
		Type:           enums.NotificationOrderMessage,
		Title:          "New message",
		Message:        fmt.Sprintf("%s sent a message on order %s.", payload.SenderName, payload.OrderNumber),
		RelatedOrderID: &payload.OrderID,
	})
}
