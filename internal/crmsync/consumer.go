package crmsync

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/idempotency"
)

const crmConsumer = "crm-sync-worker"

type orderSyncer interface {
	SyncOrder(ctx context.Context, orderID uuid.UUID, action SyncAction, orderNumber, status string) error
}

// Consumer mirrors order lifecycle changes into the external CRM. Delivery is
// best effort: a failed sync is logged and the event is acked, never retried.
type Consumer struct {
	client       orderSyncer
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds the CRM sync consumer.
func NewConsumer(client orderSyncer, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if client == nil {
		return nil, fmt.Errorf("crm client required")
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
		client:       client,
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

// syncActions maps event types to the action reported to the CRM. The status
// entry is the lifecycle status implied by the event, empty when the event
// payload carries its own.
var syncActions = map[string]struct {
	action SyncAction
	status string
}{
	string(enums.EventOrderCreated):        {action: ActionCreated, status: string(enums.OrderStatusRequested)},
	string(enums.EventOrderDetailsUpdated): {action: ActionUpdated},
	string(enums.EventOrderAccepted):       {action: ActionStatusChanged, status: string(enums.OrderStatusAccepted)},
	string(enums.EventOrderRejected):       {action: ActionStatusChanged, status: string(enums.OrderStatusCancelled)},
	string(enums.EventOrderConfirmed):      {action: ActionStatusChanged, status: string(enums.OrderStatusConfirmed)},
	string(enums.EventOrderCancelled):      {action: ActionStatusChanged, status: string(enums.OrderStatusCancelled)},
	string(enums.EventOrderCompleted):      {action: ActionStatusChanged, status: string(enums.OrderStatusCompleted)},
	string(enums.EventSettlementConfirmed): {action: ActionStatusChanged, status: string(enums.OrderStatusSettled)},
}

// orderRef is the minimal payload slice every handled event shares.
type orderRef struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	rule, ok := syncActions[eventType]
	if !ok {
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

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, crmConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	var ref orderRef
	if err := json.Unmarshal(envelope.Data, &ref); err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		return processResult{ack: true}
	}
	if ref.OrderID == uuid.Nil {
		c.logg.Error(logCtx, "order id missing from payload", nil)
		return processResult{ack: true}
	}

	if err := c.client.SyncOrder(ctx, ref.OrderID, rule.action, ref.OrderNumber, rule.status); err != nil {
		c.logg.Error(c.logg.WithFields(logCtx, map[string]any{
			"order_id":     ref.OrderID.String(),
			"order_number": ref.OrderNumber,
		}), "crm sync failed", err)
		return processResult{ack: true}
	}

	c.logg.Info(c.logg.WithFields(logCtx, map[string]any{
		"order_id":     ref.OrderID.String(),
		"order_number": ref.OrderNumber,
		"action":       string(rule.action),
	}), "order synced to crm")
	return processResult{ack: true}
}
