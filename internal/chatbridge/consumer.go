package chatbridge

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
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/payloads"
)

const bridgeConsumer = "chat-bridge-worker"

type messagePoster interface {
	PostMessage(ctx context.Context, text string) error
}

// Consumer posts lifecycle updates to the team Slack channel. Every message
// leads with the #ORDERCODE so inbound replies can be routed back.
type Consumer struct {
	slack        messagePoster
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds the Slack bridge consumer.
func NewConsumer(slack messagePoster, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if slack == nil {
		return nil, fmt.Errorf("slack client required")
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
		slack:        slack,
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

var bridgedEvents = map[string]struct{}{
	string(enums.EventOrderCreated):        {},
	string(enums.EventOrderAccepted):       {},
	string(enums.EventOrderRejected):       {},
	string(enums.EventOrderConfirmed):      {},
	string(enums.EventOrderCancelled):      {},
	string(enums.EventOrderCompleted):      {},
	string(enums.EventSettlementConfirmed): {},
	string(enums.EventOrderMessagePosted):  {},
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if _, ok := bridgedEvents[eventType]; !ok {
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

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, bridgeConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	text, err := formatEvent(eventType, envelope.Data)
	if err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		return processResult{ack: true}
	}
	if text == "" {
		return processResult{ack: true}
	}

	if err := c.slack.PostMessage(ctx, text); err != nil {
		c.logg.Error(logCtx, "slack post failed", err)
		_ = c.idempotency.Delete(ctx, bridgeConsumer, eventID)
		return processResult{nack: true}
	}
	return processResult{ack: true}
}

// formatEvent renders the channel message for an event. An empty string means
// the event should be skipped.
func formatEvent(eventType string, data json.RawMessage) (string, error) {
	switch eventType {
	case string(enums.EventOrderCreated):
		var p payloads.OrderCreatedEvent
		if err := json.Unmarshal(data, &p); err != nil {
			return "", err
		}
		return fmt.Sprintf("#%s new %s order requested for %s at %s (%d KRW)",
			p.OrderNumber, p.ServiceType, p.ServiceAt.Format("2006-01-02 15:04"), p.Location, p.AmountKRW), nil
	case string(enums.EventOrderAccepted):
		var p payloads.OrderDecisionEvent
		if err := json.Unmarshal(data, &p); err != nil {
			return "", err
		}
		return fmt.Sprintf("#%s partner accepted the order", p.OrderNumber), nil
	case string(enums.EventOrderRejected):
		var p payloads.OrderDecisionEvent
		if err := json.Unmarshal(data, &p); err != nil {
			return "", err
		}
		if p.Reason != "" {
			return fmt.Sprintf("#%s partner rejected the order: %s", p.OrderNumber, p.Reason), nil
		}
		return fmt.Sprintf("#%s partner rejected the order", p.OrderNumber), nil
	case string(enums.EventOrderConfirmed):
		var p payloads.OrderConfirmedEvent
		if err := json.Unmarshal(data, &p); err != nil {
			return "", err
		}
		return fmt.Sprintf("#%s order confirmed for %s", p.OrderNumber, p.ServiceAt.Format("2006-01-02 15:04")), nil
	case string(enums.EventOrderCancelled):
		var p payloads.OrderCancelledEvent
		if err := json.Unmarshal(data, &p); err != nil {
			return "", err
		}
		if p.Reason != "" {
			return fmt.Sprintf("#%s order cancelled: %s", p.OrderNumber, p.Reason), nil
		}
		return fmt.Sprintf("#%s order cancelled", p.OrderNumber), nil
	case string(enums.EventOrderCompleted):
		var p payloads.OrderCompletedEvent
		if err := json.Unmarshal(data, &p); err != nil {
			return "", err
		}
		return fmt.Sprintf("#%s service completed", p.OrderNumber), nil
	case string(enums.EventSettlementConfirmed):
		var p payloads.SettlementConfirmedEvent
		if err := json.Unmarshal(data, &p); err != nil {
			return "", err
		}
		return fmt.Sprintf("#%s settlement confirmed: %d KRW payable on %s",
			p.OrderNumber, p.AmountKRW, p.PaymentDate.Format("2006-01-02")), nil
	case string(enums.EventOrderMessagePosted):
		var p payloads.OrderMessagePostedEvent
		if err := json.Unmarshal(data, &p); err != nil {
			return "", err
		}
		// Staff already talk in Slack; only partner messages cross the
		// bridge, and nothing that arrived from Slack is echoed back.
		if p.Source == enums.MessageSourceSlack || p.SenderRole != enums.UserRolePartner {
			return "", nil
		}
		return fmt.Sprintf("#%s %s: %s", p.OrderNumber, p.SenderName, p.Body), nil
	default:
		return "", nil
	}
}
