package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/idempotency"
)

const analyticsConsumer = "analytics-worker"

type rowInserter interface {
	InsertRows(ctx context.Context, table string, rows []any) error
}

// OrderEventRow is the fact row streamed into the order_events table.
type OrderEventRow struct {
	EventID     string    `bigquery:"event_id"`
	EventType   string    `bigquery:"event_type"`
	OrderID     string    `bigquery:"order_id"`
	OrderNumber string    `bigquery:"order_number"`
	StaffID     string    `bigquery:"staff_id"`
	PartnerID   string    `bigquery:"partner_id"`
	Status      string    `bigquery:"status"`
	AmountKRW   int64     `bigquery:"amount_krw"`
	ActorID     string    `bigquery:"actor_id"`
	ActorRole   string    `bigquery:"actor_role"`
	OccurredAt  time.Time `bigquery:"occurred_at"`
	IngestedAt  time.Time `bigquery:"ingested_at"`
}

// Save implements bigquery.ValueSaver with the event id as the insert id, so
// streaming retries do not duplicate rows.
func (r *OrderEventRow) Save() (map[string]bigquery.Value, string, error) {
	return map[string]bigquery.Value{
		"event_id":     r.EventID,
		"event_type":   r.EventType,
		"order_id":     r.OrderID,
		"order_number": r.OrderNumber,
		"staff_id":     r.StaffID,
		"partner_id":   r.PartnerID,
		"status":       r.Status,
		"amount_krw":   r.AmountKRW,
		"actor_id":     r.ActorID,
		"actor_role":   r.ActorRole,
		"occurred_at":  r.OccurredAt,
		"ingested_at":  r.IngestedAt,
	}, r.EventID, nil
}

// Consumer streams order lifecycle facts into BigQuery for the ops dashboard.
type Consumer struct {
	inserter     rowInserter
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	cfg          config.BigQueryConfig
	logg         *logger.Logger
	now          func() time.Time
}

// NewConsumer builds the analytics consumer.
func NewConsumer(inserter rowInserter, subscription *pubsub.Subscriber, manager *idempotency.Manager, cfg config.BigQueryConfig, logg *logger.Logger) (*Consumer, error) {
	if inserter == nil {
		return nil, fmt.Errorf("bigquery inserter required")
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
		inserter:     inserter,
		subscription: subscription,
		idempotency:  manager,
		cfg:          cfg,
		logg:         logg,
		now:          time.Now,
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

// lifecycleStatuses maps event types to the status the order holds after the
// event. Non-lifecycle events are not streamed.
var lifecycleStatuses = map[string]enums.OrderStatus{
	string(enums.EventOrderCreated):        enums.OrderStatusRequested,
	string(enums.EventOrderAccepted):       enums.OrderStatusAccepted,
	string(enums.EventOrderRejected):       enums.OrderStatusCancelled,
	string(enums.EventOrderConfirmed):      enums.OrderStatusConfirmed,
	string(enums.EventOrderCancelled):      enums.OrderStatusCancelled,
	string(enums.EventOrderCompleted):      enums.OrderStatusCompleted,
	string(enums.EventSettlementConfirmed): enums.OrderStatusSettled,
}

type orderFact struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	StaffID     uuid.UUID `json:"staff_id"`
	PartnerID   uuid.UUID `json:"partner_id"`
	AmountKRW   int64     `json:"amount_krw"`
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	status, ok := lifecycleStatuses[eventType]
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

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, analyticsConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	row, err := c.buildRow(eventType, status, envelope)
	if err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		return processResult{ack: true}
	}

	if err := c.inserter.InsertRows(ctx, c.cfg.OrderEventsTable, []any{row}); err != nil {
		c.logg.Error(logCtx, "bigquery insert failed", err)
		_ = c.idempotency.Delete(ctx, analyticsConsumer, eventID)
		return processResult{nack: true}
	}
	return processResult{ack: true}
}

func (c *Consumer) buildRow(eventType string, status enums.OrderStatus, envelope outbox.PayloadEnvelope) (*OrderEventRow, error) {
	var fact orderFact
	if err := json.Unmarshal(envelope.Data, &fact); err != nil {
		return nil, err
	}
	if fact.OrderID == uuid.Nil {
		return nil, fmt.Errorf("order id missing from payload")
	}

	row := &OrderEventRow{
		EventID:     envelope.EventID,
		EventType:   eventType,
		OrderID:     fact.OrderID.String(),
		OrderNumber: fact.OrderNumber,
		Status:      string(status),
		AmountKRW:   fact.AmountKRW,
		OccurredAt:  envelope.OccurredAt,
		IngestedAt:  c.now().UTC(),
	}
	if fact.StaffID != uuid.Nil {
		row.StaffID = fact.StaffID.String()
	}
	if fact.PartnerID != uuid.Nil {
		row.PartnerID = fact.PartnerID.String()
	}
	if envelope.Actor != nil {
		row.ActorID = envelope.Actor.UserID.String()
		row.ActorRole = envelope.Actor.Role
	}
	return row, nil
}
