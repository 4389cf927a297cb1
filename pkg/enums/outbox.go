package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateOrder      OutboxAggregateType = "order"
	AggregateSettlement OutboxAggregateType = "settlement"
	AggregateMessage    OutboxAggregateType = "order_message"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateOrder,
	AggregateSettlement,
	AggregateMessage,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventOrderCreated        OutboxEventType = "order_created"
	EventOrderAccepted       OutboxEventType = "order_accepted"
	EventOrderRejected       OutboxEventType = "order_rejected"
	EventOrderConfirmed      OutboxEventType = "order_confirmed"
	EventOrderCancelled      OutboxEventType = "order_cancelled"
	EventOrderCompleted      OutboxEventType = "order_completed"
	EventSettlementConfirmed OutboxEventType = "settlement_confirmed"
	EventOrderMessagePosted  OutboxEventType = "order_message_posted"
	EventOrderDetailsUpdated OutboxEventType = "order_details_updated"
	EventAttachmentUploaded  OutboxEventType = "attachment_uploaded"
)

var validOutboxEventTypes = []OutboxEventType{
	EventOrderCreated,
	EventOrderAccepted,
	EventOrderRejected,
	EventOrderConfirmed,
	EventOrderCancelled,
	EventOrderCompleted,
	EventSettlementConfirmed,
	EventOrderMessagePosted,
	EventOrderDetailsUpdated,
	EventAttachmentUploaded,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
