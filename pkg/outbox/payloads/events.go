package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

// OrderCreatedEvent signals a staff member requested a new order from a partner.
type OrderCreatedEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	StaffID     uuid.UUID `json:"staff_id"`
	PartnerID   uuid.UUID `json:"partner_id"`
	ServiceType string    `json:"service_type"`
	ServiceAt   time.Time `json:"service_at"`
	Location    string    `json:"location"`
	AmountKRW   int64     `json:"amount_krw"`
}

// OrderDecisionEvent is emitted when the assigned partner accepts or rejects.
type OrderDecisionEvent struct {
	OrderID     uuid.UUID         `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	StaffID     uuid.UUID         `json:"staff_id"`
	PartnerID   uuid.UUID         `json:"partner_id"`
	Status      enums.OrderStatus `json:"status"`
	ServiceAt   time.Time         `json:"service_at"`
	Location    string            `json:"location"`
	Reason      string            `json:"reason,omitempty"`
}

// OrderConfirmedEvent is emitted when staff locks in an accepted order.
type OrderConfirmedEvent struct {
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	StaffID      uuid.UUID `json:"staff_id"`
	PartnerID    uuid.UUID `json:"partner_id"`
	CustomerName string    `json:"customer_name"`
	ServiceAt    time.Time `json:"service_at"`
	AmountKRW    int64     `json:"amount_krw"`
}

// OrderCancelledEvent is emitted on any pre-completion cancellation.
type OrderCancelledEvent struct {
	OrderID     uuid.UUID         `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	StaffID     uuid.UUID         `json:"staff_id"`
	PartnerID   uuid.UUID         `json:"partner_id"`
	FromStatus  enums.OrderStatus `json:"from_status"`
	CancelledAt time.Time         `json:"cancelled_at"`
	Reason      string            `json:"reason,omitempty"`
}

// OrderCompletedEvent marks service delivery and starts the settlement window.
type OrderCompletedEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	StaffID     uuid.UUID `json:"staff_id"`
	PartnerID   uuid.UUID `json:"partner_id"`
	AmountKRW   int64     `json:"amount_krw"`
	CompletedAt time.Time `json:"completed_at"`
}

// SettlementConfirmedEvent reports the payable record cut for a completed order.
type SettlementConfirmedEvent struct {
	SettlementID uuid.UUID `json:"settlement_id"`
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	PartnerID    uuid.UUID `json:"partner_id"`
	AmountKRW    int64     `json:"amount_krw"`
	PaymentDate  time.Time `json:"payment_date"`
	StaffID      uuid.UUID `json:"staff_id"`
}

// OrderMessagePostedEvent carries a chat message for bridging and notification.
type OrderMessagePostedEvent struct {
	MessageID   uuid.UUID           `json:"message_id"`
	OrderID     uuid.UUID           `json:"order_id"`
	OrderNumber string              `json:"order_number"`
	SenderID    uuid.UUID           `json:"sender_id"`
	SenderRole  enums.UserRole      `json:"sender_role"`
	SenderName  string              `json:"sender_name"`
	Body        string              `json:"body"`
	Source      enums.MessageSource `json:"source"`
}

// OrderDetailsUpdatedEvent reports field edits on a still-open order.
type OrderDetailsUpdatedEvent struct {
	OrderID       uuid.UUID `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	StaffID       uuid.UUID `json:"staff_id"`
	PartnerID     uuid.UUID `json:"partner_id"`
	ChangedFields []string  `json:"changed_fields"`
}

// AttachmentUploadedEvent reports a file added to an order.
type AttachmentUploadedEvent struct {
	AttachmentID uuid.UUID `json:"attachment_id"`
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	UploaderID   uuid.UUID `json:"uploader_id"`
	FileName     string    `json:"file_name"`
	FileSize     int64     `json:"file_size"`
}
