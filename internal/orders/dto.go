package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

// CreateOrderInput carries the staff request that opens a new order.
type CreateOrderInput struct {
	StaffID       uuid.UUID
	PartnerID     uuid.UUID
	CustomerName  string
	CustomerPhone string
	ServiceType   string
	ServiceAt     time.Time
	Location      string
	AmountKRW     int64
	Notes         *string
}

// Decision is the partner's answer to a pending order request.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// DecisionInput captures a partner accepting or rejecting an order.
type DecisionInput struct {
	OrderID     uuid.UUID
	Decision    Decision
	Reason      *string
	ActorUserID uuid.UUID
	ActorRole   enums.UserRole
}

// ConfirmInput locks in an accepted order on behalf of staff.
type ConfirmInput struct {
	OrderID     uuid.UUID
	ActorUserID uuid.UUID
	ActorRole   enums.UserRole
}

// CancelInput withdraws an order before completion.
type CancelInput struct {
	OrderID     uuid.UUID
	Reason      *string
	ActorUserID uuid.UUID
	ActorRole   enums.UserRole
}

// CompleteInput marks service delivery by the assigned partner.
type CompleteInput struct {
	OrderID        uuid.UUID
	CompletedAt    time.Time
	FieldIssueMemo *string
	ActorUserID    uuid.UUID
	ActorRole      enums.UserRole
}

// UpdateDetailsInput edits descriptive fields on a still-open order. Nil
// fields are left untouched.
type UpdateDetailsInput struct {
	OrderID       uuid.UUID
	ActorUserID   uuid.UUID
	ActorRole     enums.UserRole
	CustomerName  *string
	CustomerPhone *string
	ServiceType   *string
	ServiceAt     *time.Time
	Location      *string
	AmountKRW     *int64
	Notes         *string
}

// PartnerMemoInput sets the partner-private memo on an order.
type PartnerMemoInput struct {
	OrderID     uuid.UUID
	Memo        *string
	ActorUserID uuid.UUID
	ActorRole   enums.UserRole
}

// AddAttachmentInput records a file uploaded against an order.
type AddAttachmentInput struct {
	OrderID     uuid.UUID
	FileName    string
	FileURL     string
	FileSize    int64
	ActorUserID uuid.UUID
	ActorRole   enums.UserRole
}

// DeleteAttachmentInput removes an attachment record by its uploader.
type DeleteAttachmentInput struct {
	AttachmentID uuid.UUID
	ActorUserID  uuid.UUID
}

// ViewerScope restricts reads and lists to what the caller may see.
type ViewerScope struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// ListFilters describe the inputs supported by the order list.
type ListFilters struct {
	Status      *enums.OrderStatus
	PartnerID   *uuid.UUID
	ServiceFrom *time.Time
	ServiceTo   *time.Time
	Query       string
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
