package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

// OrderMessage is one chat message attached to an order, entered either from
// the app widget or bridged in from the team chat.
type OrderMessage struct {
	ID         uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID           `gorm:"column:order_id;type:uuid;not null;index"`
	SenderID   uuid.UUID           `gorm:"column:sender_id;type:uuid;not null"`
	SenderRole enums.UserRole      `gorm:"column:sender_role;type:user_role;not null"`
	Body       string              `gorm:"column:body;type:text;not null"`
	Source     enums.MessageSource `gorm:"column:source;type:message_source;not null;default:'app'"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
}
