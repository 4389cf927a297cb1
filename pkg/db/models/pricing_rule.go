package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

// PricingRule is one match predicate plus its price effect inside a group.
// StartTime/EndTime are "HH:MM" clock strings; an EndTime earlier than
// StartTime means the window wraps past midnight.
type PricingRule struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID           uuid.UUID             `gorm:"column:group_id;type:uuid;not null;index"`
	Kind              enums.PricingRuleKind `gorm:"column:kind;type:pricing_rule_kind;not null;default:'base'"`
	Months            []int                 `gorm:"column:months;type:jsonb;serializer:json"`
	Weekdays          []int                 `gorm:"column:weekdays;type:jsonb;serializer:json"`
	StartTime         *string               `gorm:"column:start_time;type:text"`
	EndTime           *string               `gorm:"column:end_time;type:text"`
	MinGuests         int                   `gorm:"column:min_guests;not null;default:0"`
	MaxGuests         *int                  `gorm:"column:max_guests"`
	PriceKRW          int64                 `gorm:"column:price_krw;not null;default:0"`
	IsPercentage      bool                  `gorm:"column:is_percentage;not null;default:false"`
	Priority          int                   `gorm:"column:priority;not null;default:0"`
	BaseGuestCount    *int                  `gorm:"column:base_guest_count"`
	PricePerAddlGuest *int64                `gorm:"column:price_per_addl_guest"`
	Active            bool                  `gorm:"column:active;not null;default:true"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
