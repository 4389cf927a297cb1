package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

// PricingRuleGroup bundles pricing rules, optionally scoped to one partner.
// A nil PartnerID marks the general fallback applied to every partner.
type PricingRuleGroup struct {
	ID        uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string        `gorm:"column:name;type:text;not null"`
	PartnerID *uuid.UUID    `gorm:"column:partner_id;type:uuid;index"`
	Season    enums.Season  `gorm:"column:season;type:season;not null;default:'regular'"`
	Active    bool          `gorm:"column:active;not null;default:true"`
	Rules     []PricingRule `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
