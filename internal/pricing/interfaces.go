package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
)

// Repository defines persistence operations for pricing rule groups.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	SnapshotGroups(ctx context.Context, partnerID *uuid.UUID) ([]models.PricingRuleGroup, error)
	ListGroups(ctx context.Context) ([]models.PricingRuleGroup, error)
	FindGroup(ctx context.Context, groupID uuid.UUID) (*models.PricingRuleGroup, error)
	CreateGroup(ctx context.Context, group *models.PricingRuleGroup) (*models.PricingRuleGroup, error)
	CreateRule(ctx context.Context, rule *models.PricingRule) (*models.PricingRule, error)
	SetGroupActive(ctx context.Context, groupID uuid.UUID, active bool) (bool, error)
	SetRuleActive(ctx context.Context, ruleID uuid.UUID, active bool) (bool, error)
}
