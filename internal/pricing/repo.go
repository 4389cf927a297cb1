package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// SnapshotGroups loads every active group applicable to the scope together
// with its rules in one pass, so a single quote computes against a
// consistent snapshot.
func (r *repository) SnapshotGroups(ctx context.Context, partnerID *uuid.UUID) ([]models.PricingRuleGroup, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PricingRuleGroup{}).
		Where("active = ?", true)
	if partnerID != nil {
		query = query.Where("partner_id IS NULL OR partner_id = ?", *partnerID)
	} else {
		query = query.Where("partner_id IS NULL")
	}

	var groups []models.PricingRuleGroup
	if err := query.
		Preload("Rules", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order("created_at ASC, id ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *repository) ListGroups(ctx context.Context) ([]models.PricingRuleGroup, error) {
	var groups []models.PricingRuleGroup
	if err := r.db.WithContext(ctx).
		Preload("Rules", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order("created_at ASC, id ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *repository) FindGroup(ctx context.Context, groupID uuid.UUID) (*models.PricingRuleGroup, error) {
	var group models.PricingRuleGroup
	if err := r.db.WithContext(ctx).
		Preload("Rules", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&group, "id = ?", groupID).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) CreateGroup(ctx context.Context, group *models.PricingRuleGroup) (*models.PricingRuleGroup, error) {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (r *repository) CreateRule(ctx context.Context, rule *models.PricingRule) (*models.PricingRule, error) {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *repository) SetGroupActive(ctx context.Context, groupID uuid.UUID, active bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PricingRuleGroup{}).
		Where("id = ?", groupID).
		Update("active", active)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) SetRuleActive(ctx context.Context, ruleID uuid.UUID, active bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PricingRule{}).
		Where("id = ?", ruleID).
		Update("active", active)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
