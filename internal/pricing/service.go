package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
)

// CreateGroupInput opens a new rule group.
type CreateGroupInput struct {
	Name      string
	PartnerID *uuid.UUID
	Season    enums.Season
}

// CreateRuleInput adds a rule to an existing group.
type CreateRuleInput struct {
	GroupID           uuid.UUID
	Kind              enums.PricingRuleKind
	Months            []int
	Weekdays          []int
	StartTime         *string
	EndTime           *string
	MinGuests         int
	MaxGuests         *int
	PriceKRW          int64
	IsPercentage      bool
	Priority          int
	BaseGuestCount    *int
	PricePerAddlGuest *int64
}

// Service exposes quoting plus staff-side rule administration.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (QuoteResult, error)
	ListGroups(ctx context.Context) ([]models.PricingRuleGroup, error)
	CreateGroup(ctx context.Context, input CreateGroupInput) (*models.PricingRuleGroup, error)
	CreateRule(ctx context.Context, input CreateRuleInput) (*models.PricingRule, error)
	SetGroupActive(ctx context.Context, groupID uuid.UUID, active bool) error
	SetRuleActive(ctx context.Context, ruleID uuid.UUID, active bool) error
}

type service struct {
	repo Repository
}

// NewService builds the pricing service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Quote(ctx context.Context, input QuoteInput) (QuoteResult, error) {
	if input.Date.IsZero() {
		return QuoteResult{}, pkgerrors.New(pkgerrors.CodeValidation, "date required")
	}
	if strings.TrimSpace(input.StartTime) == "" {
		return QuoteResult{}, pkgerrors.New(pkgerrors.CodeValidation, "start time required")
	}
	if _, err := parseClock(input.StartTime); err != nil {
		return QuoteResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "start time must be HH:MM")
	}
	if input.EndTime != "" {
		if _, err := parseClock(input.EndTime); err != nil {
			return QuoteResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "end time must be HH:MM")
		}
	}
	if input.Headcount <= 0 {
		return QuoteResult{}, pkgerrors.New(pkgerrors.CodeValidation, "headcount must be positive")
	}

	groups, err := s.repo.SnapshotGroups(ctx, input.PartnerID)
	if err != nil {
		return QuoteResult{}, err
	}
	return Quote(groups, input)
}

func (s *service) ListGroups(ctx context.Context) ([]models.PricingRuleGroup, error) {
	return s.repo.ListGroups(ctx)
}

func (s *service) CreateGroup(ctx context.Context, input CreateGroupInput) (*models.PricingRuleGroup, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group name required")
	}
	season := input.Season
	if season == "" {
		season = enums.SeasonRegular
	}
	if !season.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown season")
	}
	return s.repo.CreateGroup(ctx, &models.PricingRuleGroup{
		Name:      input.Name,
		PartnerID: input.PartnerID,
		Season:    season,
		Active:    true,
	})
}

func (s *service) CreateRule(ctx context.Context, input CreateRuleInput) (*models.PricingRule, error) {
	if input.GroupID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group id required")
	}
	kind := input.Kind
	if kind == "" {
		kind = enums.PricingRuleKindBase
	}
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown rule kind")
	}
	for _, month := range input.Months {
		if month < 1 || month > 12 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "months must be within 1-12")
		}
	}
	for _, weekday := range input.Weekdays {
		if weekday < 0 || weekday > 6 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "weekdays must be within 0-6")
		}
	}
	if (input.StartTime == nil) != (input.EndTime == nil) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "time window requires both start and end")
	}
	if input.StartTime != nil {
		if _, err := parseClock(*input.StartTime); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "start time must be HH:MM")
		}
		if _, err := parseClock(*input.EndTime); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "end time must be HH:MM")
		}
	}
	if input.MinGuests < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min guests must not be negative")
	}
	if input.MaxGuests != nil && *input.MaxGuests < input.MinGuests {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max guests must be at least min guests")
	}

	if _, err := s.repo.FindGroup(ctx, input.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rule group not found")
		}
		return nil, err
	}

	return s.repo.CreateRule(ctx, &models.PricingRule{
		GroupID:           input.GroupID,
		Kind:              kind,
		Months:            input.Months,
		Weekdays:          input.Weekdays,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		MinGuests:         input.MinGuests,
		MaxGuests:         input.MaxGuests,
		PriceKRW:          input.PriceKRW,
		IsPercentage:      input.IsPercentage,
		Priority:          input.Priority,
		BaseGuestCount:    input.BaseGuestCount,
		PricePerAddlGuest: input.PricePerAddlGuest,
		Active:            true,
	})
}

func (s *service) SetGroupActive(ctx context.Context, groupID uuid.UUID, active bool) error {
	if groupID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "group id required")
	}
	found, err := s.repo.SetGroupActive(ctx, groupID, active)
	if err != nil {
		return err
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "rule group not found")
	}
	return nil
}

func (s *service) SetRuleActive(ctx context.Context, ruleID uuid.UUID, active bool) error {
	if ruleID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "rule id required")
	}
	found, err := s.repo.SetRuleActive(ctx, ruleID, active)
	if err != nil {
		return err
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "pricing rule not found")
	}
	return nil
}
