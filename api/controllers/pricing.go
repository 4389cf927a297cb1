package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/api/responses"
	"github.com/venuelinkhq/venuelink-backend/api/validators"
	internalpricing "github.com/venuelinkhq/venuelink-backend/internal/pricing"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
)

type quoteRequest struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time"`
	Headcount int     `json:"headcount" validate:"gte=0"`
	PartnerID *string `json:"partner_id" validate:"omitempty,uuid4"`
}

type createPricingGroupRequest struct {
	Name      string  `json:"name" validate:"required"`
	PartnerID *string `json:"partner_id" validate:"omitempty,uuid4"`
	Season    string  `json:"season" validate:"required"`
}

type createPricingRuleRequest struct {
	Kind              string  `json:"kind" validate:"required"`
	Months            []int   `json:"months" validate:"omitempty,dive,min=1,max=12"`
	Weekdays          []int   `json:"weekdays" validate:"omitempty,dive,min=0,max=6"`
	StartTime         *string `json:"start_time"`
	EndTime           *string `json:"end_time"`
	MinGuests         int     `json:"min_guests" validate:"gte=0"`
	MaxGuests         *int    `json:"max_guests" validate:"omitempty,gte=0"`
	PriceKRW          int64   `json:"price_krw"`
	IsPercentage      bool    `json:"is_percentage"`
	Priority          int     `json:"priority"`
	BaseGuestCount    *int    `json:"base_guest_count" validate:"omitempty,gte=0"`
	PricePerAddlGuest *int64  `json:"price_per_addl_guest" validate:"omitempty,gte=0"`
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// QuotePrice runs the rule matcher over the active rule groups.
func QuotePrice(svc internalpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var body quoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date"))
			return
		}

		input := internalpricing.QuoteInput{
			Date:      date,
			StartTime: body.StartTime,
			EndTime:   body.EndTime,
			Headcount: body.Headcount,
		}
		if body.PartnerID != nil {
			partnerID, parseErr := uuid.Parse(*body.PartnerID)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid partner id"))
				return
			}
			input.PartnerID = &partnerID
		}

		result, err := svc.Quote(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListPricingGroups returns all rule groups with their rules.
func ListPricingGroups(svc internalpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		groups, err := svc.ListGroups(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, groups)
	}
}

// CreatePricingGroup adds a new rule group.
func CreatePricingGroup(svc internalpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var body createPricingGroupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		season := enums.Season(body.Season)
		if !season.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown season"))
			return
		}

		input := internalpricing.CreateGroupInput{
			Name:   body.Name,
			Season: season,
		}
		if body.PartnerID != nil {
			partnerID, parseErr := uuid.Parse(*body.PartnerID)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid partner id"))
				return
			}
			input.PartnerID = &partnerID
		}

		group, err := svc.CreateGroup(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, group)
	}
}

// CreatePricingRule adds a rule to an existing group.
func CreatePricingRule(svc internalpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		groupID, err := pathUUID(r, "groupID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createPricingRuleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind := enums.PricingRuleKind(strings.TrimSpace(body.Kind))
		if !kind.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown rule kind"))
			return
		}

		rule, err := svc.CreateRule(r.Context(), internalpricing.CreateRuleInput{
			GroupID:           groupID,
			Kind:              kind,
			Months:            body.Months,
			Weekdays:          body.Weekdays,
			StartTime:         body.StartTime,
			EndTime:           body.EndTime,
			MinGuests:         body.MinGuests,
			MaxGuests:         body.MaxGuests,
			PriceKRW:          body.PriceKRW,
			IsPercentage:      body.IsPercentage,
			Priority:          body.Priority,
			BaseGuestCount:    body.BaseGuestCount,
			PricePerAddlGuest: body.PricePerAddlGuest,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, rule)
	}
}

// SetPricingGroupActive toggles a rule group in or out of quoting.
func SetPricingGroupActive(svc internalpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		groupID, err := pathUUID(r, "groupID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body setActiveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetGroupActive(r.Context(), groupID, body.Active); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"active": body.Active})
	}
}

// SetPricingRuleActive toggles a single rule in or out of quoting.
func SetPricingRuleActive(svc internalpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		ruleID, err := pathUUID(r, "ruleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body setActiveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetRuleActive(r.Context(), ruleID, body.Active); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"active": body.Active})
	}
}
