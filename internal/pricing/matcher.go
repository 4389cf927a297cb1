package pricing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
)

// defaultBaseGuests applies when a graduated rule has no base headcount.
const defaultBaseGuests = 10

// Effect is the priced outcome a matching rule contributes.
type Effect interface {
	isEffect()
}

// AbsoluteEffect contributes a concrete KRW amount, optionally graduated by
// headcount above the base guest count.
type AbsoluteEffect struct {
	PriceKRW              int64
	BaseGuests            int
	PerAdditionalGuestKRW int64
}

func (AbsoluteEffect) isEffect() {}

// PercentageEffect adjusts the winning absolute amount by a raw percentage.
type PercentageEffect struct {
	Percent int64
}

func (PercentageEffect) isEffect() {}

// effectOf maps the stored rule row onto its tagged effect.
func effectOf(rule models.PricingRule) Effect {
	if rule.IsPercentage {
		return PercentageEffect{Percent: rule.PriceKRW}
	}
	effect := AbsoluteEffect{
		PriceKRW:   rule.PriceKRW,
		BaseGuests: defaultBaseGuests,
	}
	if rule.BaseGuestCount != nil {
		effect.BaseGuests = *rule.BaseGuestCount
	}
	if rule.PricePerAddlGuest != nil {
		effect.PerAdditionalGuestKRW = *rule.PricePerAddlGuest
	}
	return effect
}

// QuoteInput is one price calculation request.
type QuoteInput struct {
	Date      time.Time
	StartTime string // "HH:MM"
	EndTime   string // optional, "HH:MM"
	Headcount int
	PartnerID *uuid.UUID
}

// MatchedRule is one surviving rule plus its computed contribution.
type MatchedRule struct {
	Rule      models.PricingRule `json:"rule"`
	AmountKRW int64              `json:"amount_krw"`
	Percent   int64              `json:"percent"`
	Winning   bool               `json:"winning"`
}

// QuoteResult carries the surviving matches and the final total.
type QuoteResult struct {
	Matches       []MatchedRule `json:"matches"`
	BaseAmountKRW int64         `json:"base_amount_krw"`
	TotalKRW      int64         `json:"total_krw"`
}

// Quote runs the rule matcher over the supplied group snapshot. It is a pure
// function: identical inputs against the same snapshot always produce the
// same result.
func Quote(groups []models.PricingRuleGroup, input QuoteInput) (QuoteResult, error) {
	startMinute, err := parseClock(input.StartTime)
	if err != nil {
		return QuoteResult{}, fmt.Errorf("start time: %w", err)
	}

	month := int(input.Date.Month())
	weekday := int(input.Date.Weekday())

	var matches []MatchedRule
	for _, group := range groups {
		if !groupApplies(group, input.PartnerID) {
			continue
		}
		for _, rule := range group.Rules {
			if !ruleMatches(rule, month, weekday, startMinute, input.Headcount) {
				continue
			}
			match := MatchedRule{Rule: rule}
			switch effect := effectOf(rule).(type) {
			case AbsoluteEffect:
				match.AmountKRW = absoluteAmount(effect, input.Headcount)
			case PercentageEffect:
				match.Percent = effect.Percent
			}
			matches = append(matches, match)
		}
	}

	result := QuoteResult{}

	// Highest priority absolute rule wins; stable sort keeps the original
	// snapshot order as the tie break.
	winner := -1
	for i, match := range matches {
		if match.Rule.IsPercentage {
			continue
		}
		if winner == -1 || match.Rule.Priority > matches[winner].Rule.Priority {
			winner = i
		}
	}
	if winner >= 0 {
		matches[winner].Winning = true
		result.BaseAmountKRW = matches[winner].AmountKRW
	}

	base := decimal.NewFromInt(result.BaseAmountKRW)
	total := base
	for _, match := range matches {
		if !match.Rule.IsPercentage {
			continue
		}
		adjustment := base.Mul(decimal.NewFromInt(match.Percent)).Div(decimal.NewFromInt(100))
		total = total.Add(adjustment)
	}
	result.TotalKRW = total.Round(0).IntPart()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Rule.Priority > matches[j].Rule.Priority
	})
	result.Matches = matches
	return result, nil
}

func groupApplies(group models.PricingRuleGroup, partnerID *uuid.UUID) bool {
	if !group.Active {
		return false
	}
	if group.PartnerID == nil {
		return true
	}
	return partnerID != nil && *group.PartnerID == *partnerID
}

func ruleMatches(rule models.PricingRule, month, weekday, startMinute, headcount int) bool {
	if !rule.Active {
		return false
	}
	if len(rule.Months) > 0 && !containsInt(rule.Months, month) {
		return false
	}
	if len(rule.Weekdays) > 0 && !containsInt(rule.Weekdays, weekday) {
		return false
	}
	if rule.StartTime != nil && rule.EndTime != nil {
		windowStart, err := parseClock(*rule.StartTime)
		if err != nil {
			return false
		}
		windowEnd, err := parseClock(*rule.EndTime)
		if err != nil {
			return false
		}
		if !inWindow(startMinute, windowStart, windowEnd) {
			return false
		}
	}
	if headcount < rule.MinGuests {
		return false
	}
	if rule.MaxGuests != nil && headcount > *rule.MaxGuests {
		return false
	}
	return true
}

// inWindow treats end < start as a window spanning midnight.
func inWindow(minute, start, end int) bool {
	if end < start {
		return minute >= start || minute <= end
	}
	return minute >= start && minute <= end
}

func absoluteAmount(effect AbsoluteEffect, headcount int) int64 {
	extra := headcount - effect.BaseGuests
	if extra < 0 {
		extra = 0
	}
	return effect.PriceKRW + int64(extra)*effect.PerAdditionalGuestKRW
}

func containsInt(values []int, target int) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour*60 + minute, nil
}
