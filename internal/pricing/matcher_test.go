package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

func strptr(v string) *string { return &v }
func intptr(v int) *int       { return &v }
func i64ptr(v int64) *int64   { return &v }

func activeGroup(partnerID *uuid.UUID, rules ...models.PricingRule) models.PricingRuleGroup {
	return models.PricingRuleGroup{
		ID:        uuid.New(),
		Name:      "test group",
		PartnerID: partnerID,
		Season:    enums.SeasonRegular,
		Active:    true,
		Rules:     rules,
	}
}

func absoluteRule(price int64, priority int) models.PricingRule {
	return models.PricingRule{
		ID:       uuid.New(),
		Kind:     enums.PricingRuleKindBase,
		PriceKRW: price,
		Priority: priority,
		Active:   true,
	}
}

// Saturday 2026-09-12.
var saturday = time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

func TestQuoteEmptyRuleSet(t *testing.T) {
	result, err := Quote(nil, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 10})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if result.TotalKRW != 0 || len(result.Matches) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestQuoteHighestPriorityWins(t *testing.T) {
	groups := []models.PricingRuleGroup{activeGroup(nil,
		absoluteRule(300_000, 1),
		absoluteRule(500_000, 5),
		absoluteRule(400_000, 3),
	)}

	result, err := Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 10})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if result.TotalKRW != 500_000 {
		t.Fatalf("expected 500000, got %d", result.TotalKRW)
	}
	if !result.Matches[0].Winning || result.Matches[0].Rule.Priority != 5 {
		t.Fatalf("expected priority 5 winner first, got %+v", result.Matches[0])
	}
}

func TestQuoteTieBreakIsStable(t *testing.T) {
	first := absoluteRule(100_000, 2)
	second := absoluteRule(200_000, 2)
	groups := []models.PricingRuleGroup{activeGroup(nil, first, second)}

	for i := 0; i < 10; i++ {
		result, err := Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 10})
		if err != nil {
			t.Fatalf("quote: %v", err)
		}
		if result.BaseAmountKRW != 100_000 {
			t.Fatalf("tie must resolve to the first rule in snapshot order, got %d", result.BaseAmountKRW)
		}
	}
}

func TestQuoteGraduatedHeadcount(t *testing.T) {
	rule := absoluteRule(500_000, 1)
	rule.BaseGuestCount = intptr(10)
	rule.PricePerAddlGuest = i64ptr(20_000)
	groups := []models.PricingRuleGroup{activeGroup(nil, rule)}

	result, err := Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 15})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if result.TotalKRW != 600_000 {
		t.Fatalf("expected 500000 + 5*20000 = 600000, got %d", result.TotalKRW)
	}

	// Headcount at or below base incurs no addon.
	result, err = Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 8})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if result.TotalKRW != 500_000 {
		t.Fatalf("expected base amount only, got %d", result.TotalKRW)
	}
}

func TestQuoteDefaultBaseGuests(t *testing.T) {
	rule := absoluteRule(500_000, 1)
	rule.PricePerAddlGuest = i64ptr(10_000)
	groups := []models.PricingRuleGroup{activeGroup(nil, rule)}

	result, err := Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 12})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if result.TotalKRW != 520_000 {
		t.Fatalf("expected default base of 10 guests, got %d", result.TotalKRW)
	}
}

func TestQuotePercentageStacking(t *testing.T) {
	base := absoluteRule(600_000, 5)
	weekend := models.PricingRule{
		ID:           uuid.New(),
		Kind:         enums.PricingRuleKindOption,
		PriceKRW:     5,
		IsPercentage: true,
		Active:       true,
	}
	groups := []models.PricingRuleGroup{activeGroup(nil, base, weekend)}

	result, err := Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 10})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if result.TotalKRW != 630_000 {
		t.Fatalf("expected 600000 * 1.05 = 630000, got %d", result.TotalKRW)
	}
	if result.BaseAmountKRW != 600_000 {
		t.Fatalf("expected base 600000, got %d", result.BaseAmountKRW)
	}
}

func TestQuotePercentageWithoutAbsoluteIsZero(t *testing.T) {
	percent := models.PricingRule{
		ID:           uuid.New(),
		PriceKRW:     20,
		IsPercentage: true,
		Active:       true,
	}
	groups := []models.PricingRuleGroup{activeGroup(nil, percent)}

	result, err := Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 10})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if result.TotalKRW != 0 {
		t.Fatalf("percentage with no base must total 0, got %d", result.TotalKRW)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("the percentage match should still be reported, got %+v", result.Matches)
	}
}

func TestQuoteTimeWindowWrapsMidnight(t *testing.T) {
	night := absoluteRule(800_000, 1)
	night.StartTime = strptr("22:00")
	night.EndTime = strptr("02:00")
	groups := []models.PricingRuleGroup{activeGroup(nil, night)}

	for _, tc := range []struct {
		start string
		match bool
	}{
		{"23:30", true},
		{"01:00", true},
		{"22:00", true},
		{"02:00", true},
		{"12:00", false},
		{"02:01", false},
		{"21:59", false},
	} {
		result, err := Quote(groups, QuoteInput{Date: saturday, StartTime: tc.start, Headcount: 10})
		if err != nil {
			t.Fatalf("quote %s: %v", tc.start, err)
		}
		matched := len(result.Matches) == 1
		if matched != tc.match {
			t.Errorf("start %s: matched=%v, want %v", tc.start, matched, tc.match)
		}
	}
}

func TestQuoteMonthWeekdayAndHeadcountFilters(t *testing.T) {
	rule := absoluteRule(300_000, 1)
	rule.Months = []int{9, 10}
	rule.Weekdays = []int{6} // Saturday
	rule.MinGuests = 5
	rule.MaxGuests = intptr(40)
	groups := []models.PricingRuleGroup{activeGroup(nil, rule)}

	match := func(date time.Time, headcount int) bool {
		result, err := Quote(groups, QuoteInput{Date: date, StartTime: "12:00", Headcount: headcount})
		if err != nil {
			t.Fatalf("quote: %v", err)
		}
		return len(result.Matches) == 1
	}

	if !match(saturday, 20) {
		t.Fatal("expected September Saturday to match")
	}
	if match(saturday.AddDate(0, 0, 1), 20) {
		t.Fatal("Sunday must not match a Saturday-only rule")
	}
	if match(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), 20) {
		t.Fatal("August must not match a September/October rule")
	}
	if match(saturday, 4) {
		t.Fatal("headcount below min guests must not match")
	}
	if match(saturday, 41) {
		t.Fatal("headcount above max guests must not match")
	}
}

func TestQuotePartnerScope(t *testing.T) {
	partnerID := uuid.New()
	general := activeGroup(nil, absoluteRule(300_000, 1))
	scoped := activeGroup(&partnerID, absoluteRule(450_000, 9))
	inactive := activeGroup(nil, absoluteRule(999_999, 99))
	inactive.Active = false
	groups := []models.PricingRuleGroup{general, scoped, inactive}

	// Scoped caller sees both the fallback and its own group.
	result, err := Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 10, PartnerID: &partnerID})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if result.TotalKRW != 450_000 {
		t.Fatalf("expected scoped rule to win, got %d", result.TotalKRW)
	}

	// Unscoped callers only see the general fallback.
	result, err = Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 10})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if result.TotalKRW != 300_000 {
		t.Fatalf("expected fallback rule only, got %d", result.TotalKRW)
	}

	other := uuid.New()
	result, err = Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 10, PartnerID: &other})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if result.TotalKRW != 300_000 {
		t.Fatalf("foreign partner must not see scoped rules, got %d", result.TotalKRW)
	}
}

func TestQuoteDeterministicMatchOrder(t *testing.T) {
	groups := []models.PricingRuleGroup{activeGroup(nil,
		absoluteRule(100_000, 1),
		absoluteRule(200_000, 3),
		absoluteRule(300_000, 2),
	)}

	var firstOrder []uuid.UUID
	for i := 0; i < 5; i++ {
		result, err := Quote(groups, QuoteInput{Date: saturday, StartTime: "12:00", Headcount: 10})
		if err != nil {
			t.Fatalf("quote: %v", err)
		}
		var order []uuid.UUID
		for _, match := range result.Matches {
			order = append(order, match.Rule.ID)
		}
		if i == 0 {
			firstOrder = order
			for j := 1; j < len(result.Matches); j++ {
				if result.Matches[j-1].Rule.Priority < result.Matches[j].Rule.Priority {
					t.Fatal("matches must be sorted by priority descending")
				}
			}
			continue
		}
		for j := range order {
			if order[j] != firstOrder[j] {
				t.Fatal("match order must be deterministic across calls")
			}
		}
	}
}

func TestParseClock(t *testing.T) {
	if _, err := parseClock("24:00"); err == nil {
		t.Fatal("expected error for hour 24")
	}
	if _, err := parseClock("12:60"); err == nil {
		t.Fatal("expected error for minute 60")
	}
	if _, err := parseClock("noon"); err == nil {
		t.Fatal("expected error for non-clock text")
	}
	minute, err := parseClock("09:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if minute != 570 {
		t.Fatalf("expected 570 minutes, got %d", minute)
	}
}
