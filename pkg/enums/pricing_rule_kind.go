package enums

import "fmt"

// PricingRuleKind labels what a pricing rule charges for. It is informational
// only; the matcher never branches on it.
type PricingRuleKind string

const (
	PricingRuleKindBase       PricingRuleKind = "base"
	PricingRuleKindTimeSlot   PricingRuleKind = "time_slot"
	PricingRuleKindGuestAddon PricingRuleKind = "guest_addon"
	PricingRuleKindOption     PricingRuleKind = "option"
)

var validPricingRuleKinds = []PricingRuleKind{
	PricingRuleKindBase,
	PricingRuleKindTimeSlot,
	PricingRuleKindGuestAddon,
	PricingRuleKindOption,
}

// String implements fmt.Stringer.
func (k PricingRuleKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known PricingRuleKind.
func (k PricingRuleKind) IsValid() bool {
	for _, candidate := range validPricingRuleKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParsePricingRuleKind converts raw input into a PricingRuleKind.
func ParsePricingRuleKind(value string) (PricingRuleKind, error) {
	for _, candidate := range validPricingRuleKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing rule kind %q", value)
}
