package enums

import "fmt"

// Season classifies a pricing rule group's demand period.
type Season string

const (
	SeasonRegular Season = "regular"
	SeasonPeak    Season = "peak"
	SeasonOffPeak Season = "off_peak"
)

var validSeasons = []Season{
	SeasonRegular,
	SeasonPeak,
	SeasonOffPeak,
}

// String implements fmt.Stringer.
func (s Season) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Season.
func (s Season) IsValid() bool {
	for _, candidate := range validSeasons {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSeason converts raw input into a Season.
func ParseSeason(value string) (Season, error) {
	for _, candidate := range validSeasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid season %q", value)
}
