package enums

import "fmt"

// MessageSource records where an order message entered the system.
type MessageSource string

const (
	MessageSourceApp   MessageSource = "app"
	MessageSourceSlack MessageSource = "slack"
)

var validMessageSources = []MessageSource{
	MessageSourceApp,
	MessageSourceSlack,
}

// IsValid reports whether the value is a known MessageSource.
func (m MessageSource) IsValid() bool {
	for _, candidate := range validMessageSources {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMessageSource converts raw input into a MessageSource.
func ParseMessageSource(value string) (MessageSource, error) {
	for _, candidate := range validMessageSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid message source %q", value)
}
