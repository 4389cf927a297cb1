package enums

import "fmt"

// NotificationType maps to the notification_type enum in Postgres.
type NotificationType string

const (
	NotificationOrderConfirmed      NotificationType = "order_confirmed"
	NotificationOrderCancelled      NotificationType = "order_cancelled"
	NotificationSettlementConfirmed NotificationType = "settlement_confirmed"
	NotificationOrderMessage        NotificationType = "order_message"
)

var validNotificationTypes = []NotificationType{
	NotificationOrderConfirmed,
	NotificationOrderCancelled,
	NotificationSettlementConfirmed,
	NotificationOrderMessage,
}

// IsValid reports whether the value matches the canonical notification_type enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
