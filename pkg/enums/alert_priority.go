package enums

import "fmt"

// AlertPriority ranks how urgently an alert should surface to users.
type AlertPriority string

const (
	AlertPriorityLow    AlertPriority = "low"
	AlertPriorityMedium AlertPriority = "medium"
	AlertPriorityHigh   AlertPriority = "high"
)

var validAlertPriorities = []AlertPriority{
	AlertPriorityLow,
	AlertPriorityMedium,
	AlertPriorityHigh,
}

// String implements fmt.Stringer.
func (a AlertPriority) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AlertPriority.
func (a AlertPriority) IsValid() bool {
	for _, candidate := range validAlertPriorities {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAlertPriority converts raw input into an AlertPriority.
func ParseAlertPriority(value string) (AlertPriority, error) {
	for _, candidate := range validAlertPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid alert priority %q", value)
}
