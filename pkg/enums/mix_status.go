package enums

import "fmt"

// MixStatus tracks whether a mix has been handed over.
type MixStatus string

const (
	MixStatusPending   MixStatus = "pending"
	MixStatusDelivered MixStatus = "delivered"
)

var validMixStatuses = []MixStatus{
	MixStatusPending,
	MixStatusDelivered,
}

// String implements fmt.Stringer.
func (s MixStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known MixStatus.
func (s MixStatus) IsValid() bool {
	for _, candidate := range validMixStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseMixStatus converts raw input into a MixStatus.
func ParseMixStatus(value string) (MixStatus, error) {
	for _, candidate := range validMixStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid mix status %q", value)
}
