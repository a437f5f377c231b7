package types

import "time"

// DateLayout is the calendar-date format stored for receipt and delivery dates.
const DateLayout = "2006-01-02"

// FormatDate renders t as a calendar date in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsISODate reports whether value is a real calendar date in DateLayout.
func IsISODate(value string) bool {
	if len(value) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}
