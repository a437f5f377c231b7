package types

import (
	"testing"
	"time"
)

func TestIsISODate(t *testing.T) {
	tests := map[string]bool{
		"2024-02-29":           true,
		"2023-02-29":           false,
		"2024-13-01":           false,
		"2024-1-01":            false,
		"24-01-01":             false,
		"":                     false,
		"2024-01-01T00:00:00Z": false,
	}
	for value, want := range tests {
		if got := IsISODate(value); got != want {
			t.Fatalf("IsISODate(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 23, 59, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "2025-03-07" {
		t.Fatalf("unexpected date %q", got)
	}
}
