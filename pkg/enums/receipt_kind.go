package enums

import (
	"fmt"
	"strings"
)

// ReceiptKind names the raw material carried by a receipt.
type ReceiptKind string

const (
	ReceiptKindRaspberry  ReceiptKind = "raspberry"
	ReceiptKindStrawberry ReceiptKind = "strawberry"
)

// DefaultReceiptKinds is used when no kind set is configured.
var DefaultReceiptKinds = []ReceiptKind{
	ReceiptKindRaspberry,
	ReceiptKindStrawberry,
}

// String implements fmt.Stringer.
func (k ReceiptKind) String() string {
	return string(k)
}

// ReceiptKindSet is the configured list of accepted kinds.
type ReceiptKindSet struct {
	kinds []ReceiptKind
}

// NewReceiptKindSet normalizes raw values, dropping blanks and duplicates.
// An empty input falls back to DefaultReceiptKinds.
func NewReceiptKindSet(raw []string) ReceiptKindSet {
	seen := map[ReceiptKind]struct{}{}
	set := ReceiptKindSet{}
	for _, value := range raw {
		kind := ReceiptKind(strings.ToLower(strings.TrimSpace(value)))
		if kind == "" {
			continue
		}
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		set.kinds = append(set.kinds, kind)
	}
	if len(set.kinds) == 0 {
		set.kinds = append(set.kinds, DefaultReceiptKinds...)
	}
	return set
}

// Contains reports whether value is an accepted kind. Matching is exact.
func (s ReceiptKindSet) Contains(value string) bool {
	for _, candidate := range s.kinds {
		if string(candidate) == value {
			return true
		}
	}
	return false
}

// Parse converts raw input into a ReceiptKind from the set.
func (s ReceiptKindSet) Parse(value string) (ReceiptKind, error) {
	if !s.Contains(value) {
		return "", fmt.Errorf("invalid receipt kind %q", value)
	}
	return ReceiptKind(value), nil
}

// Kinds returns a copy of the accepted kinds.
func (s ReceiptKindSet) Kinds() []ReceiptKind {
	out := make([]ReceiptKind, len(s.kinds))
	copy(out, s.kinds)
	return out
}

// Strings returns the accepted kinds as plain strings.
func (s ReceiptKindSet) Strings() []string {
	out := make([]string, 0, len(s.kinds))
	for _, kind := range s.kinds {
		out = append(out, string(kind))
	}
	return out
}
