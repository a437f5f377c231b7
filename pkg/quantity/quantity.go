// Package quantity converts the free-text quantities recorded on mixes into
// decimals so they can be totaled.
package quantity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmpty is returned when the input has no numeric content.
var ErrEmpty = errors.New("quantity is empty")

var joiners = map[string]struct{}{
	"and": {},
	"y":   {},
	"+":   {},
}

// Parse understands integers ("3"), decimals ("2.5" or "2,5"), fractions
// ("3/4") and mixed numbers ("1 1/2", "1 and 1/2", "1 y 1/2").
func Parse(raw string) (decimal.Decimal, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := joiners[field]; ok {
			continue
		}
		parts = append(parts, field)
	}

	switch len(parts) {
	case 0:
		return decimal.Zero, ErrEmpty
	case 1:
		return parseTerm(parts[0])
	case 2:
		whole, err := parseNumber(parts[0])
		if err != nil {
			return decimal.Zero, fmt.Errorf("quantity %q: %w", raw, err)
		}
		if !strings.Contains(parts[1], "/") {
			return decimal.Zero, fmt.Errorf("quantity %q: second term must be a fraction", raw)
		}
		frac, err := parseFraction(parts[1])
		if err != nil {
			return decimal.Zero, fmt.Errorf("quantity %q: %w", raw, err)
		}
		return whole.Add(frac), nil
	default:
		return decimal.Zero, fmt.Errorf("quantity %q: too many terms", raw)
	}
}

// Sum totals the provided quantities. ok is false when any of them cannot be
// parsed.
func Sum(raws ...string) (total decimal.Decimal, ok bool) {
	total = decimal.Zero
	for _, raw := range raws {
		value, err := Parse(raw)
		if err != nil {
			return decimal.Zero, false
		}
		total = total.Add(value)
	}
	return total, true
}

func parseTerm(term string) (decimal.Decimal, error) {
	if strings.Contains(term, "/") {
		return parseFraction(term)
	}
	return parseNumber(term)
}

func parseNumber(term string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.ReplaceAll(term, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", term)
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative number %q", term)
	}
	return value, nil
}

func parseFraction(term string) (decimal.Decimal, error) {
	num, den, found := strings.Cut(term, "/")
	if !found {
		return decimal.Zero, fmt.Errorf("invalid fraction %q", term)
	}
	numerator, err := parseNumber(num)
	if err != nil {
		return decimal.Zero, err
	}
	denominator, err := parseNumber(den)
	if err != nil {
		return decimal.Zero, err
	}
	if denominator.IsZero() {
		return decimal.Zero, fmt.Errorf("zero denominator in %q", term)
	}
	return numerator.DivRound(denominator, 4), nil
}
