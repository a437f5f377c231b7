package quantity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "3", want: "3"},
		{raw: " 2.5 ", want: "2.5"},
		{raw: "2,5", want: "2.5"},
		{raw: "3/4", want: "0.75"},
		{raw: "1 1/2", want: "1.5"},
		{raw: "1 and 1/2", want: "1.5"},
		{raw: "1 Y 1/2", want: "1.5"},
		{raw: "1/3", want: "0.3333"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "%s: got %s", tt.raw, got)
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc", "1/0", "-2", "1 2", "1 and 2 and 3/4", "1/x"} {
		_, err := Parse(raw)
		assert.Error(t, err, raw)
	}
}

func TestSum(t *testing.T) {
	total, ok := Sum("1 and 1/2", "2", "1/2")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(4).Equal(total))

	_, ok = Sum("1", "a handful")
	assert.False(t, ok)

	total, ok = Sum()
	require.True(t, ok)
	assert.True(t, total.IsZero())
}
