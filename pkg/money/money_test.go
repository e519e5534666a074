package money

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrencyStrings(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		fallback int64
		want     int64
	}{
		{"rupee symbol with commas", "₹12,345", 0, 12345},
		{"plain number string", "5000", 0, 5000},
		{"decimal paise truncated", "1,234.60", 0, 1234},
		{"negative string", "-250", 0, -250},
		{"float input", 999.99, 0, 999},
		{"int input", int(42), 0, 42},
		{"int64 input", int64(42), 0, 42},
		{"json number", json.Number("777"), 0, 777},
		{"nil falls back", nil, 0, 0},
		{"nil falls back custom", nil, -1, -1},
		{"garbage falls back", "abc", 0, 0},
		{"only symbols falls back", "₹,", 7, 7},
		{"empty string falls back", "", 3, 3},
		{"bool falls back", true, 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in, tt.fallback))
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	inputs := []any{"₹12,345", "500", 42, 999.99}
	for _, in := range inputs {
		once := Parse(in, 0)
		twice := Parse(once, 0)
		assert.Equal(t, once, twice)
	}
}

func TestParseNonFinite(t *testing.T) {
	assert.Equal(t, int64(5), Parse(math.NaN(), 5))
	assert.Equal(t, int64(5), Parse(math.Inf(1), 5))
	assert.Equal(t, int64(5), Parse(math.Inf(-1), 5))
}

func TestParseFloat(t *testing.T) {
	f, ok := ParseFloat("2.5")
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = ParseFloat(nil)
	assert.False(t, ok)

	_, ok = ParseFloat([]string{"nope"})
	assert.False(t, ok)
}

func TestNonNegativeAndMin(t *testing.T) {
	assert.Equal(t, int64(0), NonNegative(-10))
	assert.Equal(t, int64(10), NonNegative(10))
	assert.Equal(t, int64(3), Min(3, 7))
	assert.Equal(t, int64(3), Min(7, 3))
}
