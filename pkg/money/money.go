// Package money provides tolerant numeric coercion for the untyped
// amounts the external card APIs return. Canonical amounts everywhere in
// this codebase are integer rupees; fractional paise are truncated.
package money

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse coerces an arbitrary wire value into integer rupees. Accepted
// inputs: nil, any Go numeric type, json.Number, or a string that may
// carry currency symbols and grouping commas ("₹12,345.60" -> 12345).
// Anything unparseable or non-finite returns fallback. Parse is
// idempotent: feeding its own output back yields the same value.
func Parse(v any, fallback int64) int64 {
	f, ok := ParseFloat(v)
	if !ok {
		return fallback
	}
	return int64(f)
}

// ParseFloat is the float-preserving form of Parse, used for fields like
// conversion rates where fractions matter. The second return is false
// when the value could not be coerced.
func ParseFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return finite(float64(x))
	case float64:
		return finite(x)
	case json.Number:
		return parseString(x.String())
	case string:
		return parseString(x)
	default:
		return 0, false
	}
}

func parseString(s string) (float64, bool) {
	// Strip everything that is not a digit, dot, or minus. This covers
	// currency symbols, grouping commas, and stray whitespace.
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	return finite(d.InexactFloat64())
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NonNegative clamps a parsed amount at zero. Count and fee fields are
// never negative in the domain model.
func NonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// Min returns the smaller of two amounts.
func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
