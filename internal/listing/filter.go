// Package listing implements the card browse surface: pure filter
// predicates over the catalog and the eligibility check that feeds one
// of them.
package listing

import (
	"strings"

	"cardwise/pkg/api"
	"cardwise/pkg/money"
)

// Filter is the set of active listing filters. Every criterion is a
// pure predicate over the same card collection; composition is set
// intersection, so application order never changes the result.
type Filter struct {
	Bank    string
	Network string
	Query   string

	// Annual fee range, inclusive. Nil means unbounded on that side.
	FeeMin *int64
	FeeMax *int64

	// Eligible restricts the listing to aliases the eligibility API
	// approved. Nil means no eligibility filter is active.
	Eligible map[string]bool
}

// Apply returns the cards matching every active criterion.
func (f Filter) Apply(cards []api.CardDetail) []api.CardDetail {
	out := make([]api.CardDetail, 0, len(cards))
	for _, c := range cards {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// Matches evaluates all active predicates against one card.
func (f Filter) Matches(c api.CardDetail) bool {
	if f.Bank != "" && !strings.EqualFold(c.BankName, f.Bank) {
		return false
	}
	if f.Network != "" && !strings.EqualFold(c.Network, f.Network) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		name := strings.ToLower(c.DisplayName())
		bank := strings.ToLower(c.BankName)
		if !strings.Contains(name, q) && !strings.Contains(bank, q) {
			return false
		}
	}
	if f.FeeMin != nil || f.FeeMax != nil {
		fee := money.NonNegative(money.Parse(firstPresent(c.AnnualFee, c.AnnualFees, c.AnnualFeeText), 0))
		if f.FeeMin != nil && fee < *f.FeeMin {
			return false
		}
		if f.FeeMax != nil && fee > *f.FeeMax {
			return false
		}
	}
	if f.Eligible != nil && !f.Eligible[strings.ToLower(c.SeoCardAlias)] {
		return false
	}
	return true
}

func firstPresent(vals ...any) any {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
