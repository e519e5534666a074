package enrich

import (
	"strconv"

	"cardwise/pkg/api"
	"cardwise/pkg/money"
)

// assemble builds the canonical card record from a raw saving and an
// optional detail record. Resolution order for every money and count
// field: raw saving first, then detail, then 0. Presentation fields
// prefer the detail record, since the detail API is authoritative for
// catalog metadata.
func assemble(profile api.SpendProfile, raw api.RawSaving, detail *api.CardDetail) api.EnrichedCard {
	card := api.EnrichedCard{
		CardName:     raw.CardName,
		SeoCardAlias: raw.Alias(),
	}

	if s, ok := raw.CardID.(string); ok {
		card.ID = s
	} else if id := money.Parse(raw.CardID, -1); id >= 0 {
		card.ID = strconv.FormatInt(id, 10)
	}

	if detail != nil {
		if card.ID == "" {
			if s, ok := detail.ID.(string); ok {
				card.ID = s
			} else if id := money.Parse(detail.ID, -1); id >= 0 {
				card.ID = strconv.FormatInt(id, 10)
			}
		}
		if name := detail.DisplayName(); name != "" {
			card.CardName = name
		}
		if card.SeoCardAlias == "" {
			card.SeoCardAlias = detail.SeoCardAlias
		}
		card.BankName = detail.BankName
		card.CardType = detail.CardType
		card.Network = detail.Network
		card.NetworkURL = detail.NetworkURL
		card.Image = detail.Image
	}

	card.JoiningFees = resolveMoney(raw.JoiningFees, detailFields(detail, func(d *api.CardDetail) []any {
		return []any{d.JoiningFees, d.JoiningFee}
	}))
	card.AnnualFees = resolveMoney(raw.AnnualFee, detailFields(detail, func(d *api.CardDetail) []any {
		return []any{d.AnnualFee, d.AnnualFees, d.AnnualFeeText}
	}))
	card.TotalSavings = resolveMoney(raw.TotalSavings, detailFields(detail, func(d *api.CardDetail) []any {
		return []any{d.TotalSavings}
	}))
	card.TotalSavingsYearly = resolveMoney(raw.TotalSavingsYearly, detailFields(detail, func(d *api.CardDetail) []any {
		return []any{d.TotalSavingsYearly}
	}))
	card.TotalExtraBenefits = resolveMoney(raw.TotalExtraBenefits, detailFields(detail, func(d *api.CardDetail) []any {
		return []any{d.TotalExtraBenefits}
	}))

	// Lounge allowances: raw saving first, travel_benefits fallback.
	domAllowance := money.Parse(raw.DomesticLoungesUnlocked, -1)
	intlAllowance := money.Parse(raw.InternationalLoungesUnlocked, -1)
	if detail != nil && detail.TravelBenefits != nil {
		if domAllowance < 0 {
			domAllowance = money.Parse(detail.TravelBenefits.DomesticLoungesUnlocked, 0)
		}
		if intlAllowance < 0 {
			intlAllowance = money.Parse(detail.TravelBenefits.InternationalLoungesUnlocked, 0)
		}
	}
	card.DomesticLoungesUnlocked = money.NonNegative(domAllowance)
	card.InternationalLoungesUnlocked = money.NonNegative(intlAllowance)

	// A user is never credited lounge value beyond what the card grants.
	actualDomestic := money.Min(money.NonNegative(profile.DomesticLoungeQuarterly), card.DomesticLoungesUnlocked)
	actualInternational := money.Min(money.NonNegative(profile.IntlLoungeQuarterly), card.InternationalLoungesUnlocked)
	card.DomesticLoungeValue = actualDomestic * DomesticVisitValue
	card.InternationalLoungeValue = actualInternational * InternationalVisitValue
	card.AirportLoungeValue = card.DomesticLoungeValue + card.InternationalLoungeValue

	// Always recomputed; the wire value is never trusted.
	card.NetSavings = card.TotalSavingsYearly + card.TotalExtraBenefits + card.AirportLoungeValue - card.JoiningFees

	card.SpendingBreakdown = convertBreakdown(raw.SpendingBreakdown)
	card.WelcomeBenefits = raw.WelcomeBenefits
	if len(card.WelcomeBenefits) == 0 && detail != nil {
		card.WelcomeBenefits = detail.WelcomeBenefits
	}

	return card
}

// resolveMoney coerces the primary value, falling through the given
// fallbacks, then 0.
func resolveMoney(primary any, fallbacks []any) int64 {
	candidates := append([]any{primary}, fallbacks...)
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if _, ok := money.ParseFloat(c); ok {
			return money.NonNegative(money.Parse(c, 0))
		}
	}
	return 0
}

func detailFields(detail *api.CardDetail, pick func(*api.CardDetail) []any) []any {
	if detail == nil {
		return nil
	}
	return pick(detail)
}

func convertBreakdown(in map[string]api.BreakdownEntry) map[string]api.EnrichedBreakdown {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]api.EnrichedBreakdown, len(in))
	for category, entry := range in {
		conv, _ := money.ParseFloat(entry.ConvRate)
		out[category] = api.EnrichedBreakdown{
			On:           entry.On,
			Spend:        money.NonNegative(money.Parse(entry.Spend, 0)),
			Savings:      money.NonNegative(money.Parse(entry.Savings, 0)),
			PointsEarned: money.NonNegative(money.Parse(entry.PointsEarned, 0)),
			Explanation:  entry.Explanation,
			ConvRate:     conv,
		}
	}
	return out
}

