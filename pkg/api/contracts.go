// Package api defines the wire contracts shared between the engines,
// the HTTP server, and the external recommendation/eligibility services.
package api

// SpendProfile is the user's declared spend across every question category.
// All 18 fields are present at submission time; unanswered categories are 0.
// The profile is frozen once submitted and always passed by value.
type SpendProfile struct {
	AmazonSpends             int64 `json:"amazon_spends"`
	FlipkartSpends           int64 `json:"flipkart_spends"`
	OtherOnlineSpends        int64 `json:"other_online_spends"`
	OtherOfflineSpends       int64 `json:"other_offline_spends"`
	GrocerySpendsOnline      int64 `json:"grocery_spends_online"`
	OnlineFoodOrdering       int64 `json:"online_food_ordering"`
	Fuel                     int64 `json:"fuel"`
	DiningOrGoingOut         int64 `json:"dining_or_going_out"`
	FlightsAnnual            int64 `json:"flights_annual"`
	HotelsAnnual             int64 `json:"hotels_annual"`
	DomesticLoungeQuarterly  int64 `json:"domestic_lounge_usage_quarterly"`
	IntlLoungeQuarterly      int64 `json:"international_lounge_usage_quarterly"`
	MobilePhoneBills         int64 `json:"mobile_phone_bills"`
	ElectricityBills         int64 `json:"electricity_bills"`
	WaterBills               int64 `json:"water_bills"`
	InsuranceHealthAnnual    int64 `json:"insurance_health_annual"`
	InsuranceCarOrBikeAnnual int64 `json:"insurance_car_or_bike_annual"`
	Rent                     int64 `json:"rent"`
}

// RawSaving is one element of the recommendation API's response array.
// The upstream service types nothing reliably: any numeric field may be
// absent, null, a number, or a currency string ("₹12,345"). Fields that
// need tolerant coercion are declared as `any` and must only be read
// through money.Parse at the enrichment boundary.
type RawSaving struct {
	CardID       any    `json:"card_id,omitempty"`
	CardAlias    string `json:"card_alias,omitempty"`
	SeoCardAlias string `json:"seo_card_alias,omitempty"`
	CardName     string `json:"card_name,omitempty"`

	TotalSavings       any `json:"total_savings,omitempty"`
	TotalSavingsYearly any `json:"total_savings_yearly,omitempty"`
	TotalExtraBenefits any `json:"total_extra_benefits,omitempty"`
	JoiningFees        any `json:"joining_fees,omitempty"`
	AnnualFee          any `json:"annual_fee,omitempty"`

	DomesticLoungesUnlocked      any `json:"domestic_lounges_unlocked,omitempty"`
	InternationalLoungesUnlocked any `json:"international_lounges_unlocked,omitempty"`

	SpendingBreakdown map[string]BreakdownEntry `json:"spending_breakdown,omitempty"`
	WelcomeBenefits   []WelcomeBenefit          `json:"welcome_benefits,omitempty"`

	// NetSavings may appear on the wire but is never trusted; the
	// enrichment engine always recomputes it.
	NetSavings any `json:"net_savings,omitempty"`
}

// Alias returns the first usable identifier for a raw saving, checking
// seo_card_alias, card_alias, then card_id in that order.
func (r RawSaving) Alias() string {
	if r.SeoCardAlias != "" {
		return r.SeoCardAlias
	}
	if r.CardAlias != "" {
		return r.CardAlias
	}
	if s, ok := r.CardID.(string); ok {
		return s
	}
	return ""
}

// BreakdownEntry describes savings attribution for one spend category.
type BreakdownEntry struct {
	On           string   `json:"on,omitempty"`
	Spend        any      `json:"spend,omitempty"`
	Savings      any      `json:"savings,omitempty"`
	PointsEarned any      `json:"points_earned,omitempty"`
	Explanation  []string `json:"explanation,omitempty"`
	ConvRate     any      `json:"conv_rate,omitempty"`
}

// WelcomeBenefit is a pass-through welcome-bonus descriptor.
type WelcomeBenefit struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Value       any    `json:"value,omitempty"`
}

// TravelBenefits carries the lounge allowances when the detail API nests
// them instead of exposing top-level fields.
type TravelBenefits struct {
	DomesticLoungesUnlocked      any `json:"domestic_lounges_unlocked,omitempty"`
	InternationalLoungesUnlocked any `json:"international_lounges_unlocked,omitempty"`
}

// CardDetail is the supplementary per-alias record from the card detail
// API. It is the authoritative source for presentation fields and a
// fallback source for fees and lounge allowances. Absence of a detail
// record never blocks enrichment.
type CardDetail struct {
	ID           any    `json:"id,omitempty"`
	SeoCardAlias string `json:"seo_card_alias,omitempty"`
	CardAlias    string `json:"card_alias,omitempty"`
	Name         string `json:"name,omitempty"`
	NickName     string `json:"nick_name,omitempty"`
	BankName     string `json:"bank_name,omitempty"`
	CardType     string `json:"card_type,omitempty"`
	Network      string `json:"network,omitempty"`
	NetworkURL   string `json:"network_url,omitempty"`
	Image        string `json:"image,omitempty"`

	// Fee aliases observed on the wire. All are checked in declaration
	// order when resolving a fee.
	JoiningFee    any `json:"joining_fee,omitempty"`
	JoiningFees   any `json:"joining_fees,omitempty"`
	AnnualFee     any `json:"annual_fee,omitempty"`
	AnnualFees    any `json:"annual_fees,omitempty"`
	AnnualFeeText any `json:"annual_fee_text,omitempty"`

	TotalSavings       any `json:"total_savings,omitempty"`
	TotalSavingsYearly any `json:"total_savings_yearly,omitempty"`
	TotalExtraBenefits any `json:"total_extra_benefits,omitempty"`

	TravelBenefits  *TravelBenefits  `json:"travel_benefits,omitempty"`
	WelcomeBenefits []WelcomeBenefit `json:"welcome_benefits,omitempty"`
}

// DisplayName returns the best available card name.
func (d CardDetail) DisplayName() string {
	if d.NickName != "" {
		return d.NickName
	}
	return d.Name
}

// EnrichedBreakdown is the fully-typed per-category attribution on an
// enriched card.
type EnrichedBreakdown struct {
	On           string   `json:"on,omitempty"`
	Spend        int64    `json:"spend"`
	Savings      int64    `json:"savings"`
	PointsEarned int64    `json:"points_earned"`
	Explanation  []string `json:"explanation,omitempty"`
	ConvRate     float64  `json:"conv_rate,omitempty"`
}

// EnrichedCard is the engine's canonical output record. All money fields
// are integer rupees; net_savings is always recomputed by the engine.
type EnrichedCard struct {
	ID           string `json:"id"`
	CardName     string `json:"card_name"`
	SeoCardAlias string `json:"seo_card_alias"`
	BankName     string `json:"bank_name,omitempty"`
	CardType     string `json:"card_type,omitempty"`
	Network      string `json:"network,omitempty"`
	NetworkURL   string `json:"network_url,omitempty"`
	Image        string `json:"image,omitempty"`

	JoiningFees        int64 `json:"joining_fees"`
	AnnualFees         int64 `json:"annual_fees"`
	TotalSavings       int64 `json:"total_savings"`
	TotalSavingsYearly int64 `json:"total_savings_yearly"`
	TotalExtraBenefits int64 `json:"total_extra_benefits"`

	DomesticLoungesUnlocked      int64 `json:"domestic_lounges_unlocked"`
	InternationalLoungesUnlocked int64 `json:"international_lounges_unlocked"`
	DomesticLoungeValue          int64 `json:"domestic_lounge_value"`
	InternationalLoungeValue     int64 `json:"international_lounge_value"`
	AirportLoungeValue           int64 `json:"airport_lounge_value"`

	NetSavings int64 `json:"net_savings"`

	SpendingBreakdown map[string]EnrichedBreakdown `json:"spending_breakdown,omitempty"`
	WelcomeBenefits   []WelcomeBenefit             `json:"welcome_benefits,omitempty"`
}
