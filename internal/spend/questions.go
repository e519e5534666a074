// Package spend implements the spending questionnaire: the question
// catalog, the clamping value collector, and the wizard state machine.
package spend

// Group buckets questions for the wizard's per-category completion rule.
type Group string

const (
	GroupShopping   Group = "shopping"
	GroupFoodDining Group = "food_dining"
	GroupTravel     Group = "travel"
	GroupBills      Group = "bills"
	GroupHousehold  Group = "household"
)

// Question is one bounded numeric question. Step is advisory: the UI
// increments by it, but manual entry is only clamped to [Min, Max].
// Optional questions (lounge visit counts) never gate completion.
type Question struct {
	Field    string
	Label    string
	Group    Group
	Min      int64
	Max      int64
	Step     int64
	Optional bool
}

// Field names are the wire contract shared with api.SpendProfile.
const (
	FieldAmazonSpends             = "amazon_spends"
	FieldFlipkartSpends           = "flipkart_spends"
	FieldOtherOnlineSpends        = "other_online_spends"
	FieldOtherOfflineSpends       = "other_offline_spends"
	FieldGrocerySpendsOnline      = "grocery_spends_online"
	FieldOnlineFoodOrdering       = "online_food_ordering"
	FieldFuel                     = "fuel"
	FieldDiningOrGoingOut         = "dining_or_going_out"
	FieldFlightsAnnual            = "flights_annual"
	FieldHotelsAnnual             = "hotels_annual"
	FieldDomesticLoungeQuarterly  = "domestic_lounge_usage_quarterly"
	FieldIntlLoungeQuarterly      = "international_lounge_usage_quarterly"
	FieldMobilePhoneBills         = "mobile_phone_bills"
	FieldElectricityBills         = "electricity_bills"
	FieldWaterBills               = "water_bills"
	FieldInsuranceHealthAnnual    = "insurance_health_annual"
	FieldInsuranceCarOrBikeAnnual = "insurance_car_or_bike_annual"
	FieldRent                     = "rent"
)

var catalog = []Question{
	{Field: FieldAmazonSpends, Label: "Amazon spends per month", Group: GroupShopping, Min: 0, Max: 500000, Step: 1000},
	{Field: FieldFlipkartSpends, Label: "Flipkart spends per month", Group: GroupShopping, Min: 0, Max: 500000, Step: 1000},
	{Field: FieldOtherOnlineSpends, Label: "Other online spends per month", Group: GroupShopping, Min: 0, Max: 500000, Step: 1000},
	{Field: FieldOtherOfflineSpends, Label: "Offline shopping per month", Group: GroupShopping, Min: 0, Max: 500000, Step: 1000},
	{Field: FieldGrocerySpendsOnline, Label: "Online grocery per month", Group: GroupFoodDining, Min: 0, Max: 200000, Step: 500},
	{Field: FieldOnlineFoodOrdering, Label: "Food delivery per month", Group: GroupFoodDining, Min: 0, Max: 100000, Step: 500},
	{Field: FieldDiningOrGoingOut, Label: "Dining out per month", Group: GroupFoodDining, Min: 0, Max: 200000, Step: 500},
	{Field: FieldFuel, Label: "Fuel per month", Group: GroupBills, Min: 0, Max: 100000, Step: 500},
	{Field: FieldFlightsAnnual, Label: "Flights per year", Group: GroupTravel, Min: 0, Max: 1000000, Step: 5000},
	{Field: FieldHotelsAnnual, Label: "Hotels per year", Group: GroupTravel, Min: 0, Max: 1000000, Step: 5000},
	{Field: FieldDomesticLoungeQuarterly, Label: "Domestic lounge visits per quarter", Group: GroupTravel, Min: 0, Max: 50, Step: 1, Optional: true},
	{Field: FieldIntlLoungeQuarterly, Label: "International lounge visits per quarter", Group: GroupTravel, Min: 0, Max: 50, Step: 1, Optional: true},
	{Field: FieldMobilePhoneBills, Label: "Mobile bills per month", Group: GroupBills, Min: 0, Max: 50000, Step: 100},
	{Field: FieldElectricityBills, Label: "Electricity bills per month", Group: GroupBills, Min: 0, Max: 100000, Step: 500},
	{Field: FieldWaterBills, Label: "Water bills per month", Group: GroupBills, Min: 0, Max: 50000, Step: 100},
	{Field: FieldInsuranceHealthAnnual, Label: "Health insurance per year", Group: GroupHousehold, Min: 0, Max: 500000, Step: 1000},
	{Field: FieldInsuranceCarOrBikeAnnual, Label: "Vehicle insurance per year", Group: GroupHousehold, Min: 0, Max: 500000, Step: 1000},
	{Field: FieldRent, Label: "Rent per month", Group: GroupHousehold, Min: 0, Max: 500000, Step: 1000},
}

// Questions returns the full question catalog in wizard order.
func Questions() []Question {
	out := make([]Question, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a question by field name.
func Lookup(field string) (Question, bool) {
	for _, q := range catalog {
		if q.Field == field {
			return q, true
		}
	}
	return Question{}, false
}
