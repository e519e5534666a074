package spend

import (
	"fmt"

	"cardwise/pkg/api"
)

// Collector accumulates answers for the questionnaire. Out-of-range
// values are silently clamped to the question's bounds, never rejected;
// only unknown fields are an error.
type Collector struct {
	values map[string]int64
}

func NewCollector() *Collector {
	return &Collector{values: make(map[string]int64)}
}

// Set records a value for a question field, clamped to [Min, Max].
func (c *Collector) Set(field string, value int64) error {
	q, ok := Lookup(field)
	if !ok {
		return fmt.Errorf("unknown spend field: %s", field)
	}
	if value < q.Min {
		value = q.Min
	}
	if value > q.Max {
		value = q.Max
	}
	c.values[field] = value
	return nil
}

// Get returns the current value for a field (0 if unanswered).
func (c *Collector) Get(field string) int64 {
	return c.values[field]
}

// Complete reports whether a group is answerable: at least one required
// question in the group has a value above zero. Optional questions never
// block completion.
func (c *Collector) Complete(group Group) bool {
	for _, q := range catalog {
		if q.Group != group || q.Optional {
			continue
		}
		if c.values[q.Field] > 0 {
			return true
		}
	}
	return false
}

// Profile freezes the collected answers into a full SpendProfile. Every
// field is present; unanswered ones default to 0.
func (c *Collector) Profile() api.SpendProfile {
	return api.SpendProfile{
		AmazonSpends:             c.values[FieldAmazonSpends],
		FlipkartSpends:           c.values[FieldFlipkartSpends],
		OtherOnlineSpends:        c.values[FieldOtherOnlineSpends],
		OtherOfflineSpends:       c.values[FieldOtherOfflineSpends],
		GrocerySpendsOnline:      c.values[FieldGrocerySpendsOnline],
		OnlineFoodOrdering:       c.values[FieldOnlineFoodOrdering],
		Fuel:                     c.values[FieldFuel],
		DiningOrGoingOut:         c.values[FieldDiningOrGoingOut],
		FlightsAnnual:            c.values[FieldFlightsAnnual],
		HotelsAnnual:             c.values[FieldHotelsAnnual],
		DomesticLoungeQuarterly:  c.values[FieldDomesticLoungeQuarterly],
		IntlLoungeQuarterly:      c.values[FieldIntlLoungeQuarterly],
		MobilePhoneBills:         c.values[FieldMobilePhoneBills],
		ElectricityBills:         c.values[FieldElectricityBills],
		WaterBills:               c.values[FieldWaterBills],
		InsuranceHealthAnnual:    c.values[FieldInsuranceHealthAnnual],
		InsuranceCarOrBikeAnnual: c.values[FieldInsuranceCarOrBikeAnnual],
		Rent:                     c.values[FieldRent],
	}
}

// Reset clears all collected answers.
func (c *Collector) Reset() {
	c.values = make(map[string]int64)
}
