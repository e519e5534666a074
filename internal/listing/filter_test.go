package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardwise/pkg/api"
)

func fixtureCards() []api.CardDetail {
	return []api.CardDetail{
		{SeoCardAlias: "hdfc-millennia", Name: "HDFC Millennia", BankName: "HDFC Bank", Network: "visa", AnnualFees: 1000},
		{SeoCardAlias: "axis-atlas", Name: "Axis Atlas", BankName: "Axis Bank", Network: "visa", AnnualFees: 5000},
		{SeoCardAlias: "sbi-cashback", Name: "SBI Cashback", BankName: "SBI Card", Network: "mastercard", AnnualFees: "₹999"},
		{SeoCardAlias: "icici-amazon-pay", Name: "Amazon Pay ICICI", BankName: "ICICI Bank", Network: "visa", AnnualFees: 0},
	}
}

func TestFilterByBank(t *testing.T) {
	f := Filter{Bank: "hdfc bank"}
	out := f.Apply(fixtureCards())
	require.Len(t, out, 1)
	assert.Equal(t, "hdfc-millennia", out[0].SeoCardAlias)
}

func TestFilterByFeeRange(t *testing.T) {
	min, max := int64(500), int64(1500)
	f := Filter{FeeMin: &min, FeeMax: &max}
	out := f.Apply(fixtureCards())
	require.Len(t, out, 2)
	// Currency-string fees participate in range checks too.
	aliases := []string{out[0].SeoCardAlias, out[1].SeoCardAlias}
	assert.Contains(t, aliases, "hdfc-millennia")
	assert.Contains(t, aliases, "sbi-cashback")
}

func TestFilterBySearchText(t *testing.T) {
	f := Filter{Query: "amazon"}
	out := f.Apply(fixtureCards())
	require.Len(t, out, 1)
	assert.Equal(t, "icici-amazon-pay", out[0].SeoCardAlias)
}

func TestFilterByEligibility(t *testing.T) {
	f := Filter{Eligible: map[string]bool{"axis-atlas": true, "sbi-cashback": true}}
	out := f.Apply(fixtureCards())
	assert.Len(t, out, 2)
}

func TestFilterIntersectionOrderInsensitive(t *testing.T) {
	max := int64(5000)
	eligible := map[string]bool{"axis-atlas": true, "hdfc-millennia": true, "sbi-cashback": true}

	combined := Filter{Network: "visa", FeeMax: &max, Eligible: eligible}
	out := combined.Apply(fixtureCards())

	// Apply the same predicates one at a time in a different order.
	step1 := Filter{Eligible: eligible}.Apply(fixtureCards())
	step2 := Filter{FeeMax: &max}.Apply(step1)
	step3 := Filter{Network: "visa"}.Apply(step2)

	require.Equal(t, len(step3), len(out))
	for i := range out {
		assert.Equal(t, step3[i].SeoCardAlias, out[i].SeoCardAlias)
	}
}

func TestValidateEligibility(t *testing.T) {
	valid := api.EligibilityRequest{Pincode: "560001", InhandIncome: "50000", EmpStatus: "salaried"}
	assert.Nil(t, ValidateEligibility(valid))

	cases := []api.EligibilityRequest{
		{Pincode: "5600", InhandIncome: "50000", EmpStatus: "salaried"},
		{Pincode: "56000a", InhandIncome: "50000", EmpStatus: "salaried"},
		{Pincode: "560001", InhandIncome: "0", EmpStatus: "salaried"},
		{Pincode: "560001", InhandIncome: nil, EmpStatus: "salaried"},
		{Pincode: "560001", InhandIncome: "50000", EmpStatus: "student"},
	}
	for _, req := range cases {
		assert.NotNil(t, ValidateEligibility(req))
	}
}

func TestNormalizeEmpStatus(t *testing.T) {
	assert.Equal(t, EmpSalaried, NormalizeEmpStatus("Salaried"))
	assert.Equal(t, EmpSelfEmployed, NormalizeEmpStatus("self_employed"))
	assert.Equal(t, EmpSelfEmployed, NormalizeEmpStatus("self-employed"))
	assert.Equal(t, "", NormalizeEmpStatus("retired"))
}

func TestEligibilityCheckKeepsOnlyEligible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": true, "data": [
			{"seo_card_alias": "HDFC-Millennia", "eligible": true},
			{"seo_card_alias": "axis-atlas", "eligible": false},
			{"seo_card_alias": "sbi-cashback", "eligible": true}
		]}`))
	}))
	defer srv.Close()

	client := NewEligibilityClient(srv.URL)
	eligible, err := client.Check(context.Background(), api.EligibilityRequest{
		Pincode: "560001", InhandIncome: 50000, EmpStatus: "self-employed",
	})
	require.NoError(t, err)

	assert.True(t, eligible["hdfc-millennia"])
	assert.True(t, eligible["sbi-cashback"])
	assert.False(t, eligible["axis-atlas"])
	assert.Len(t, eligible, 2)
}

func TestEligibilityCheckRejectsBadInputLocally(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := NewEligibilityClient(srv.URL)
	_, err := client.Check(context.Background(), api.EligibilityRequest{Pincode: "nope"})
	require.Error(t, err)
	assert.Zero(t, calls, "invalid input must not reach the network")
}
