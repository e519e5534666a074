package recommend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardwise/pkg/api"
	cwerrors "cardwise/pkg/errors"
)

func TestExtractSavingsShapeTolerance(t *testing.T) {
	// The same two cards nested under each accepted shape must extract
	// identically.
	shapes := map[string]string{
		"data.savings": `{"data": {"savings": [{"card_alias": "a"}, {"card_alias": "b"}]}}`,
		"data array":   `{"data": [{"card_alias": "a"}, {"card_alias": "b"}]}`,
		"data.cards":   `{"data": {"cards": [{"card_alias": "a"}, {"card_alias": "b"}]}}`,
		"bare array":   `[{"card_alias": "a"}, {"card_alias": "b"}]`,
	}

	for name, payload := range shapes {
		t.Run(name, func(t *testing.T) {
			savings := ExtractSavings([]byte(payload))
			require.Len(t, savings, 2)
			assert.Equal(t, "a", savings[0].CardAlias)
			assert.Equal(t, "b", savings[1].CardAlias)
		})
	}
}

func TestExtractSavingsUnknownShape(t *testing.T) {
	cases := []string{
		`{"data": {"unexpected": true}}`,
		`{"something": "else"}`,
		`"just a string"`,
		`{}`,
		``,
	}
	for _, payload := range cases {
		savings := ExtractSavings([]byte(payload))
		assert.NotNil(t, savings)
		assert.Empty(t, savings)
	}
}

func TestExtractSavingsPriorityOrder(t *testing.T) {
	// When both savings and cards are present, savings wins.
	payload := `{"data": {"savings": [{"card_alias": "s"}], "cards": [{"card_alias": "c"}]}}`
	savings := ExtractSavings([]byte(payload))
	require.Len(t, savings, 1)
	assert.Equal(t, "s", savings[0].CardAlias)
}

func TestCalculateLooseNumericFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"data": {"savings": [
			{"card_alias": "x", "total_savings_yearly": "₹2,000", "joining_fees": null},
			{"card_alias": "y", "total_savings_yearly": 1200}
		]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	savings, err := client.Calculate(context.Background(), api.SpendProfile{AmazonSpends: 5000})
	require.NoError(t, err)
	require.Len(t, savings, 2)
	assert.Equal(t, "₹2,000", savings[0].TotalSavingsYearly)
	assert.Nil(t, savings[0].JoiningFees)
}

func TestCalculateEmptyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"savings": []}}`))
	}))
	defer srv.Close()

	savings, err := NewClient(srv.URL).Calculate(context.Background(), api.SpendProfile{})
	require.NoError(t, err)
	assert.Empty(t, savings)
}

func TestCalculateUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Calculate(context.Background(), api.SpendProfile{})
	require.Error(t, err)

	cerr, ok := err.(*cwerrors.CardError)
	require.True(t, ok)
	assert.Equal(t, cwerrors.ErrCodeCalcFailed, cerr.Code)
}
