package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardwise/internal/catalog"
	"cardwise/internal/enrich"
	"cardwise/pkg/api"
	cwerrors "cardwise/pkg/errors"
)

type fakeCalculator struct {
	savings []api.RawSaving
	err     error
}

func (f fakeCalculator) Calculate(_ context.Context, _ api.SpendProfile) ([]api.RawSaving, error) {
	return f.savings, f.err
}

type fakeEligibility struct {
	eligible map[string]bool
	err      error
}

func (f fakeEligibility) Check(_ context.Context, req api.EligibilityRequest) (map[string]bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.eligible, nil
}

func newTestServer(calc Calculator, elig EligibilityChecker) *Server {
	return New(calc, enrich.NewEngine(nil), elig, catalog.NewSeededStore())
}

func TestRecommendReturnsRankedCards(t *testing.T) {
	srv := newTestServer(fakeCalculator{savings: []api.RawSaving{
		{CardAlias: "low", CardName: "Low", TotalSavingsYearly: 500},
		{CardAlias: "high", CardName: "High", TotalSavingsYearly: 5000},
	}}, fakeEligibility{})

	body, _ := json.Marshal(api.RecommendRequest{Spend: api.SpendProfile{AmazonSpends: 5000}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RecommendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cards, 2)
	assert.Equal(t, "High", resp.Cards[0].CardName)
	assert.False(t, resp.NoMatches)
}

func TestRecommendEmptyIsNotAnError(t *testing.T) {
	srv := newTestServer(fakeCalculator{savings: []api.RawSaving{}}, fakeEligibility{})

	body, _ := json.Marshal(api.RecommendRequest{Spend: api.SpendProfile{}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RecommendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Cards)
	assert.True(t, resp.NoMatches)
}

func TestRecommendUpstreamFailureIsRetryable(t *testing.T) {
	srv := newTestServer(fakeCalculator{err: cwerrors.NewCalcFailed(assert.AnError)}, fakeEligibility{})

	body, _ := json.Marshal(api.RecommendRequest{Spend: api.SpendProfile{}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Retryable)
	assert.Equal(t, cwerrors.ErrCodeCalcFailed, resp.Code)
}

func TestRecommendTopQuery(t *testing.T) {
	srv := newTestServer(fakeCalculator{savings: []api.RawSaving{
		{CardAlias: "a", CardName: "A", TotalSavingsYearly: 3000},
		{CardAlias: "b", CardName: "B", TotalSavingsYearly: 2000},
		{CardAlias: "c", CardName: "C", TotalSavingsYearly: 1000},
		{CardAlias: "d", CardName: "D", TotalSavingsYearly: 500},
	}}, fakeEligibility{})

	body, _ := json.Marshal(api.RecommendRequest{Spend: api.SpendProfile{}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend?top=3", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp api.RecommendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Cards, 3)
}

func TestRecommendBadBody(t *testing.T) {
	srv := newTestServer(fakeCalculator{}, fakeEligibility{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewReader([]byte(`{invalid`)))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEligibilityValidationError(t *testing.T) {
	srv := newTestServer(fakeCalculator{}, fakeEligibility{
		err: cwerrors.NewInvalidInput("pincode", "must be exactly 6 digits"),
	})

	body, _ := json.Marshal(api.EligibilityRequest{Pincode: "12"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/eligibility", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEligibilityReturnsSortedEntries(t *testing.T) {
	srv := newTestServer(fakeCalculator{}, fakeEligibility{
		eligible: map[string]bool{"zeta-card": true, "alpha-card": true},
	})

	body, _ := json.Marshal(api.EligibilityRequest{
		Pincode: "560001", InhandIncome: "50000", EmpStatus: "salaried",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/eligibility", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp api.EligibilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "alpha-card", resp.Data[0].SeoCardAlias)
}

func TestListCardsWithFilters(t *testing.T) {
	srv := newTestServer(fakeCalculator{}, fakeEligibility{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards?network=visa&fee_max=1500", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp api.CardListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Cards), resp.Total)
	for _, c := range resp.Cards {
		assert.Equal(t, "visa", c.Network)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(fakeCalculator{}, fakeEligibility{})
	router := srv.Router()

	for _, path := range []string{"/health", "/health/live", "/health/ready", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	// A different client has its own bucket.
	assert.True(t, rl.Allow("5.6.7.8"))
}
