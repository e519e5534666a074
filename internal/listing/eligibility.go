package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"cardwise/pkg/api"
	cwerrors "cardwise/pkg/errors"
	"cardwise/pkg/money"
	"cardwise/pkg/platform"
)

// Employment statuses the eligibility API accepts. The hyphenated form
// appears in older clients and normalizes to the underscore form.
const (
	EmpSalaried     = "salaried"
	EmpSelfEmployed = "self_employed"
)

// ValidateEligibility rejects bad input before any network round-trip.
func ValidateEligibility(req api.EligibilityRequest) *cwerrors.CardError {
	if len(req.Pincode) != 6 {
		return cwerrors.NewInvalidInput("pincode", "must be exactly 6 digits")
	}
	for _, r := range req.Pincode {
		if r < '0' || r > '9' {
			return cwerrors.NewInvalidInput("pincode", "must be exactly 6 digits")
		}
	}
	if income := money.Parse(req.InhandIncome, -1); income <= 0 {
		return cwerrors.NewInvalidInput("inhandIncome", "must be a positive amount")
	}
	if NormalizeEmpStatus(req.EmpStatus) == "" {
		return cwerrors.NewInvalidInput("empStatus", "must be salaried or self_employed")
	}
	return nil
}

// NormalizeEmpStatus maps accepted spellings onto the canonical form,
// returning "" for anything unrecognized.
func NormalizeEmpStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case EmpSalaried:
		return EmpSalaried
	case EmpSelfEmployed, "self-employed":
		return EmpSelfEmployed
	default:
		return ""
	}
}

// EligibilityClient calls the external eligibility API.
type EligibilityClient struct {
	BaseURL string
	HTTP    *platform.HTTPClient
}

func NewEligibilityClient(baseURL string) *EligibilityClient {
	return &EligibilityClient{
		BaseURL: baseURL,
		HTTP:    platform.NewHTTPClient(2, 15*time.Second),
	}
}

// Check validates the request, calls the upstream, and returns the set
// of eligible aliases (lower-cased). Only eligible == true entries are
// kept.
func (c *EligibilityClient) Check(ctx context.Context, req api.EligibilityRequest) (map[string]bool, error) {
	if verr := ValidateEligibility(req); verr != nil {
		return nil, verr
	}
	req.EmpStatus = NormalizeEmpStatus(req.EmpStatus)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.PostJSON(ctx, c.BaseURL+"/cards/eligibility", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("eligibility check: upstream status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out api.EligibilityResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("eligibility check: malformed response: %w", err)
	}

	eligible := make(map[string]bool)
	for _, entry := range out.Data {
		if entry.Eligible && entry.SeoCardAlias != "" {
			eligible[strings.ToLower(entry.SeoCardAlias)] = true
		}
	}
	return eligible, nil
}
