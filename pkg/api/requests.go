package api

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	Spend SpendProfile `json:"spend"`
	// Top limits the response to the N best positive-savings cards.
	// 0 means no limit (full results table).
	Top int `json:"top,omitempty"`
}

// RecommendResponse carries the ranked enrichment output.
type RecommendResponse struct {
	Cards     []EnrichedCard `json:"cards"`
	NoMatches bool           `json:"no_matches"`
	Warnings  []string       `json:"warnings,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// EligibilityRequest is the body of POST /api/v1/eligibility.
// InhandIncome is `any` because callers send both strings and numbers.
type EligibilityRequest struct {
	Pincode      string `json:"pincode"`
	InhandIncome any    `json:"inhandIncome"`
	EmpStatus    string `json:"empStatus"`
}

// EligibilityEntry is one per-card verdict from the eligibility API.
type EligibilityEntry struct {
	SeoCardAlias string `json:"seo_card_alias"`
	Eligible     bool   `json:"eligible"`
}

// EligibilityResponse mirrors the upstream eligibility payload.
type EligibilityResponse struct {
	Status bool               `json:"status"`
	Data   []EligibilityEntry `json:"data"`
}

// CardListResponse is the filtered listing payload.
type CardListResponse struct {
	Cards []CardDetail `json:"cards"`
	Total int          `json:"total"`
}

// ErrorResponse is the uniform error payload. Retryable tells the client
// whether repeating the request may succeed.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}
