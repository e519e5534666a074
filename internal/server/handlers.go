package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"cardwise/internal/listing"
	"cardwise/pkg/api"
	cwerrors "cardwise/pkg/errors"
)

// handleRecommend runs the full pipeline: calculate raw savings, enrich
// and rank, then apply the caller's top-N policy. An upstream
// calculation failure is the only batch-fatal path and maps to 502 with
// a retryable error payload.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req api.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, cwerrors.ErrCodeInvalidInput, "invalid request body", false)
		return
	}
	if top := r.URL.Query().Get("top"); top != "" {
		if n, err := strconv.Atoi(top); err == nil {
			req.Top = n
		}
	}

	savings, err := s.Calculator.Calculate(r.Context(), req.Spend)
	if err != nil {
		log.Error().Err(err).Msg("savings calculation failed")
		respondError(w, http.StatusBadGateway, cwerrors.ErrCodeCalcFailed,
			"calculation failed, please retry", true)
		return
	}

	result := s.Engine.Enrich(r.Context(), req.Spend, savings)

	cards := result.Cards
	if req.Top > 0 {
		cards = result.TopPositive(req.Top)
	}

	respondJSON(w, http.StatusOK, api.RecommendResponse{
		Cards:     cards,
		NoMatches: len(cards) == 0,
		Warnings:  result.Warnings,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// handleEligibility validates locally first; no network round-trip is
// wasted on bad input.
func (s *Server) handleEligibility(w http.ResponseWriter, r *http.Request) {
	var req api.EligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, cwerrors.ErrCodeInvalidInput, "invalid request body", false)
		return
	}

	eligible, err := s.Eligibility.Check(r.Context(), req)
	if err != nil {
		var cerr *cwerrors.CardError
		if errors.As(err, &cerr) && cerr.Code == cwerrors.ErrCodeInvalidInput {
			respondError(w, http.StatusBadRequest, cerr.Code, cerr.Message, false)
			return
		}
		log.Error().Err(err).Msg("eligibility check failed")
		respondError(w, http.StatusBadGateway, cwerrors.ErrCodeCalcFailed,
			"eligibility check failed, please retry", true)
		return
	}

	entries := make([]api.EligibilityEntry, 0, len(eligible))
	for alias := range eligible {
		entries = append(entries, api.EligibilityEntry{SeoCardAlias: alias, Eligible: true})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].SeoCardAlias < entries[j].SeoCardAlias })

	respondJSON(w, http.StatusOK, api.EligibilityResponse{Status: true, Data: entries})
}

// handleListCards serves the browse page from the catalog store with
// query-param filters. Filter state lives in the URL so filtered views
// stay shareable.
func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.Catalog.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("catalog list failed")
		respondError(w, http.StatusServiceUnavailable, cwerrors.ErrCodeCatalogUnavailable,
			"card catalog unavailable, please retry", true)
		return
	}

	f := filterFromQuery(r)
	filtered := f.Apply(cards)
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].SeoCardAlias < filtered[j].SeoCardAlias
	})

	respondJSON(w, http.StatusOK, api.CardListResponse{
		Cards: filtered,
		Total: len(filtered),
	})
}

func filterFromQuery(r *http.Request) listing.Filter {
	q := r.URL.Query()
	f := listing.Filter{
		Bank:    q.Get("bank"),
		Network: q.Get("network"),
		Query:   q.Get("q"),
	}
	if v := q.Get("fee_min"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.FeeMin = &n
		}
	}
	if v := q.Get("fee_max"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.FeeMax = &n
		}
	}
	if aliases := q.Get("eligible"); aliases != "" {
		set := make(map[string]bool)
		for _, a := range strings.Split(aliases, ",") {
			if a = strings.TrimSpace(strings.ToLower(a)); a != "" {
				set[a] = true
			}
		}
		f.Eligible = set
	}
	return f
}
