// Package server exposes the recommendation pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"cardwise/internal/catalog"
	"cardwise/internal/enrich"
	"cardwise/pkg/api"
	"cardwise/pkg/platform"
)

var (
	version   = "0.1.0"
	startTime = time.Now()
)

// Calculator is the recommendation client surface the server needs.
type Calculator interface {
	Calculate(ctx context.Context, profile api.SpendProfile) ([]api.RawSaving, error)
}

// EligibilityChecker is the eligibility client surface.
type EligibilityChecker interface {
	Check(ctx context.Context, req api.EligibilityRequest) (map[string]bool, error)
}

// Server wires the engines behind the HTTP API.
type Server struct {
	Calculator  Calculator
	Engine      *enrich.Engine
	Eligibility EligibilityChecker
	Catalog     catalog.Store
}

// New builds a server from its collaborators.
func New(calc Calculator, engine *enrich.Engine, elig EligibilityChecker, store catalog.Store) *Server {
	return &Server{
		Calculator:  calc,
		Engine:      engine,
		Eligibility: elig,
		Catalog:     store,
	}
}

// Router assembles the chi router with the standard middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health endpoints (for ALB/NLB)
	r.Get("/health", s.handleHealth)
	r.Get("/health/live", handleLiveness)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/version", handleVersion)

	limiter := NewRateLimiter(platform.GetEnvInt("RATE_LIMIT_PER_MINUTE", 30), time.Minute)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(platform.APIKeyMiddleware)
		r.With(limiter.Middleware).Post("/recommend", s.handleRecommend)
		r.Post("/eligibility", s.handleEligibility)
		r.Get("/cards", s.handleListCards)
	})

	return r
}

// ListenAndServe runs the server on the given port.
func (s *Server) ListenAndServe(port string) error {
	log.Info().
		Str("port", port).
		Str("version", version).
		Msg("Starting cardwise API server")
	return http.ListenAndServe(":"+port, s.Router())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "healthy",
		"service": "cardwise-api",
		"version": version,
		"uptime":  time.Since(startTime).String(),
	})
}

func handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.Catalog != nil {
		if err := s.Catalog.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "not ready",
				"reason": "catalog store unreachable",
			})
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"version": version,
		"service": "cardwise-api",
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, msg string, retryable bool) {
	respondJSON(w, status, api.ErrorResponse{
		Error:     msg,
		Code:      code,
		Retryable: retryable,
	})
}
