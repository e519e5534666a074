// Package main provides the cardwise API server.
// This is the main production server exposing the recommendation,
// eligibility, and listing endpoints.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cardwise/internal/catalog"
	"cardwise/internal/enrich"
	"cardwise/internal/listing"
	"cardwise/internal/recommend"
	"cardwise/internal/server"
	"cardwise/pkg/platform"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	port := platform.GetEnv("PORT", "8080")
	recommendURL := platform.GetEnv("RECOMMEND_API_URL", "")
	detailURL := platform.GetEnv("CARD_DETAIL_API_URL", recommendURL)
	eligibilityURL := platform.GetEnv("ELIGIBILITY_API_URL", recommendURL)
	redisAddr := platform.GetEnv("REDIS_ADDR", "")

	if recommendURL == "" {
		log.Fatal().Msg("RECOMMEND_API_URL is required")
	}

	var cache catalog.Cache
	if redisAddr != "" {
		cache = catalog.NewRedisCache(redisAddr)
	} else {
		cache = catalog.NewMemoryCache()
	}

	store := buildStore()
	details := catalog.NewClient(detailURL, cache)
	engine := enrich.NewEngine(details)
	engine.Concurrency = platform.GetEnvInt("DETAIL_FANOUT_LIMIT", enrich.DefaultConcurrency)

	srv := server.New(
		recommend.NewClient(recommendURL),
		engine,
		listing.NewEligibilityClient(eligibilityURL),
		store,
	)

	if err := srv.ListenAndServe(port); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// buildStore prefers ClickHouse when configured and falls back to the
// seeded in-memory catalog for local development.
func buildStore() catalog.Store {
	host := platform.GetEnv("CLICKHOUSE_HOST", "")
	if host == "" {
		log.Warn().Msg("CLICKHOUSE_HOST not set, using in-memory catalog")
		return catalog.NewSeededStore()
	}

	cfg := catalog.DefaultClickHouseConfig()
	cfg.Host = host
	cfg.Port = platform.GetEnvInt("CLICKHOUSE_PORT", cfg.Port)
	cfg.Database = platform.GetEnv("CLICKHOUSE_DATABASE", cfg.Database)
	cfg.Username = platform.GetEnv("CLICKHOUSE_USER", cfg.Username)
	cfg.Password = platform.GetEnv("CLICKHOUSE_PASSWORD", cfg.Password)

	store, err := catalog.NewClickHouseStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalog store")
	}
	return store
}
