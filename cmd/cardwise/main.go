// cardwise CLI - credit card savings intelligence.
//
// Usage:
//   cardwise serve
//   cardwise recommend --spend spend.json [--top 3]
//   cardwise catalog ingest --file cards.json
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"cardwise/internal/catalog"
	"cardwise/internal/enrich"
	"cardwise/internal/listing"
	"cardwise/internal/recommend"
	"cardwise/internal/server"
	"cardwise/pkg/api"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "cardwise",
		Usage:   "Credit card savings intelligence - compare, rank, and apply",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"CARDWISE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "recommend-api-url",
				Usage:   "Base URL of the savings calculation API",
				EnvVars: []string{"RECOMMEND_API_URL"},
			},
			&cli.StringFlag{
				Name:    "detail-api-url",
				Usage:   "Base URL of the card detail API (defaults to the recommend API)",
				EnvVars: []string{"CARD_DETAIL_API_URL"},
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis address for the detail cache",
				EnvVars: []string{"REDIS_ADDR"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-host",
				Usage:   "ClickHouse host for the card catalog",
				EnvVars: []string{"CLICKHOUSE_HOST"},
			},
			&cli.IntFlag{
				Name:    "clickhouse-port",
				Value:   9000,
				Usage:   "ClickHouse native port",
				EnvVars: []string{"CLICKHOUSE_PORT"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-database",
				Value:   "cardwise",
				Usage:   "ClickHouse database",
				EnvVars: []string{"CLICKHOUSE_DATABASE"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-user",
				Value:   "default",
				Usage:   "ClickHouse user",
				EnvVars: []string{"CLICKHOUSE_USER"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-password",
				Value:   "",
				Usage:   "ClickHouse password",
				EnvVars: []string{"CLICKHOUSE_PASSWORD"},
			},
		},

		Before: func(c *cli.Context) error {
			configureLogging(c.String("log-level"))
			return nil
		},

		Commands: []*cli.Command{
			serveCommand(),
			recommendCommand(),
			catalogCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func configureLogging(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Value:   "8080",
				EnvVars: []string{"PORT"},
			},
		},
		Action: func(c *cli.Context) error {
			recommendURL := c.String("recommend-api-url")
			if recommendURL == "" {
				return fmt.Errorf("--recommend-api-url is required")
			}
			detailURL := c.String("detail-api-url")
			if detailURL == "" {
				detailURL = recommendURL
			}

			var cache catalog.Cache
			if addr := c.String("redis-addr"); addr != "" {
				cache = catalog.NewRedisCache(addr)
			} else {
				cache = catalog.NewMemoryCache()
			}

			store, err := openStore(c)
			if err != nil {
				return err
			}

			engine := enrich.NewEngine(catalog.NewClient(detailURL, cache))
			srv := server.New(
				recommend.NewClient(recommendURL),
				engine,
				listing.NewEligibilityClient(recommendURL),
				store,
			)
			return srv.ListenAndServe(c.String("port"))
		},
	}
}

func recommendCommand() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Rank cards for a spend profile",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "spend",
				Usage:    "Path to a spend profile JSON file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "savings",
				Usage: "Path to a saved raw savings response (offline mode, skips the API call)",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Keep only the N best positive-savings cards (0 = all)",
			},
		},
		Action: func(c *cli.Context) error {
			data, err := os.ReadFile(c.String("spend"))
			if err != nil {
				return fmt.Errorf("failed to read spend profile: %w", err)
			}
			var profile api.SpendProfile
			if err := json.Unmarshal(data, &profile); err != nil {
				return fmt.Errorf("invalid spend profile: %w", err)
			}

			var savings []api.RawSaving
			if path := c.String("savings"); path != "" {
				payload, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read savings file: %w", err)
				}
				savings = recommend.ExtractSavings(payload)
			} else {
				url := c.String("recommend-api-url")
				if url == "" {
					return fmt.Errorf("--recommend-api-url or --savings is required")
				}
				savings, err = recommend.NewClient(url).Calculate(c.Context, profile)
				if err != nil {
					return err
				}
			}

			store, err := openStore(c)
			if err != nil {
				return err
			}

			engine := enrich.NewEngine(catalog.StoreSource{Store: store})
			result := engine.Enrich(c.Context, profile, savings)

			cards := result.Cards
			if n := c.Int("top"); n > 0 {
				cards = result.TopPositive(n)
			}
			if len(cards) == 0 {
				fmt.Fprintln(os.Stderr, "no matching cards, adjust your inputs")
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cards)
		},
	}
}

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Card catalog operations",
		Subcommands: []*cli.Command{
			{
				Name:  "ingest",
				Usage: "Load card records into the catalog store",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to a card records JSON file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					data, err := os.ReadFile(c.String("file"))
					if err != nil {
						return fmt.Errorf("failed to read card file: %w", err)
					}
					var cards []api.CardDetail
					if err := json.Unmarshal(data, &cards); err != nil {
						return fmt.Errorf("invalid card records: %w", err)
					}

					store, err := openStore(c)
					if err != nil {
						return err
					}
					if err := store.Ingest(c.Context, cards); err != nil {
						return err
					}
					log.Info().Int("cards", len(cards)).Msg("catalog ingest complete")
					return nil
				},
			},
		},
	}
}

// openStore returns the ClickHouse catalog when configured, otherwise
// the seeded in-memory store.
func openStore(c *cli.Context) (catalog.Store, error) {
	host := c.String("clickhouse-host")
	if host == "" {
		return catalog.NewSeededStore(), nil
	}
	cfg := &catalog.ClickHouseConfig{
		Host:     host,
		Port:     c.Int("clickhouse-port"),
		Database: c.String("clickhouse-database"),
		Username: c.String("clickhouse-user"),
		Password: c.String("clickhouse-password"),
	}
	return catalog.NewClickHouseStore(cfg)
}
