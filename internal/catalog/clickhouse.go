package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"

	"cardwise/pkg/api"
	"cardwise/pkg/money"
)

// CardRow is the append-only catalog row. Every ingest writes a fresh
// snapshot batch; lookups read the latest row per alias, which gives
// the catalog time-travel semantics for free.
type CardRow struct {
	SnapshotID uuid.UUID `ch:"snapshot_id"`
	Alias      string    `ch:"alias"`
	Name       string    `ch:"name"`
	BankName   string    `ch:"bank_name"`
	CardType   string    `ch:"card_type"`
	Network    string    `ch:"network"`
	NetworkURL string    `ch:"network_url"`
	Image      string    `ch:"image"`

	JoiningFees int64 `ch:"joining_fees"`
	AnnualFees  int64 `ch:"annual_fees"`

	DomesticLounges      int64 `ch:"domestic_lounges_unlocked"`
	InternationalLounges int64 `ch:"international_lounges_unlocked"`

	FetchedAt time.Time `ch:"fetched_at"`
}

// ClickHouseConfig holds connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Debug    bool
}

// DefaultClickHouseConfig returns development defaults.
func DefaultClickHouseConfig() *ClickHouseConfig {
	return &ClickHouseConfig{
		Host:     "localhost",
		Port:     9000,
		Database: "cardwise",
		Username: "default",
		Password: "",
	}
}

// ClickHouseStore implements Store on ClickHouse.
type ClickHouseStore struct {
	conn clickhouse.Conn
	cfg  *ClickHouseConfig
}

// NewClickHouseStore opens a connection to the catalog database.
func NewClickHouseStore(cfg *ClickHouseConfig) (*ClickHouseStore, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug: cfg.Debug,
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}
	return &ClickHouseStore{conn: conn, cfg: cfg}, nil
}

func (s *ClickHouseStore) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

func (s *ClickHouseStore) Close() error {
	return s.conn.Close()
}

// Ingest writes one snapshot batch covering the given cards.
func (s *ClickHouseStore) Ingest(ctx context.Context, cards []api.CardDetail) error {
	if len(cards) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO card_catalog (
			snapshot_id, alias, name, bank_name, card_type, network,
			network_url, image, joining_fees, annual_fees,
			domestic_lounges_unlocked, international_lounges_unlocked, fetched_at
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare catalog batch: %w", err)
	}

	snapshotID := uuid.New()
	now := time.Now()
	for _, c := range cards {
		if c.SeoCardAlias == "" {
			continue
		}
		row := rowFromDetail(snapshotID, c, now)
		if err := batch.Append(
			row.SnapshotID, row.Alias, row.Name, row.BankName, row.CardType,
			row.Network, row.NetworkURL, row.Image, row.JoiningFees, row.AnnualFees,
			row.DomesticLounges, row.InternationalLounges, row.FetchedAt,
		); err != nil {
			return fmt.Errorf("failed to append catalog row: %w", err)
		}
	}
	return batch.Send()
}

// Lookup returns the latest catalog record for an alias. The second
// return is false on a clean miss.
func (s *ClickHouseStore) Lookup(ctx context.Context, alias string) (*api.CardDetail, bool, error) {
	query := `
		SELECT alias, name, bank_name, card_type, network, network_url, image,
			   joining_fees, annual_fees,
			   domestic_lounges_unlocked, international_lounges_unlocked
		FROM card_catalog
		WHERE alias = ?
		ORDER BY fetched_at DESC
		LIMIT 1
	`
	rows, err := s.conn.Query(ctx, query, alias)
	if err != nil {
		return nil, false, fmt.Errorf("catalog lookup failed: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, false, nil
	}
	detail, err := scanDetail(rows)
	if err != nil {
		return nil, false, err
	}
	return detail, true, nil
}

// List returns the latest record per alias.
func (s *ClickHouseStore) List(ctx context.Context) ([]api.CardDetail, error) {
	query := `
		SELECT alias, name, bank_name, card_type, network, network_url, image,
			   joining_fees, annual_fees,
			   domestic_lounges_unlocked, international_lounges_unlocked
		FROM card_catalog
		ORDER BY alias ASC, fetched_at DESC
		LIMIT 1 BY alias
	`
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog list failed: %w", err)
	}
	defer rows.Close()

	var out []api.CardDetail
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *detail)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDetail(row rowScanner) (*api.CardDetail, error) {
	var (
		alias, name, bank, cardType, network, networkURL, image string
		joining, annual, domLounges, intlLounges                int64
	)
	if err := row.Scan(
		&alias, &name, &bank, &cardType, &network, &networkURL, &image,
		&joining, &annual, &domLounges, &intlLounges,
	); err != nil {
		return nil, fmt.Errorf("failed to scan catalog row: %w", err)
	}
	return &api.CardDetail{
		SeoCardAlias: alias,
		Name:         name,
		BankName:     bank,
		CardType:     cardType,
		Network:      network,
		NetworkURL:   networkURL,
		Image:        image,
		JoiningFees:  joining,
		AnnualFees:   annual,
		TravelBenefits: &api.TravelBenefits{
			DomesticLoungesUnlocked:      domLounges,
			InternationalLoungesUnlocked: intlLounges,
		},
	}, nil
}

func rowFromDetail(snapshotID uuid.UUID, c api.CardDetail, fetchedAt time.Time) CardRow {
	row := CardRow{
		SnapshotID: snapshotID,
		Alias:      c.SeoCardAlias,
		Name:       c.DisplayName(),
		BankName:   c.BankName,
		CardType:   c.CardType,
		Network:    c.Network,
		NetworkURL: c.NetworkURL,
		Image:      c.Image,
		FetchedAt:  fetchedAt,

		JoiningFees: money.NonNegative(money.Parse(firstNonNil(c.JoiningFees, c.JoiningFee), 0)),
		AnnualFees:  money.NonNegative(money.Parse(firstNonNil(c.AnnualFees, c.AnnualFee, c.AnnualFeeText), 0)),
	}
	if c.TravelBenefits != nil {
		row.DomesticLounges = money.NonNegative(money.Parse(c.TravelBenefits.DomesticLoungesUnlocked, 0))
		row.InternationalLounges = money.NonNegative(money.Parse(c.TravelBenefits.InternationalLoungesUnlocked, 0))
	}
	return row
}

func firstNonNil(vals ...any) any {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
