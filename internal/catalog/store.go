package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cardwise/pkg/api"
)

// Store is the card-catalog backing the listing page and the offline
// recommendation path. The ClickHouse implementation is authoritative
// in deployment; MemoryStore serves tests and the demo CLI.
type Store interface {
	Lookup(ctx context.Context, alias string) (*api.CardDetail, bool, error)
	List(ctx context.Context) ([]api.CardDetail, error)
	Ingest(ctx context.Context, cards []api.CardDetail) error
	Ping(ctx context.Context) error
}

// MemoryStore is an in-memory catalog seeded with a small card set.
type MemoryStore struct {
	mu    sync.RWMutex
	cards map[string]api.CardDetail
}

// NewMemoryStore creates an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cards: make(map[string]api.CardDetail)}
}

// NewSeededStore creates a catalog pre-loaded with a representative
// card set, enough to exercise the full pipeline without any upstream.
func NewSeededStore() *MemoryStore {
	s := NewMemoryStore()
	seed := []api.CardDetail{
		{
			SeoCardAlias: "hdfc-millennia", Name: "HDFC Millennia", BankName: "HDFC Bank",
			CardType: "cashback", Network: "visa",
			JoiningFees: 1000, AnnualFees: 1000,
			TravelBenefits: &api.TravelBenefits{DomesticLoungesUnlocked: 8},
		},
		{
			SeoCardAlias: "axis-atlas", Name: "Axis Atlas", BankName: "Axis Bank",
			CardType: "travel", Network: "visa",
			JoiningFees: 5000, AnnualFees: 5000,
			TravelBenefits: &api.TravelBenefits{DomesticLoungesUnlocked: 8, InternationalLoungesUnlocked: 12},
		},
		{
			SeoCardAlias: "sbi-cashback", Name: "SBI Cashback", BankName: "SBI Card",
			CardType: "cashback", Network: "mastercard",
			JoiningFees: 999, AnnualFees: 999,
		},
		{
			SeoCardAlias: "amex-platinum-travel", Name: "Amex Platinum Travel", BankName: "American Express",
			CardType: "travel", Network: "amex",
			JoiningFees: 3500, AnnualFees: 5000,
			TravelBenefits: &api.TravelBenefits{DomesticLoungesUnlocked: 8},
		},
		{
			SeoCardAlias: "icici-amazon-pay", Name: "Amazon Pay ICICI", BankName: "ICICI Bank",
			CardType: "cashback", Network: "visa",
			JoiningFees: 0, AnnualFees: 0,
		},
	}
	_ = s.Ingest(context.Background(), seed)
	return s
}

func (s *MemoryStore) Lookup(_ context.Context, alias string) (*api.CardDetail, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[strings.ToLower(alias)]
	if !ok {
		return nil, false, nil
	}
	return &card, true, nil
}

func (s *MemoryStore) List(_ context.Context) ([]api.CardDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.CardDetail, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, c)
	}
	return out, nil
}

func (s *MemoryStore) Ingest(_ context.Context, cards []api.CardDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cards {
		if c.SeoCardAlias == "" {
			continue
		}
		s.cards[strings.ToLower(c.SeoCardAlias)] = c
	}
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

// StoreSource adapts a Store to the enrichment engine's detail source,
// so offline paths resolve details from the catalog instead of the
// remote API. A clean miss reports an error; the engine treats it as a
// recoverable lookup failure.
type StoreSource struct {
	Store Store
}

func (s StoreSource) Details(ctx context.Context, alias string) (*api.CardDetail, error) {
	detail, ok, err := s.Store.Lookup(ctx, alias)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("card not in catalog: %s", alias)
	}
	return detail, nil
}
