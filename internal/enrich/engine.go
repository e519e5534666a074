// Package enrich implements the enrichment and ranking engine: it
// merges raw savings estimates with card details, computes lounge and
// net-savings figures, and emits a deterministically ranked result set.
package enrich

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"cardwise/pkg/api"
	cwerrors "cardwise/pkg/errors"
)

// Lounge visit valuations in integer rupees.
const (
	DomesticVisitValue      = 750
	InternationalVisitValue = 1250
)

// DefaultConcurrency bounds the detail-lookup fan-out so a large
// candidate list cannot open unbounded simultaneous connections.
const DefaultConcurrency = 8

// DetailSource supplies supplementary card metadata by alias. A nil
// detail with an error is a recoverable miss: enrichment proceeds from
// the raw saving's own fields.
type DetailSource interface {
	Details(ctx context.Context, alias string) (*api.CardDetail, error)
}

// Engine enriches raw savings into ranked cards.
type Engine struct {
	Details     DetailSource
	Concurrency int
}

// NewEngine builds an engine. details may be nil, in which case every
// card is enriched from its raw fields alone.
func NewEngine(details DetailSource) *Engine {
	return &Engine{
		Details:     details,
		Concurrency: DefaultConcurrency,
	}
}

// Result is the engine's output. Errors are per-card and recoverable;
// a batch-fatal condition never reaches this struct.
type Result struct {
	Cards    []api.EnrichedCard   `json:"cards"`
	Warnings []string             `json:"warnings,omitempty"`
	Errors   []cwerrors.CardError `json:"errors,omitempty"`
}

// TopPositive applies the quick-recommendation policy: keep only cards
// with positive net savings and take the best n. n <= 0 keeps all
// positive cards.
func (r *Result) TopPositive(n int) []api.EnrichedCard {
	out := make([]api.EnrichedCard, 0, len(r.Cards))
	for _, c := range r.Cards {
		if c.NetSavings > 0 {
			out = append(out, c)
		}
	}
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Enrich processes one batch of raw savings. Each card is independent:
// its detail lookup, coercion, and assembly touch no shared state, so
// the only synchronization is the fan-in. A failure or panic while
// enriching a single card drops that card and records an error; the
// batch always completes.
func (e *Engine) Enrich(ctx context.Context, profile api.SpendProfile, savings []api.RawSaving) *Result {
	result := &Result{Cards: []api.EnrichedCard{}}
	if len(savings) == 0 {
		return result
	}

	limit := e.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	cards := make([]*api.EnrichedCard, len(savings))
	itemErrs := make([]*cwerrors.CardError, len(savings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, raw := range savings {
		i, raw := i, raw
		g.Go(func() error {
			cards[i], itemErrs[i] = e.enrichOne(gctx, profile, raw)
			return nil
		})
	}
	// Worker funcs never return errors; per-item failures land in itemErrs.
	_ = g.Wait()

	for i := range savings {
		if itemErrs[i] != nil {
			result.Errors = append(result.Errors, *itemErrs[i])
			if itemErrs[i].Recoverable && itemErrs[i].Code == cwerrors.ErrCodeDetailUnavailable {
				result.Warnings = append(result.Warnings, itemErrs[i].Message)
			}
		}
		if cards[i] != nil {
			result.Cards = append(result.Cards, *cards[i])
		}
	}

	rank(result.Cards)
	return result
}

// enrichOne converts a single raw saving. The detail lookup failing is
// recoverable (card kept, warning recorded); anything that prevents
// assembly drops the card.
func (e *Engine) enrichOne(ctx context.Context, profile api.SpendProfile, raw api.RawSaving) (card *api.EnrichedCard, cerr *cwerrors.CardError) {
	alias := raw.Alias()

	defer func() {
		if r := recover(); r != nil {
			card = nil
			cerr = cwerrors.NewMalformedItem(alias, r)
		}
	}()

	if alias == "" && raw.CardName == "" {
		return nil, cwerrors.NewMalformedItem(alias, "no card identifier")
	}

	var detail *api.CardDetail
	if e.Details != nil && alias != "" {
		d, err := e.Details.Details(ctx, alias)
		if err != nil {
			cerr = cwerrors.NewDetailUnavailable(alias, err)
		} else {
			detail = d
		}
	}

	assembled := assemble(profile, raw, detail)
	return &assembled, cerr
}

// rank orders cards by net savings descending. Ties break ascending by
// card name, then by alias, so identical inputs always produce the same
// order regardless of upstream array order.
func rank(cards []api.EnrichedCard) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].NetSavings != cards[j].NetSavings {
			return cards[i].NetSavings > cards[j].NetSavings
		}
		if cards[i].CardName != cards[j].CardName {
			return cards[i].CardName < cards[j].CardName
		}
		return cards[i].SeoCardAlias < cards[j].SeoCardAlias
	})
}
