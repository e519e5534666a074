// Package catalog provides card metadata: the remote detail-lookup
// client, a cache in front of it, and the catalog stores (ClickHouse
// and in-memory) used by the listing page and the ingest pipeline.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"cardwise/pkg/api"
	"cardwise/pkg/platform"
)

// DetailTTL bounds how long a cached card detail is trusted.
const DetailTTL = 6 * time.Hour

// Client fetches per-alias card details, consulting the cache first.
// A lookup failure is reported to the caller but is never fatal to the
// enrichment of that card.
type Client struct {
	BaseURL string
	HTTP    *platform.HTTPClient
	Cache   Cache
}

func NewClient(baseURL string, cache Cache) *Client {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    platform.NewHTTPClient(2, 15*time.Second),
		Cache:   cache,
	}
}

// Details returns the card detail for an alias, or an error when the
// upstream has nothing usable. The response body may be a single object
// or a one-element array; both normalize to the first record.
func (c *Client) Details(ctx context.Context, alias string) (*api.CardDetail, error) {
	if alias == "" {
		return nil, fmt.Errorf("empty card alias")
	}

	if cached, ok := c.Cache.Get(ctx, cacheKey(alias)); ok {
		var d api.CardDetail
		if err := json.Unmarshal([]byte(cached), &d); err == nil {
			return &d, nil
		}
	}

	resp, err := c.HTTP.Get(ctx, c.BaseURL+"/cards/"+url.PathEscape(alias))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("card detail lookup: upstream status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	detail, err := normalizeDetail(payload)
	if err != nil {
		return nil, err
	}

	if raw, mErr := json.Marshal(detail); mErr == nil {
		if sErr := c.Cache.Set(ctx, cacheKey(alias), string(raw), DetailTTL); sErr != nil {
			log.Warn().Str("alias", alias).Err(sErr).Msg("card detail cache write failed")
		}
	}

	return detail, nil
}

func cacheKey(alias string) string {
	return "card:detail:" + alias
}

// normalizeDetail accepts either `{...}` or `[{...}]` and returns the
// single record, taking index 0 when wrapped in an array.
func normalizeDetail(payload []byte) (*api.CardDetail, error) {
	var single api.CardDetail
	if err := json.Unmarshal(payload, &single); err == nil && (single.SeoCardAlias != "" || single.Name != "" || single.NickName != "") {
		return &single, nil
	}

	var arr []api.CardDetail
	if err := json.Unmarshal(payload, &arr); err == nil && len(arr) > 0 {
		return &arr[0], nil
	}

	return nil, fmt.Errorf("card detail payload has no usable record")
}
