// Package recommend wraps the external savings-calculation API. The
// upstream service is treated as unreliable: its response nests the
// savings array under several different keys and its field typing is
// loose, so all extraction here is shape-tolerant.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cardwise/pkg/api"
	cwerrors "cardwise/pkg/errors"
	"cardwise/pkg/platform"
)

// Client calls the recommendation API.
type Client struct {
	BaseURL string
	HTTP    *platform.HTTPClient
}

// NewClient builds a recommendation client with the platform retry
// policy (3 retries, 20s per-call timeout).
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    platform.NewHTTPClient(3, 20*time.Second),
	}
}

// Calculate submits the spend profile and returns the raw per-card
// savings estimates. An empty slice with a nil error means "no matching
// cards" and is a valid outcome; a non-nil error is the batch-fatal,
// user-retryable path.
func (c *Client) Calculate(ctx context.Context, profile api.SpendProfile) ([]api.RawSaving, error) {
	body, err := json.Marshal(profile)
	if err != nil {
		return nil, cwerrors.NewCalcFailed(err)
	}

	resp, err := c.HTTP.PostJSON(ctx, c.BaseURL+"/cards/calculate", body)
	if err != nil {
		return nil, cwerrors.NewCalcFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, cwerrors.NewCalcFailed(fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, cwerrors.NewCalcFailed(err)
	}

	return ExtractSavings(payload), nil
}

// envelope matches the outer layers the upstream is known to use.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type dataShapes struct {
	Savings []api.RawSaving `json:"savings"`
	Cards   []api.RawSaving `json:"cards"`
}

// ExtractSavings pulls the savings array out of a response body, trying
// the known shapes in priority order: data.savings, data as a bare
// array, then data.cards. A body matching none of them yields an empty
// slice, never an error; shape drift upstream must not break callers.
func ExtractSavings(payload []byte) []api.RawSaving {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil || len(env.Data) == 0 {
		// Some deployments skip the envelope entirely.
		var bare []api.RawSaving
		if err := json.Unmarshal(payload, &bare); err == nil {
			return bare
		}
		return []api.RawSaving{}
	}

	var shapes dataShapes
	if err := json.Unmarshal(env.Data, &shapes); err == nil && len(shapes.Savings) > 0 {
		return shapes.Savings
	}

	var arr []api.RawSaving
	if err := json.Unmarshal(env.Data, &arr); err == nil {
		return arr
	}

	if len(shapes.Cards) > 0 {
		return shapes.Cards
	}

	return []api.RawSaving{}
}
