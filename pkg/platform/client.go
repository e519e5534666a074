package platform

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// HTTPClient wraps http.Client with retries and exponential backoff for
// the external card APIs. 4xx responses are returned as-is; transport
// errors and 5xx responses are retried.
type HTTPClient struct {
	Client  *http.Client
	Retries int
	APIKey  string
	Logger  zerolog.Logger
}

// NewHTTPClient builds a client with the given retry count and per-call
// timeout.
func NewHTTPClient(retries int, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		Client: &http.Client{
			Timeout: timeout,
		},
		Retries: retries,
		Logger:  log.Logger,
	}
}

// PostJSON issues a POST with a JSON body, honoring ctx cancellation
// across retries.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, body []byte) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, url, body)
}

// Get issues a GET, honoring ctx cancellation across retries.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var resp *http.Response
	var err error

	for i := 0; i <= c.Retries; i++ {
		var rd *bytes.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		} else {
			rd = bytes.NewReader(nil)
		}

		req, rErr := http.NewRequestWithContext(ctx, method, url, rd)
		if rErr != nil {
			return nil, rErr
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err = c.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if i < c.Retries {
			if resp != nil {
				resp.Body.Close()
			}
			c.Logger.Warn().
				Str("url", url).
				Int("attempt", i+1).
				Err(err).
				Msg("HTTP request failed, retrying")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(1<<i) * 200 * time.Millisecond):
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("request failed after %d retries: %w", c.Retries, err)
	}
	return resp, nil // last response even if 5xx
}
