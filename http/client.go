// Package http provides the HTTP client for the remote abbreviation
// service: the version check, the dictionary payload fetch, and the
// streamed explanation consumer.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/shigekazukoya/abbr"
	"github.com/shigekazukoya/abbr/protobuf"
)

// DefaultTimeout is the default timeout for request/response calls.
const DefaultTimeout = 10 * time.Second

// DefaultStreamTimeout bounds a whole explanation stream. Generation can
// legitimately take a while, so it is much looser than DefaultTimeout.
const DefaultStreamTimeout = 2 * time.Minute

// Ensure Client implements the service interfaces at compile time.
var (
	_ abbr.SyncClient          = (*Client)(nil)
	_ abbr.ExplanationStreamer = (*Client)(nil)
)

// Client talks to the remote abbreviation service.
type Client struct {
	baseURL       string
	client        *http.Client
	streamClient  *http.Client
	limiter       *rate.Limiter
	logger        *slog.Logger
	timeout       time.Duration
	streamTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for request/response calls.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithStreamTimeout sets the overall timeout for explanation streams.
// Defaults to DefaultStreamTimeout (2m) if not specified.
func WithStreamTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.streamTimeout = d
	}
}

// WithRateLimit throttles requests to rps requests per second with a
// burst of 1. No limiter is installed by default.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the logger used for skipped stream lines.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       baseURL,
		timeout:       DefaultTimeout,
		streamTimeout: DefaultStreamTimeout,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{Timeout: c.timeout}
	c.streamClient = &http.Client{Timeout: c.streamTimeout}

	return c
}

// CheckVersion asks the server whether the locally cached version is stale.
func (c *Client) CheckVersion(ctx context.Context, current int64) (*abbr.VersionInfo, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/check-version?current=%d", c.baseURL, current))
	if err != nil {
		return nil, err
	}

	var info abbr.VersionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, abbr.Errorf(abbr.EUNAVAILABLE, "version check returned an unreadable response")
	}
	return &info, nil
}

// FetchDictionary retrieves and decodes the full dictionary payload.
func (c *Client) FetchDictionary(ctx context.Context, version int64) (abbr.Dictionary, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/get-data?version=%d", c.baseURL, version))
	if err != nil {
		return nil, err
	}
	return protobuf.UnmarshalDictionary(body)
}

// get performs a rate-limited GET and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, abbr.Errorf(abbr.EUNAVAILABLE, "abbreviation service is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, abbr.Errorf(abbr.EUNAVAILABLE, "abbreviation service returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, abbr.Errorf(abbr.EUNAVAILABLE, "abbreviation service response could not be read")
	}
	return body, nil
}

// wait blocks on the rate limiter, if one is configured.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
