// Package client implements the fetch collaborators on top of
// net/http.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/caasmo/iconfind/fetch"
)

// Options configures the Client.
type Options struct {
	// Timeout bounds a single request attempt, connection included.
	Timeout time.Duration

	// UserAgent is sent on every request. Some sites refuse requests
	// without one.
	UserAgent string

	// RateLimit and RateBurst throttle outbound requests across both
	// document fetches and probes.
	RateLimit rate.Limit
	RateBurst int

	// ProbeMaxRetries is how often a failed probe attempt is retried
	// with exponential backoff before giving up.
	ProbeMaxRetries uint64
}

// Client implements fetch.DocumentFetcher and fetch.Prober. It is safe
// for concurrent use: its fields are immutable after creation or are
// concurrency-safe types.
type Client struct {
	opts       Options
	logger     *slog.Logger
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a Client. Unset options get working defaults.
func New(opts Options, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("client: logger is required")
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "iconfind/1.0"
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Every(100 * time.Millisecond)
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 10
	}
	if opts.ProbeMaxRetries == 0 {
		opts.ProbeMaxRetries = 2
	}

	return &Client{
		opts:    opts,
		logger:  logger,
		limiter: rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		httpClient: &http.Client{
			// No Timeout here; each attempt carries its own context
			// deadline so the limiter wait is not counted against it.
		},
	}, nil
}

// Fetch implements fetch.DocumentFetcher. Every failure degrades to an
// empty document; nothing escapes as an error.
func (c *Client) Fetch(ctx context.Context, url string) *goquery.Document {
	if err := c.limiter.Wait(ctx); err != nil {
		return fetch.EmptyDocument()
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Debug("client: invalid document request", "url", url, "error", err)
		return fetch.EmptyDocument()
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("client: document fetch failed", "url", url, "error", err)
		return fetch.EmptyDocument()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("client: document fetch returned non-2xx", "url", url, "status", resp.StatusCode)
		return fetch.EmptyDocument()
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		c.logger.Debug("client: charset detection failed", "url", url, "error", err)
		return fetch.EmptyDocument()
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		c.logger.Debug("client: document parse failed", "url", url, "error", err)
		return fetch.EmptyDocument()
	}
	return doc
}

// Probe implements fetch.Prober. It checks the URL with HEAD, falling
// back to GET when the server rejects the method, and retries
// transient failures with exponential backoff. Client errors (4xx) are
// final and not retried.
func (c *Client) Probe(ctx context.Context, url string) bool {
	attempt := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		reqCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()

		status, err := c.request(reqCtx, http.MethodHead, url)
		if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
			status, err = c.request(reqCtx, http.MethodGet, url)
		}
		if err != nil {
			return err
		}

		switch {
		case status >= 200 && status < 300:
			return nil
		case status >= 400 && status < 500:
			return backoff.Permanent(fmt.Errorf("client: status %d", status))
		default:
			return fmt.Errorf("client: status %d", status)
		}
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.opts.ProbeMaxRetries), ctx)
	if err := backoff.Retry(attempt, bo); err != nil {
		c.logger.Debug("client: probe failed", "url", url, "error", err)
		return false
	}
	return true
}

func (c *Client) request(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
