// Package fetch provides the HTTP client infrastructure shared by the
// messistats and fbref scrapers.
//
// Both sites are plain HTML. Politeness is handled via a token bucket
// limiter; 429 and 5xx responses are retried with jittered backoff.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultMaxAttempts = 4

// Client is the shared HTML fetcher for all scrapers.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	limiter     *rate.Limiter
	maxAttempts int
	backoff     time.Duration
	logger      *slog.Logger
}

// NewClient creates a fetch client with rate limiting.
func NewClient(userAgent string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		userAgent:   userAgent,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		maxAttempts: defaultMaxAttempts,
		backoff:     250 * time.Millisecond,
		logger:      logger,
	}
}

// WithHTTPClient swaps the underlying http.Client (tests use httptest servers).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithBackoff sets the base retry delay.
func (c *Client) WithBackoff(d time.Duration) *Client {
	c.backoff = d
	return c
}

// StatusError is returned for non-200 responses that are not retried or
// that exhausted their retries.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned %d: %s", e.URL, e.Status, e.Body)
}

// Get performs a rate-limited GET and returns the response body.
// Only 429 and 5xx responses (and transport errors) are retried.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			sleep := c.backoff*time.Duration(1<<(attempt-1)) + time.Duration(rand.Intn(200))*time.Millisecond
			c.logger.Debug("Retrying request", "url", url, "attempt", attempt+1, "sleep", sleep, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(sleep):
			}
		}

		body, retry, err := c.do(ctx, url)
		if err == nil {
			return body, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("exhausted %d attempts for %s: %w", c.maxAttempts, url, lastErr)
}

func (c *Client) do(ctx context.Context, url string) (body []byte, retry bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("http request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retry = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, &StatusError{URL: url, Status: resp.StatusCode, Body: truncate(body, 200)}
	}
	return body, false, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
