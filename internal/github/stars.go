// Package github fetches repository star counts for the docs chrome. The
// count is decoration: upstream failure degrades to the last known value,
// never to an error surfaced to the reader.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Client fetches star counts with retry and a TTL cache.
type Client struct {
	httpClient       *http.Client
	baseURL          string
	repo             string
	ttl              time.Duration
	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	logger           *zap.Logger

	mu        sync.Mutex
	stars     int
	fetchedAt time.Time
}

// NewClient returns a client with default timeouts and retry strategy for
// the given "owner/repo".
func NewClient(repo string, ttl time.Duration, logger *zap.Logger) *Client {
	return NewClientWithOptions(repo, ttl, 10*time.Second, 3, 500*time.Millisecond, 4*time.Second, logger)
}

// NewClientWithOptions allows customizing HTTP timeout and retry/backoff behavior.
func NewClientWithOptions(repo string, ttl, httpTimeout time.Duration, retryMax int, baseDelay, maxDelay time.Duration, logger *zap.Logger) *Client {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	if retryMax <= 0 {
		retryMax = 3
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 4 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient:       &http.Client{Timeout: httpTimeout},
		baseURL:          "https://api.github.com",
		repo:             repo,
		ttl:              ttl,
		retryMaxAttempts: retryMax,
		retryBaseDelay:   baseDelay,
		retryMaxDelay:    maxDelay,
		logger:           logger.Named("github"),
	}
}

// SetBaseURL injects a custom API base URL (used in tests).
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// Stars returns the repo's star count. Within the TTL the cached value is
// served; on upstream failure the stale value (or zero) is returned with a
// warning logged. Never returns an error to callers.
func (c *Client) Stars(ctx context.Context) int {
	c.mu.Lock()
	fresh := time.Since(c.fetchedAt) < c.ttl
	cached := c.stars
	c.mu.Unlock()
	if fresh {
		return cached
	}

	count, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("star count fetch failed, serving cached value", zap.Error(err))
		return cached
	}

	c.mu.Lock()
	c.stars = count
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	return count
}

func (c *Client) fetch(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s/repos/%s", c.baseURL, c.repo)

	backoff := c.retryBaseDelay
	var lastErr error
	for attempt := 1; attempt <= c.retryMaxAttempts; attempt++ {
		count, retryable, err := c.fetchOnce(ctx, url)
		if err == nil {
			return count, nil
		}
		lastErr = err
		if !retryable || attempt == c.retryMaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > c.retryMaxDelay {
			backoff = c.retryMaxDelay
		}
	}
	return 0, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, url string) (count int, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return 0, true, fmt.Errorf("github: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return 0, false, fmt.Errorf("github: status %d", resp.StatusCode)
	}

	var payload struct {
		StargazersCount *int `json:"stargazers_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, false, fmt.Errorf("github: decode response: %w", err)
	}
	if payload.StargazersCount == nil {
		return 0, false, errors.New("github: response missing stargazers_count")
	}
	return *payload.StargazersCount, false, nil
}
