// Package api is a client for the BrawlHub statistics server.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

const (
	DefaultBaseURL   = "http://127.0.0.1:3030"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "brawlhub-tui"
)

var (
	ErrRequest = errors.New("API request failed")
	ErrStatus  = errors.New("unexpected API status")
	ErrDecode  = errors.New("invalid API response")
)

// Cache stores raw response bodies keyed by request path.
type Cache interface {
	Get(ctx context.Context, key string) (body []byte, storedAt time.Time, ok bool, err error)
	Put(ctx context.Context, key string, body []byte) error
}

// Client talks to the BrawlHub API. Responses for everything except
// search are served from the cache while younger than the TTL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	ttl        time.Duration
	userAgent  string
	log        logr.Logger
	now        func() time.Time
}

// ClientParams holds parameters for creating a Client.
type ClientParams struct {
	BaseURL    string        // optional, uses DefaultBaseURL if empty
	Timeout    time.Duration // optional, uses DefaultTimeout if zero
	HTTPClient *http.Client  // optional, overrides Timeout
	Cache      Cache         // optional
	CacheTTL   time.Duration // zero disables cache reads
	UserAgent  string        // optional
	Logger     *logr.Logger  // optional
}

// NewClient creates a new API client.
func NewClient(params ClientParams) *Client {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := params.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	log := logr.Discard()
	if params.Logger != nil {
		log = *params.Logger
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		cache:      params.Cache,
		ttl:        params.CacheTTL,
		userAgent:  userAgent,
		log:        log,
		now:        time.Now,
	}
}

// BaseURL returns the server address requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// fetch performs a GET for path and returns the body of a 200 response.
func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrRequest, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrRequest, path, err)
	}

	c.log.V(1).Info("api request", "path", path, "status", resp.StatusCode,
		"requestID", requestID, "duration", c.now().Sub(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: status %d: %s", ErrStatus, path, resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

// cached returns a fresh cached body for path.
func (c *Client) cached(ctx context.Context, path string) ([]byte, bool) {
	if c.cache == nil || c.ttl <= 0 {
		return nil, false
	}
	body, storedAt, ok, err := c.cache.Get(ctx, path)
	if err != nil {
		c.log.Error(err, "cache read failed", "path", path)
		return nil, false
	}
	if !ok || c.now().Sub(storedAt) >= c.ttl {
		return nil, false
	}
	return body, true
}

// getJSON decodes the response for path into out. Cacheable responses are
// served from the cache while fresh and stored only after they decode.
func (c *Client) getJSON(ctx context.Context, path string, cacheable bool, out any) error {
	if cacheable {
		if body, ok := c.cached(ctx, path); ok {
			if err := json.Unmarshal(body, out); err == nil {
				return nil
			}
			c.log.V(1).Info("discarding undecodable cache entry", "path", path)
		}
	}

	body, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	if cacheable && c.cache != nil {
		if err := c.cache.Put(ctx, path, body); err != nil {
			c.log.Error(err, "cache write failed", "path", path)
		}
	}
	return nil
}

// Refresh fetches path from the server and stores the response in the
// cache, ignoring any cached copy.
func (c *Client) Refresh(ctx context.Context, path string) error {
	body, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}
	if !json.Valid(body) {
		return fmt.Errorf("%w: %s: not JSON", ErrDecode, path)
	}
	if c.cache == nil {
		return nil
	}
	return c.cache.Put(ctx, path, body)
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
