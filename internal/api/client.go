package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://api.nytimes.com/svc/books/v3"
	userAgent       = "nyt-tui/1.0"
	requestTimeout  = 30 * time.Second
	defaultPerMin   = 10
	defaultBurst    = 2
	apiKeyParameter = "api-key"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL        string
	RequestsPerMin int
	HTTPClient     *http.Client
	Logger         *zap.Logger
}

// Client is a rate-limited NYT Books API client.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	baseURL string
	logger  *zap.Logger
	apiKey  string
	mu      sync.RWMutex
}

// keyTransport injects the api key and standard headers into every request.
type keyTransport struct {
	wrapped http.RoundTripper
	keyFunc func() string
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set(apiKeyParameter, t.keyFunc())
	r.URL.RawQuery = q.Encode()
	r.Header.Set("User-Agent", userAgent)
	r.Header.Set("Accept", "application/json")
	return t.wrapped.RoundTrip(r)
}

// NewClient creates a new API client with the given api key.
func NewClient(apiKey string, opts Options) *Client {
	perMin := opts.RequestsPerMin
	if perMin <= 0 {
		perMin = defaultPerMin
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), defaultBurst),
	}

	base := http.DefaultTransport
	timeout := requestTimeout
	if opts.HTTPClient != nil {
		if opts.HTTPClient.Transport != nil {
			base = opts.HTTPClient.Transport
		}
		if opts.HTTPClient.Timeout > 0 {
			timeout = opts.HTTPClient.Timeout
		}
	}

	c.http = &http.Client{
		Timeout: timeout,
		Transport: &keyTransport{
			keyFunc: func() string {
				c.mu.RLock()
				defer c.mu.RUnlock()
				return c.apiKey
			},
			wrapped: base,
		},
	}
	return c
}

// SetAPIKey updates the api key used for subsequent requests.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

// getJSON performs a rate-limited GET against path and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, op, path string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return wrapError(op, path, fmt.Errorf("%w: rate limit wait: %v", ErrNetwork, err))
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return wrapError(op, path, fmt.Errorf("build url: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return wrapError(op, path, fmt.Errorf("create request: %w", err))
	}

	c.logger.Debug("nyt request", zap.String("op", op), zap.String("path", path))
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("nyt request failed", zap.String("op", op), zap.String("path", path), zap.Error(redact(err)))
		return wrapError(op, path, fmt.Errorf("%w: %v", ErrNetwork, redact(err)))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(op, path, fmt.Errorf("%w: read response: %v", ErrNetwork, err))
	}

	c.logger.Debug("nyt response",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := statusError(resp.StatusCode); err != nil {
		c.logger.Warn("nyt request rejected", zap.String("op", op), zap.String("path", path), zap.Int("status", resp.StatusCode))
		return wrapError(op, path, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return wrapError(op, path, fmt.Errorf("%w: %v", ErrParse, err))
	}
	return nil
}

// redact strips the request URL from transport errors so the api key in
// the query string never reaches logs or the UI.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", strings.ToLower(uerr.Op), uerr.Err)
	}
	return err
}
