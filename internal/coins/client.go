// Package coins talks to the coins REST API: explore lists and single coin
// lookups.
package coins

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"postMint/internal/metrics"
)

const (
	DefaultBaseURL = "https://api-sdk.zora.engineering"
	DefaultTimeout = 15 * time.Second
	DefaultCount   = 20

	apiKeyHeader = "api-key"
)

var (
	ErrNotFound     = errors.New("coin not found")
	ErrUnauthorized = errors.New("api key invalid or missing")
)

// StatusError is returned for any other non-200 response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Config holds the endpoint and credentials. It is passed explicitly to the
// client; nothing is read from process-wide state.
type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
	Burst     int
}

type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *fasthttp.Client
	limiter *rate.Limiter
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewClient(cfg Config, m *metrics.Metrics, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		timeout: timeout,
		http:    &fasthttp.Client{Name: "postmint"},
		limiter: rate.NewLimiter(limit, burst),
		metrics: m,
		logger:  logger.Named("coins"),
	}
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	body, err := c.do(ctx, endpoint, query)
	c.metrics.APIRequest(endpoint, err)
	return body, err
}

func (c *Client) do(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait rate limit: %w", err)
	}

	requestURL := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.http.DoDeadline(req, resp, deadline)
	} else {
		err = c.http.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}

	switch code := resp.StatusCode(); code {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return nil, ErrNotFound
	case fasthttp.StatusUnauthorized, fasthttp.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		c.logger.Debug("coins api error", zap.String("endpoint", endpoint), zap.Int("status", code), zap.ByteString("body", resp.Body()))
		return nil, &StatusError{Code: code, Body: truncate(string(resp.Body()), 256)}
	}

	// resp is released on return; the body must be copied.
	body := append([]byte(nil), resp.Body()...)
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
