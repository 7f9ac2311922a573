package price

import (
	"bytes"
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

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBaseURL is the public pricing API.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"
	// DefaultCurrency is the reference currency prices are quoted in.
	DefaultCurrency = "usd"
	// SimplePricePath is the only endpoint the widget reads from.
	SimplePricePath = "/simple/price"

	defaultTimeout       = 10 * time.Second
	defaultRetryInterval = 200 * time.Millisecond
	maxParallelLookups   = 4
)

var (
	// ErrPriceUnavailable means the response carried no price for the identifier.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrMalformedResponse means the response body was not the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed price response")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("price API returned status %d for %s", e.Code, e.URL)
}

// Options configures a Client.
type Options struct {
	BaseURL       string
	Currency      string
	Timeout       time.Duration
	Retries       int
	RetryInterval time.Duration
	// Retention bounds how long a fetched price is reused. Zero keeps it
	// for the lifetime of the process.
	Retention  time.Duration
	HTTPClient *http.Client
}

// Request is a generic call against the pricing API.
type Request struct {
	Method string
	Path   string
	Body   any
	Params url.Values
}

// Client fetches unit prices and caches them per identifier.
// It is safe for concurrent use.
type Client struct {
	baseURL       string
	currency      string
	retries       int
	retryInterval time.Duration
	timeout       time.Duration
	httpClient    *http.Client
	cache         *Cache
	group         singleflight.Group
	metrics       *Metrics
	logger        *zap.Logger
}

// NewClient creates a price client
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = defaultRetryInterval
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	logger = logger.Named("price_client")
	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		currency:      strings.ToLower(opts.Currency),
		retries:       opts.Retries,
		retryInterval: opts.RetryInterval,
		timeout:       opts.Timeout,
		httpClient:    httpClient,
		cache:         NewCache(opts.Retention, logger),
		metrics:       NewMetrics(),
		logger:        logger,
	}
}

// Currency returns the reference currency.
func (c *Client) Currency() string {
	return c.currency
}

// Cache exposes the underlying price cache.
func (c *Client) Cache() *Cache {
	return c.cache
}

// Metrics exposes the client collectors.
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// Price returns the unit price of id in the reference currency. A cached
// price is returned without touching the network; concurrent lookups for
// the same id share one request. The shared request is detached from the
// caller that started it, so one caller giving up does not fail the others.
func (c *Client) Price(ctx context.Context, id string) (float64, error) {
	if id == "" {
		return 0, fmt.Errorf("price: empty identifier")
	}
	if entry, ok := c.cache.Get(id); ok {
		c.metrics.CacheHitsTotal.Inc()
		return entry.Price, nil
	}

	ch := c.group.DoChan(id, func() (any, error) {
		if entry, ok := c.cache.peek(id); ok {
			return entry.Price, nil
		}
		c.metrics.CacheMissTotal.Inc()

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		body, err := c.Fetch(fetchCtx, Request{
			Method: http.MethodGet,
			Path:   SimplePricePath,
			Params: url.Values{
				"ids":           {id},
				"vs_currencies": {c.currency},
			},
		})
		if err != nil {
			return 0.0, err
		}

		p, err := parsePrice(body, id, c.currency)
		if err != nil {
			return 0.0, err
		}
		c.cache.Set(id, p)
		return p, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return 0, fmt.Errorf("price %s: %w", id, ctx.Err())
	}
	if res.Err != nil {
		c.logger.Warn("Price lookup failed", zap.String("id", id), zap.Error(res.Err))
		return 0, fmt.Errorf("price %s: %w", id, res.Err)
	}

	c.logger.Debug("Price resolved",
		zap.String("id", id),
		zap.Float64("price", res.Val.(float64)),
		zap.Bool("shared", res.Shared))
	return res.Val.(float64), nil
}

// Prices looks up several identifiers in parallel. Identifiers that fail
// are absent from the result; their errors are joined.
func (c *Client) Prices(ctx context.Context, ids ...string) (map[string]float64, error) {
	var (
		mu     sync.Mutex
		result = make(map[string]float64, len(ids))
		errs   []error
	)

	var g errgroup.Group
	g.SetLimit(maxParallelLookups)
	for _, id := range ids {
		g.Go(func() error {
			p, err := c.Price(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			result[id] = p
			return nil
		})
	}
	_ = g.Wait()

	return result, errors.Join(errs...)
}

// Fetch performs a request against the pricing API and returns the raw body.
// Server errors and rate limiting are retried up to the configured count.
func (c *Client) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	switch req.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported method %q", req.Method)
	}

	target := c.baseURL + req.Path
	if len(req.Params) > 0 {
		target += "?" + req.Params.Encode()
	}

	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	op := func() ([]byte, error) {
		return c.do(ctx, req.Method, target, payload)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	return backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(c.retries+1)),
	)
}

func (c *Client) do(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	c.metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.RequestsTotal.WithLabelValues(method, "error").Inc()
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to send request: %w", err))
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.RequestsTotal.WithLabelValues(method, fmt.Sprint(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode, URL: target}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, statusErr
		}
		return nil, backoff.Permanent(statusErr)
	}

	return data, nil
}

// parsePrice reads {"<id>": {"<currency>": <price>}}.
func parsePrice(body []byte, id, currency string) (float64, error) {
	if !gjson.ValidBytes(body) {
		return 0, ErrMalformedResponse
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return 0, ErrMalformedResponse
	}

	entry := root.Get(escapePath(id))
	if !entry.Exists() {
		return 0, ErrPriceUnavailable
	}
	value := entry.Get(escapePath(currency))
	if !value.Exists() {
		return 0, ErrPriceUnavailable
	}
	if value.Type != gjson.Number {
		return 0, ErrMalformedResponse
	}
	return value.Float(), nil
}

// escapePath quotes gjson path metacharacters in a literal key.
func escapePath(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
