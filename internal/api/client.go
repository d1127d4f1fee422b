// Package api is a typed client for the back-office REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/internal/metrics"
	"github.com/me/backoffice/internal/querycache"
)

// Cache tags, one per entity. A mutation drops every cached query carrying
// its entity's tag.
const (
	TagRequest      = "Request"
	TagPayment      = "Payment"
	TagVisitor      = "Visitor"
	TagPartner      = "Partner"
	TagNotification = "Notification"
	TagButton       = "Button"
)

const maxResponseBody = 16 << 20

// Client is an HTTP client for the back-office API. The entity services
// share its transport, rate limiter and optional cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	cache      *querycache.Cache

	Requests      *RequestsService
	Payments      *PaymentsService
	Visitors      *VisitorsService
	Partners      *PartnersService
	Notifications *NotificationsService
	Buttons       *ButtonsService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit limits outbound requests to r per second with the given
// burst.
func WithRateLimit(r float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(r), max(burst, 1))
	}
}

// WithCache serves queries through qc and invalidates it on mutations.
func WithCache(qc *querycache.Cache) Option {
	return func(c *Client) { c.cache = qc }
}

// NewClient creates an API client for baseURL.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger.With("component", "api"),
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Requests = &RequestsService{c: c}
	c.Payments = &PaymentsService{c: c}
	c.Visitors = &VisitorsService{c: c}
	c.Partners = &PartnersService{c: c}
	c.Notifications = &NotificationsService{c: c}
	c.Buttons = &ButtonsService{c: c}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one request. endpoint names the call for logs and metrics.
// A 2xx body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &FetchError{Endpoint: endpoint, URL: u, Err: err}
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", endpoint, err)
		}
		bodyReader = bytes.NewReader(data)
		c.logger.Debug("HTTP request body", "endpoint", endpoint, "body", string(data))
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("HTTP request", "endpoint", endpoint, "method", method, "url", u)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstream(endpoint, 0, time.Since(start))
		return &FetchError{Endpoint: endpoint, URL: u, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	elapsed := time.Since(start)
	metrics.RecordUpstream(endpoint, resp.StatusCode, elapsed)
	if err != nil {
		return &FetchError{Endpoint: endpoint, URL: u, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("HTTP response", "endpoint", endpoint, "status", resp.StatusCode, "duration", elapsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp.StatusCode, respBody)
		c.logger.Warn("upstream error", "endpoint", endpoint, "status", resp.StatusCode, "error", apiErr)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: parse response (status %d): %w", endpoint, resp.StatusCode, err)
	}
	return nil
}

// query runs a GET through the cache when one is configured.
func query[T any](ctx context.Context, c *Client, endpoint, path string, q url.Values, tags ...string) (T, error) {
	var zero T
	load := func(ctx context.Context) (any, error) {
		var out T
		if err := c.do(ctx, endpoint, http.MethodGet, path, q, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var (
		v   any
		err error
	)
	if c.cache != nil {
		v, err = c.cache.Fetch(ctx, cacheKey(path, q), tags, load)
	} else {
		v, err = load(ctx)
	}
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// mutate runs a non-GET request and, on success, invalidates tags.
func (c *Client) mutate(ctx context.Context, endpoint, method, path string, body, out any, tags ...string) error {
	if err := c.do(ctx, endpoint, method, path, nil, body, out); err != nil {
		return err
	}
	if c.cache != nil {
		n := c.cache.Invalidate(tags...)
		c.logger.Debug("cache invalidated", "endpoint", endpoint, "tags", tags, "entries", n)
	}
	return nil
}

func cacheKey(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// pageValues encodes list params, defaulting page to 1 and limit to
// listquery.DefaultPageSize.
func pageValues(p listquery.Params) url.Values {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = listquery.DefaultPageSize
	}
	return p.Values()
}

// filterValues encodes only the search and date filters, for endpoints that
// return whole collections.
func filterValues(p listquery.Params) url.Values {
	return listquery.Params{Search: p.Search, DateFrom: p.DateFrom, DateTo: p.DateTo}.Values()
}

func idPath(resource string, id int) string {
	return fmt.Sprintf("%s/%d", resource, id)
}

func itoa(n int) string { return strconv.Itoa(n) }
