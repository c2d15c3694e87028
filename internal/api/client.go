// Package api is the reference-data client for the knowledge-base front-end.
// Request construction is pure (see Endpoints); Client sends those requests
// through a resty client with per-endpoint circuit breakers and a rate limit
// on the publication-metadata service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/oncokb/kbtip/internal/config"
	"github.com/oncokb/kbtip/internal/metrics"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 20 * time.Second

	// EUtilsRateLimit is NCBI's request budget per second without an API key.
	EUtilsRateLimit = 3.0
)

// Response is the envelope of a completed upstream call.
type Response struct {
	StatusCode int             `json:"status"`
	URL        string          `json:"url"`
	Header     http.Header     `json:"-"`
	Data       json.RawMessage `json:"data"`
}

// Client is a reference-data client.
type Client struct {
	endpoints Endpoints
	hc        *http.Client
	timeout   time.Duration
	http      *resty.Client
	limiter   *rate.Limiter
	breakers  map[Endpoint]*gobreaker.CircuitBreaker
	inflight  singleflight.Group
	logger    *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoints sets the upstream base URLs.
func WithEndpoints(e Endpoints) ClientOption {
	return func(c *Client) {
		c.endpoints = e
	}
}

// WithHTTPClient sets a custom HTTP client. The client is copied, so the
// per-request timeout never modifies hc.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit sets the publication-metadata request budget per second.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a reference-data client. Without WithEndpoints the
// built-in public endpoints are used.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		endpoints: Endpoints{
			Public:      config.DefaultPublicAPI,
			Legacy:      config.DefaultLegacyAPI,
			StudiesBase: config.DefaultStudiesAPI,
			EUtils:      config.DefaultEUtilsAPI,
		},
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(rate.Limit(EUtilsRateLimit), 1),
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.hc != nil {
		// resty writes the timeout into its http.Client; keep the caller's intact.
		hc := *c.hc
		c.http = resty.NewWithClient(&hc)
	} else {
		c.http = resty.New()
	}
	c.http.SetTimeout(c.timeout).SetHeader("Accept", "application/json")
	c.breakers = make(map[Endpoint]*gobreaker.CircuitBreaker)
	for _, e := range []Endpoint{EndpointPublic, EndpointLegacy, EndpointStudies, EndpointEUtils} {
		c.breakers[e] = c.newBreaker(e)
	}

	return c
}

// NewClientFromConfig creates a client from the effective configuration.
func NewClientFromConfig(cfg *config.Config, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithEndpoints(Endpoints{
			Public:      cfg.PublicAPI,
			Legacy:      cfg.LegacyAPI,
			StudiesBase: cfg.StudiesAPI,
			EUtils:      cfg.EUtilsAPI,
		}),
		WithTimeout(cfg.HTTPTimeout),
		WithRateLimit(cfg.EUtilsRate),
	}
	return NewClient(append(base, opts...)...)
}

// Endpoints returns the request builder bound to this client's base URLs.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

func (c *Client) newBreaker(e Endpoint) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(e),
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed",
				zap.String("endpoint", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		// Client-side errors say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || !IsUnavailable(err)
		},
	})
}

// Do sends req and returns the response envelope. Non-2xx statuses are
// returned as *APIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNoRequest
	}

	if req.Endpoint == EndpointEUtils {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	breaker, ok := c.breakers[req.Endpoint]
	if !ok {
		return nil, fmt.Errorf("%w: unknown endpoint %q", ErrAPIError, req.Endpoint)
	}

	start := time.Now()
	result, err := breaker.Execute(func() (any, error) {
		return c.send(ctx, req)
	})
	metrics.UpstreamDuration.WithLabelValues(string(req.Endpoint)).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %s: %v", ErrCircuitOpen, req.Endpoint, err)
		}
		metrics.UpstreamCalls.WithLabelValues(string(req.Endpoint), statusLabel(err)).Inc()
		c.logger.Debug("upstream call failed",
			zap.String("endpoint", string(req.Endpoint)),
			zap.String("url", req.URL),
			zap.Error(err))
		return nil, err
	}

	resp := result.(*Response)
	metrics.UpstreamCalls.WithLabelValues(string(req.Endpoint), strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// send performs the HTTP exchange for one request.
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Execute(req.Method, req.URL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	if !res.IsSuccess() {
		return nil, &APIError{
			StatusCode: res.StatusCode(),
			Endpoint:   req.Endpoint,
			URL:        req.URL,
			Message:    http.StatusText(res.StatusCode()),
		}
	}

	return &Response{
		StatusCode: res.StatusCode(),
		URL:        req.URL,
		Header:     res.Header(),
		Data:       json.RawMessage(res.Body()),
	}, nil
}

func statusLabel(err error) string {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return strconv.Itoa(apiErr.StatusCode)
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "network_error"
	}
}
