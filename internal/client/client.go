// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/geosnap/internal/config"
	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/metrics"
	"github.com/tomtom215/geosnap/internal/models"
)

// maxErrorBodySize limits how much of a failed response is read.
const maxErrorBodySize = 64 * 1024

// maxResponseSize limits how much of a successful response is read.
const maxResponseSize = 32 << 20

// TokenSource supplies the bearer token for each request. An empty token
// means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// AuthFailureFunc is called when the backend rejects the attached token
// with 401 or 403. The session manager uses it to force a logout.
type AuthFailureFunc func(ctx context.Context, statusCode int, message string)

// Client is the HTTP adapter for the Geosnap backend.
//
// Thread Safety: Safe for concurrent use.
type Client struct {
	baseURL       *url.URL
	userAgent     string
	http          *http.Client
	tokens        TokenSource
	onAuthFailure AuthFailureFunc
	limiter       *rate.Limiter
	cb            *gobreaker.CircuitBreaker[*rawResponse]
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource attaches bearer tokens from ts.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithAuthFailureHandler registers fn for 401/403 responses.
func WithAuthFailureHandler(fn AuthFailureFunc) Option {
	return func(c *Client) { c.onAuthFailure = fn }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for cfg.API.BaseURL.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.API.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.API.BaseURL)
	}

	c := &Client{
		baseURL:   base,
		userAgent: cfg.API.UserAgent,
		http:      &http.Client{Timeout: cfg.API.Timeout},
		cb:        newBreaker(cfg.Breaker),
	}
	if cfg.API.RateLimitRPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.API.RateLimitRPS), cfg.API.RateLimitBurst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get issues a GET and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path}, out)
}

// rawResponse is what the breaker-protected section hands back.
type rawResponse struct {
	status    int
	body      []byte
	requestID string
}

// Do sends req and decodes the envelope's data into out (which may be nil).
//
// Errors:
//   - *APIError for non-2xx responses and success=false envelopes
//   - *NetworkError when no usable response arrived
//   - ctx.Err() when the caller's context ended first
func (c *Client) Do(ctx context.Context, req *Request, out any) (*Response, error) {
	route := req.route()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, &NetworkError{Op: "rate limit", Err: err}
		}
	}

	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}

	raw, err := c.cb.Execute(func() (*rawResponse, error) {
		return c.send(ctx, req, token)
	})
	recordBreakerResult(c.cb, err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &NetworkError{Op: "circuit breaker", Err: err}
		}
		var aerr *APIError
		if errors.As(err, &aerr) {
			aerr.Method, aerr.Route = req.Method, route
			if aerr.Kind == KindAuth && token != "" && c.onAuthFailure != nil {
				logging.Ctx(ctx).Warn().Int("status", aerr.StatusCode).Str("route", route).Msg("Backend rejected session token")
				c.onAuthFailure(ctx, aerr.StatusCode, aerr.Message)
			}
		}
		return nil, err
	}

	return c.decode(req, raw, out)
}

// send performs the HTTP round trip and reads the body. Any non-2xx status
// comes back as *APIError so the breaker can weigh it.
func (c *Client) send(ctx context.Context, req *Request, token string) (*rawResponse, error) {
	route := req.route()

	body, contentType, err := req.encodeBody()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, route, err)
	}

	target := c.resolve(req.Path, req.Query)
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.GenerateRequestID()
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	metrics.TrackActiveRequest(true)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.TrackActiveRequest(false)
	if err != nil {
		metrics.RecordAPIRequest(req.Method, route, 0, time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.Ctx(ctx).Debug().Err(err).Str("method", req.Method).Str("route", route).Msg("Request failed without response")
		return nil, &NetworkError{Op: req.Method + " " + route, Err: err}
	}
	defer resp.Body.Close()

	duration := time.Since(start)
	metrics.RecordAPIRequest(req.Method, route, resp.StatusCode, duration)
	logging.Ctx(ctx).Debug().
		Str("method", req.Method).
		Str("route", route).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Str("request_id", requestID).
		Msg("Backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp.StatusCode, readBodyForError(resp.Body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &NetworkError{Op: "read " + route, Err: err}
	}
	return &rawResponse{status: resp.StatusCode, body: data, requestID: requestID}, nil
}

// decode unwraps the envelope of a 2xx response.
func (c *Client) decode(req *Request, raw *rawResponse, out any) (*Response, error) {
	result := &Response{StatusCode: raw.status, RequestID: raw.requestID}
	if len(raw.body) == 0 || raw.status == http.StatusNoContent {
		return result, nil
	}

	var env models.Envelope
	if err := json.Unmarshal(raw.body, &env); err != nil {
		return nil, &NetworkError{Op: "decode " + req.route(), Err: err}
	}
	result.Message = env.Message
	result.Pagination = env.Pagination

	if !env.Success {
		return nil, &APIError{
			Kind:       KindServer,
			StatusCode: raw.status,
			Message:    env.Message,
			Code:       env.Code,
			Method:     req.Method,
			Route:      req.route(),
		}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &NetworkError{Op: "decode " + req.route(), Err: err}
		}
	}
	return result, nil
}

// resolve joins path and query onto the base URL, keeping the base path
// (e.g. "/api").
func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawPath = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// errorFromResponse builds an APIError from a non-2xx response, using the
// envelope's message when the body has one.
func errorFromResponse(status int, body []byte) *APIError {
	aerr := &APIError{Kind: kindForStatus(status), StatusCode: status}
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err == nil {
		aerr.Message = env.Message
		aerr.Code = env.Code
	}
	return aerr
}

// readBodyForError reads at most maxErrorBodySize bytes of a failed response.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return nil
	}
	return body
}
