// Package client contains the HTTP clients the services use to call each
// other's /internal API. Every call forwards the caller's credential and
// request id unmodified.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/logger"
	"teamtrack/internal/metrics"
	"teamtrack/pkg/auth"
)

// RequestIDHeader carries the request id between services.
const RequestIDHeader = "X-Request-ID"

// Call outcomes reported to metrics.
const (
	outcomeOK          = "ok"
	outcomeRejected    = "rejected"
	outcomeUnavailable = "unavailable"
)

// Client is a thin JSON client for one sibling service.
type Client struct {
	target     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	metrics    *metrics.Metrics
	service    string
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithMetrics records outbound call outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithServiceToken presents token on every call so the sibling admits the
// request to its /internal routes.
func WithServiceToken(token string) Option {
	return func(c *Client) {
		c.service = token
	}
}

// New constructs a Client for the service named target at base. timeout
// bounds every call.
func New(target, base string, timeout time.Duration, log *slog.Logger, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("%s base url is empty", target)
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid %s base url: %w", target, err)
	}
	c := &Client{
		target:     target,
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("target", target),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError represents an error response from a sibling service.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// envelope mirrors pkg/response.Response with a deferred data payload.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do performs a request and decodes the envelope's data into v.
//
// Transport errors, timeouts and 5xx responses wrap
// apperrors.ErrDownstreamUnavailable. A 404 is returned as notFound when it
// is non-nil. Other 4xx responses are returned as APIError.
func (c *Client) do(ctx context.Context, method, path string, body, v any, notFound error) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := auth.CredentialFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := logger.RequestID(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}
	if c.service != "" {
		req.Header.Set(auth.ServiceTokenHeader, c.service)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.OutboundCall(c.target, outcomeUnavailable)
		c.log.WarnContext(ctx, "sibling call failed", "method", method, "path", path, "request_id", logger.RequestID(ctx), "error", err)
		return fmt.Errorf("%s %s %s: %w: %w", c.target, method, path, apperrors.ErrDownstreamUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.OutboundCall(c.target, outcomeUnavailable)
		return fmt.Errorf("%s %s %s: read body: %w: %w", c.target, method, path, apperrors.ErrDownstreamUnavailable, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &env); err != nil && resp.StatusCode < http.StatusBadRequest {
			c.metrics.OutboundCall(c.target, outcomeUnavailable)
			return fmt.Errorf("%s %s %s: decode response: %w: %w", c.target, method, path, apperrors.ErrDownstreamUnavailable, err)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := APIError{Status: resp.StatusCode, Message: strings.TrimSpace(env.Error)}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return c.statusError(ctx, method, path, apiErr, notFound)
	}

	c.metrics.OutboundCall(c.target, outcomeOK)
	if v == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%s %s %s: decode data: %w: %w", c.target, method, path, apperrors.ErrDownstreamUnavailable, err)
	}
	return nil
}

func (c *Client) statusError(ctx context.Context, method, path string, apiErr APIError, notFound error) error {
	switch {
	case apiErr.Status >= http.StatusInternalServerError:
		c.metrics.OutboundCall(c.target, outcomeUnavailable)
		c.log.WarnContext(ctx, "sibling returned server error", "method", method, "path", path, "status", apiErr.Status, "request_id", logger.RequestID(ctx))
		return fmt.Errorf("%s %s %s: %w: %w", c.target, method, path, apperrors.ErrDownstreamUnavailable, apiErr)
	case apiErr.Status == http.StatusNotFound && notFound != nil:
		c.metrics.OutboundCall(c.target, outcomeRejected)
		return notFound
	case apiErr.Status == http.StatusUnauthorized:
		c.metrics.OutboundCall(c.target, outcomeRejected)
		return fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, apiErr)
	default:
		c.metrics.OutboundCall(c.target, outcomeRejected)
		return apiErr
	}
}
