// Package backend implements the HTTP client for the gym's REST backend.
// The backend owns all business state; this package only moves requests and
// authoritative responses across the wire, mapping failures onto the domain
// error taxonomy.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gymstore/storefront/internal/api/metrics"
	"github.com/gymstore/storefront/internal/core/domain"
)

// Client is the shared transport for all backend endpoint groups.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a Client for the backend at baseURL. The timeout bounds
// every round trip; a request that never resolves must not pin a handler
// forever.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// backendErrorBody covers the two error envelopes the backend emits.
type backendErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (b backendErrorBody) message() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Detail
}

// do performs one round trip. A bearer token is attached when non-empty; body
// is JSON-encoded when non-nil; a 2xx response is decoded into out when
// non-nil. Non-2xx responses become domain errors carrying the backend's
// reason so the UI can surface it verbatim.
func (c *Client) do(ctx context.Context, method, path, endpoint, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("backend unreachable")
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.BackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		return c.mapError(resp, endpoint)
	}
	metrics.BackendRequestDuration.WithLabelValues(endpoint, "ok").Observe(time.Since(start).Seconds())

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: undecodable response: %v", domain.ErrBackendUnavailable, err)
	}
	return nil
}

// Ping probes backend reachability for the readiness check. The product list
// is public and cheap, so it doubles as the health target.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/productos/", "health", "", nil, nil)
}

func (c *Client) mapError(resp *http.Response, endpoint string) error {
	var envelope backendErrorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &envelope)

	c.logger.Warn().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Str("reason", envelope.message()).
		Msg("backend rejected request")

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrAuthRequired
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		if msg := envelope.message(); msg != "" {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
		}
		return domain.ErrNotFound
	default:
		return &domain.BackendError{StatusCode: resp.StatusCode, Message: envelope.message()}
	}
}
