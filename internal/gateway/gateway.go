// Package gateway is the single outbound HTTP surface to the catalog and
// identity service. It attaches the current credential to every request,
// stamps request IDs, and maps transport and status failures onto the
// domain error taxonomy. It never reacts to authorization failures
// itself; routing those through the session reset is the caller's job.
package gateway

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

	"github.com/google/uuid"

	"trolley/internal/platform/logger"
	"trolley/internal/platform/metrics"
	dErrors "trolley/pkg/domain-errors"
)

// CredentialSource yields the bearer credential current at call time.
// The gateway must never capture a credential at construction: it can
// change between requests within a single process lifetime.
type CredentialSource interface {
	// Token returns the active credential and whether one is present.
	Token() (string, bool)
}

// Client is the request gateway.
type Client struct {
	base    *url.URL
	http    *http.Client
	creds   CredentialSource
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type clientConfig struct {
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Client.
type Option func(*clientConfig)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *clientConfig) { c.http = h }
}

// WithLogger attaches a logger for request-level diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// WithMetrics attaches request counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *clientConfig) { c.metrics = m }
}

// New builds a gateway client for the given service root.
func New(baseURL string, creds CredentialSource, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.http == nil {
		cfg.http = &http.Client{}
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}

	return &Client{
		base:    base,
		http:    cfg.http,
		creds:   creds,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}, nil
}

// Do issues a JSON request. body may be nil; out may be nil when the
// caller does not care about the response payload.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}
	return c.send(ctx, method, path, "application/json", reader, out)
}

// PostForm issues a form-encoded POST. The login exchange is the one
// endpoint that expects form fields rather than JSON.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	reader := strings.NewReader(form.Encode())
	return c.send(ctx, http.MethodPost, path, "application/x-www-form-urlencoded", reader, out)
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	target, err := c.resolve(path)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "resolve request path")
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Read the credential at call time, never from a value captured at
	// construction. Absence sends the request unauthenticated.
	if token, ok := c.creds.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.IncRequest(method, "network")
		c.logger.Warn("request failed before a response", "method", method, "path", path, "err", err)
		return dErrors.Wrap(err, dErrors.CodeNetwork, fmt.Sprintf("%s %s", method, path))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := statusError(resp.StatusCode, resp.Body)
		c.metrics.IncRequest(method, string(dErrors.CodeOf(err)))
		c.logger.Debug("request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return err
	}

	c.metrics.IncRequest(method, "ok")

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "decode response body")
	}
	return nil
}

// resolve joins path (optionally carrying a query string) onto the base URL.
func (c *Client) resolve(path string) (string, error) {
	p := path
	query := ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		p, query = path[:i], path[i+1:]
	}
	u := c.base.JoinPath(p)
	// JoinPath trims a trailing slash the backend's list routes require.
	if strings.HasSuffix(p, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = query
	return u.String(), nil
}

// errorBody is the remote service's error envelope.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func statusError(status int, body io.Reader) error {
	detail := readDetail(body)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if detail == "" {
			detail = "credential missing or rejected"
		}
		return dErrors.New(dErrors.CodeUnauthorized, detail)
	case status == http.StatusNotFound:
		if detail == "" {
			detail = "not found"
		}
		return dErrors.New(dErrors.CodeNotFound, detail)
	case status == http.StatusConflict:
		if detail == "" {
			detail = "conflict"
		}
		return dErrors.New(dErrors.CodeConflict, detail)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if detail == "" {
			detail = "request rejected"
		}
		return dErrors.New(dErrors.CodeValidation, detail)
	default:
		return dErrors.Newf(dErrors.CodeInternal, "unexpected status %d", status)
	}
}

// readDetail extracts the service's detail field. The field is a string
// on handler errors and a structured list on validation errors; both are
// surfaced as text.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope errorBody
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}
	return string(envelope.Detail)
}
