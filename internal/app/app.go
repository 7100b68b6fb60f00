// Package app wires the gateway, session manager, cart coordinator and
// catalog client together and implements the authorization-failure
// propagation policy: every rejected credential routes through the same
// session reset, and the action that tripped it can be remembered for
// replay after re-authentication.
package app

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"trolley/internal/cart"
	"trolley/internal/catalog"
	"trolley/internal/gateway"
	"trolley/internal/platform/config"
	"trolley/internal/platform/logger"
	"trolley/internal/platform/metrics"
	"trolley/internal/session"
	dErrors "trolley/pkg/domain-errors"
)

// App bundles the client's coordinating components.
type App struct {
	Gateway *gateway.Client
	Session *session.Manager
	Cart    *cart.Coordinator
	Catalog *catalog.Client

	logger *slog.Logger

	mu      sync.Mutex
	pending func(ctx context.Context) error
}

type appConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	slot    session.CredentialStore
	http    *http.Client
}

// Option configures an App.
type Option func(*appConfig)

// WithLogger attaches a logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(c *appConfig) { c.logger = l }
}

// WithMetrics attaches the client metrics set.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *appConfig) { c.metrics = m }
}

// WithCredentialStore overrides the durable slot (tests use the
// in-memory store).
func WithCredentialStore(s session.CredentialStore) Option {
	return func(c *appConfig) { c.slot = s }
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *appConfig) { c.http = h }
}

// New wires an App against the configured service.
func New(cfg config.Client, opts ...Option) (*App, error) {
	ac := &appConfig{}
	for _, opt := range opts {
		opt(ac)
	}
	if ac.logger == nil {
		ac.logger = logger.Discard()
	}
	if ac.slot == nil {
		ac.slot = session.NewFileStore(cfg.TokenFile)
	}
	if ac.http == nil {
		ac.http = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	cred := session.NewCredential()
	gw, err := gateway.New(cfg.APIBaseURL, cred,
		gateway.WithHTTPClient(ac.http),
		gateway.WithLogger(ac.logger),
		gateway.WithMetrics(ac.metrics),
	)
	if err != nil {
		return nil, err
	}

	mgr := session.NewManager(gw, ac.slot, cred,
		session.WithLogger(ac.logger),
		session.WithMetrics(ac.metrics),
	)
	crt := cart.NewCoordinator(gw, cred,
		cart.WithLogger(ac.logger),
		cart.WithMetrics(ac.metrics),
	)

	return &App{
		Gateway: gw,
		Session: mgr,
		Cart:    crt,
		Catalog: catalog.NewClient(gw),
		logger:  ac.logger,
	}, nil
}

// Bootstrap restores the session from the durable slot at startup.
func (a *App) Bootstrap(ctx context.Context) error {
	return a.Session.Bootstrap(ctx)
}

// HandleAuthFailure inspects err; on an authorization failure it resets
// session and cart (the logout transition) and reports true so the
// caller can redirect to authentication. Every other error reports
// false and is left for the caller to surface.
func (a *App) HandleAuthFailure(err error) bool {
	if err == nil || !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		return false
	}
	a.Session.ExpireAndReset()
	a.Cart.Reset()
	return true
}

// RememberPending records an action to replay once the shopper has
// re-authenticated, e.g. the cart mutation that tripped the expiry.
func (a *App) RememberPending(fn func(ctx context.Context) error) {
	a.mu.Lock()
	a.pending = fn
	a.mu.Unlock()
}

// ReplayPending runs and clears the remembered action, if any.
func (a *App) ReplayPending(ctx context.Context) error {
	a.mu.Lock()
	fn := a.pending
	a.pending = nil
	a.mu.Unlock()

	if fn == nil {
		return nil
	}
	return fn(ctx)
}
