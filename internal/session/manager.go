// Package session owns the authentication lifecycle: credential
// acquisition, durable storage, identity resolution, and invalidation.
// The manager is the only writer of the process-wide credential; every
// write happens inside an explicit lifecycle transition (bootstrap,
// login, logout, expiry reset), never as a side effect of anything else.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"trolley/internal/platform/logger"
	"trolley/internal/platform/metrics"
	dErrors "trolley/pkg/domain-errors"
	"trolley/pkg/platform/sentinel"
)

// Gateway is the slice of the request gateway the manager needs.
type Gateway interface {
	Do(ctx context.Context, method, path string, body, out any) error
	PostForm(ctx context.Context, path string, form url.Values, out any) error
}

// Manager drives the Anonymous / Resolving / Authenticated lifecycle.
type Manager struct {
	gw      Gateway
	slot    CredentialStore
	cred    *Credential
	logger  *slog.Logger
	metrics *metrics.Metrics

	// mu guards state, token and identity. token doubles as the tag for
	// in-flight identity resolutions: a resolution result is applied only
	// if the credential it was resolved for is still current.
	mu       sync.Mutex
	state    State
	token    string
	identity *Identity
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Manager.
type Option func(*serviceConfig)

// WithLogger attaches a logger for lifecycle diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = l }
}

// WithMetrics attaches transition counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

// NewManager builds a session manager. cred is the shared credential
// cell the gateway was constructed around; the manager becomes its sole
// writer.
func NewManager(gw Gateway, slot CredentialStore, cred *Credential, opts ...Option) *Manager {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}
	return &Manager{
		gw:      gw,
		slot:    slot,
		cred:    cred,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		state:   StateAnonymous,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Bootstrap checks the durable slot at application start. A stored
// credential moves the session to Resolving and fires identity
// resolution; any resolution failure is treated as an invalid credential
// and lands the session back in Anonymous with the slot cleared.
// Bootstrap never fails the process: an unreadable slot means anonymous.
func (m *Manager) Bootstrap(ctx context.Context) error {
	token, err := m.slot.Load(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		m.logger.Warn("credential slot unreadable, starting anonymous", "err", err)
		return nil
	}

	m.beginResolving(token)
	return m.resolveIdentity(ctx, token)
}

// Login exchanges credentials for a bearer token, persists it durably,
// then resolves the identity inline so callers can rely on
// CurrentIdentity being populated immediately on success.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	form := url.Values{
		"username": {email},
		"password": {password},
	}
	var tr tokenResponse
	if err := m.gw.PostForm(ctx, "/auth/login", form, &tr); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return err
	}
	if tr.AccessToken == "" {
		return dErrors.New(dErrors.CodeInternal, "login response missing access token")
	}

	// The exchange must be durable before resolution is issued; the two
	// are sequentially dependent, not concurrent.
	if err := m.slot.Save(ctx, tr.AccessToken); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "persist credential")
	}

	m.beginResolving(tr.AccessToken)
	return m.resolveIdentity(ctx, tr.AccessToken)
}

// Register creates the account, then performs the full login sequence.
// Registration never leaves the session half-authenticated: either the
// whole chain succeeds or the session is unchanged.
func (m *Manager) Register(ctx context.Context, email, password, fullName string) error {
	payload := registerRequest{Email: email, Password: password, FullName: fullName}
	if err := m.gw.Do(ctx, http.MethodPost, "/auth/register", payload, nil); err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			return dErrors.New(dErrors.CodeConflict, "account already exists")
		}
		return err
	}
	return m.Login(ctx, email, password)
}

// Logout clears credential and identity unconditionally. It never fails:
// a slot clear error is logged, not surfaced, and the in-memory state is
// already anonymous by then.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.identity = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	m.cred.clear()
	if err := m.slot.Clear(context.Background()); err != nil {
		m.logger.Warn("credential slot clear failed", "err", err)
	}
	m.metrics.IncTransition(string(StateAnonymous))
}

// ExpireAndReset is the route every detected authorization failure takes:
// same terminal transition as an explicit logout. Expired is a trigger,
// not a state the session persists in.
func (m *Manager) ExpireAndReset() {
	m.logger.Info("credential rejected by the service, resetting session")
	m.metrics.IncTransition("expired")
	m.Logout()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentIdentity returns the resolved identity, if any.
func (m *Manager) CurrentIdentity() (Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return Identity{}, false
	}
	return *m.identity, true
}

// Claims returns the unverified claims of the active credential for
// logging and UI hints. Informational only.
func (m *Manager) Claims() (TokenClaims, bool) {
	token, ok := m.cred.Token()
	if !ok {
		return TokenClaims{}, false
	}
	return PeekClaims(token)
}

func (m *Manager) beginResolving(token string) {
	m.mu.Lock()
	m.token = token
	m.identity = nil
	m.state = StateResolving
	m.mu.Unlock()

	m.cred.store(token)
	m.metrics.IncTransition(string(StateResolving))
}

// resolveIdentity issues GET /users/me for the credential tagged by tag.
// The network call runs unlocked; on completion the result is applied
// only if that credential is still current, so a superseded resolution
// is discarded rather than clobbering a newer session.
func (m *Manager) resolveIdentity(ctx context.Context, tag string) error {
	var ident Identity
	err := m.gw.Do(ctx, http.MethodGet, "/users/me", nil, &ident)

	m.mu.Lock()
	if m.token != tag {
		m.mu.Unlock()
		m.logger.Debug("discarding stale identity resolution")
		return nil
	}

	if err != nil {
		m.token = ""
		m.identity = nil
		m.state = StateAnonymous
		m.mu.Unlock()

		m.cred.clear()
		if clearErr := m.slot.Clear(ctx); clearErr != nil {
			m.logger.Warn("credential slot clear failed", "err", clearErr)
		}
		m.metrics.IncTransition(string(StateAnonymous))
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, "identity resolution failed")
	}

	m.identity = &ident
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.metrics.IncTransition(string(StateAuthenticated))
	m.logger.Info("signed in", "email", ident.Email)
	return nil
}
