// Package cart owns the client's view of the shopping cart. The remote
// cart is the single source of truth: every mutation replaces the held
// snapshot with the server's response in full, so there is no optimistic
// local state and nothing to roll back on failure.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"trolley/internal/platform/logger"
	"trolley/internal/platform/metrics"
	dErrors "trolley/pkg/domain-errors"
)

// Gateway is the slice of the request gateway the coordinator needs.
type Gateway interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// CredentialSource answers whether a credential currently exists. Cart
// operations fail fast without one; callers are expected to check the
// session and redirect to authentication before invoking them.
type CredentialSource interface {
	Token() (string, bool)
}

// Coordinator mirrors the remote cart.
type Coordinator struct {
	gw      Gateway
	creds   CredentialSource
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	snapshot *Cart
}

type coordinatorConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Coordinator.
type Option func(*coordinatorConfig)

// WithLogger attaches a logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *coordinatorConfig) { c.logger = l }
}

// WithMetrics attaches mutation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *coordinatorConfig) { c.metrics = m }
}

// NewCoordinator builds a cart coordinator bound to the shared
// credential cell.
func NewCoordinator(gw Gateway, creds CredentialSource, opts ...Option) *Coordinator {
	cfg := &coordinatorConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}
	return &Coordinator{
		gw:      gw,
		creds:   creds,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// Snapshot returns the last cart returned by the service, absent before
// the first fetch and after a reset.
func (c *Coordinator) Snapshot() (Cart, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return Cart{}, false
	}
	return *c.snapshot, true
}

// Reset drops the held snapshot. Invoked alongside a session reset: the
// cart's lifetime is bounded by the session.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}

// Fetch reads the full cart snapshot.
func (c *Coordinator) Fetch(ctx context.Context) (Cart, error) {
	return c.roundTrip(ctx, "fetch", http.MethodGet, "/cart/", nil)
}

// AddItem appends or increments a product server-side and returns the
// new full snapshot.
func (c *Coordinator) AddItem(ctx context.Context, productID int64, quantity int) (Cart, error) {
	if quantity < 1 {
		c.metrics.IncCartMutation("add", "rejected")
		return Cart{}, dErrors.New(dErrors.CodeValidation, "quantity must be at least 1")
	}
	body := addItemRequest{ProductID: productID, Quantity: quantity}
	return c.roundTrip(ctx, "add", http.MethodPost, "/cart/items", body)
}

// SetQuantity replaces a line's quantity. A quantity below 1 is rejected
// locally with no wire call and the held snapshot untouched: removal is
// only ever the explicit RemoveItem.
func (c *Coordinator) SetQuantity(ctx context.Context, itemID int64, quantity int) (Cart, error) {
	if quantity < 1 {
		c.metrics.IncCartMutation("update", "rejected")
		return Cart{}, dErrors.New(dErrors.CodeValidation, "quantity must be at least 1")
	}
	body := updateItemRequest{Quantity: quantity}
	path := fmt.Sprintf("/cart/items/%d", itemID)
	return c.roundTrip(ctx, "update", http.MethodPut, path, body)
}

// RemoveItem removes a line entirely.
func (c *Coordinator) RemoveItem(ctx context.Context, itemID int64) (Cart, error) {
	path := fmt.Sprintf("/cart/items/%d", itemID)
	return c.roundTrip(ctx, "remove", http.MethodDelete, path, nil)
}

// Clear empties the cart. Destructive; the calling layer must confirm
// with the user before invoking it.
func (c *Coordinator) Clear(ctx context.Context) (Cart, error) {
	return c.roundTrip(ctx, "clear", http.MethodDelete, "/cart/", nil)
}

func (c *Coordinator) roundTrip(ctx context.Context, op, method, path string, body any) (Cart, error) {
	if _, ok := c.creds.Token(); !ok {
		c.metrics.IncCartMutation(op, "unauthenticated")
		return Cart{}, dErrors.New(dErrors.CodeUnauthorized, "not signed in")
	}

	var next Cart
	if err := c.gw.Do(ctx, method, path, body, &next); err != nil {
		// No retry on authorization failures; the caller routes them
		// through the session reset. The held snapshot stays as-is.
		c.metrics.IncCartMutation(op, string(dErrors.CodeOf(err)))
		return Cart{}, err
	}

	c.mu.Lock()
	c.snapshot = &next
	c.mu.Unlock()

	c.metrics.IncCartMutation(op, "ok")
	c.logger.Debug("cart snapshot replaced", "op", op, "items", len(next.Items))
	return next, nil
}
