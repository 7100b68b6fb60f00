package app_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trolley/internal/app"
	"trolley/internal/cart"
	"trolley/internal/catalog"
	"trolley/internal/platform/config"
	"trolley/internal/session"
	dErrors "trolley/pkg/domain-errors"
	"trolley/pkg/platform/sentinel"
	"trolley/pkg/testutil"
)

// identityService is a small scripted stand-in for the real backend:
// form login, registration, identity resolution, and a cart that starts
// rejecting every call once expire() is flipped.
type identityService struct {
	t *testing.T

	mu       sync.Mutex
	accounts map[string]string
	tokens   map[string]session.Identity
	nextTok  string
	expired  bool

	meBearers   []string
	cartBearers []string
	lastAdd     map[string]any
	serverCart  cart.Cart
}

func newIdentityService(t *testing.T) *identityService {
	return &identityService{
		t:        t,
		accounts: map[string]string{"a@b.com": "pw"},
		tokens:   map[string]session.Identity{},
		nextTok:  "T1",
	}
}

func (svc *identityService) expire() {
	svc.mu.Lock()
	svc.expired = true
	svc.mu.Unlock()
}

func (svc *identityService) router(r chi.Router) {
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(svc.t, r.ParseForm())
		email := r.PostFormValue("username")
		password := r.PostFormValue("password")

		svc.mu.Lock()
		defer svc.mu.Unlock()
		if svc.accounts[email] != password || password == "" {
			testutil.WriteDetail(svc.t, w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		token := svc.nextTok
		svc.tokens[token] = session.Identity{ID: 7, Email: email, FullName: "Ada Shopper"}
		testutil.WriteJSON(svc.t, w, http.StatusOK, map[string]string{"access_token": token})
	})

	r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		body := testutil.ReadJSON[map[string]string](svc.t, r)

		svc.mu.Lock()
		defer svc.mu.Unlock()
		if _, exists := svc.accounts[body["email"]]; exists {
			testutil.WriteDetail(svc.t, w, http.StatusConflict, "Email already registered")
			return
		}
		svc.accounts[body["email"]] = body["password"]
		testutil.WriteJSON(svc.t, w, http.StatusOK, map[string]any{"id": 8, "email": body["email"], "full_name": body["full_name"]})
	})

	r.Get("/users/me", func(w http.ResponseWriter, r *http.Request) {
		bearer := testutil.BearerOf(r)

		svc.mu.Lock()
		defer svc.mu.Unlock()
		svc.meBearers = append(svc.meBearers, bearer)
		ident, ok := svc.tokens[bearer]
		if !ok || svc.expired {
			testutil.WriteDetail(svc.t, w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		testutil.WriteJSON(svc.t, w, http.StatusOK, ident)
	})

	cartHandler := func(mutate func(*http.Request)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			bearer := testutil.BearerOf(r)

			svc.mu.Lock()
			defer svc.mu.Unlock()
			svc.cartBearers = append(svc.cartBearers, bearer)
			if _, ok := svc.tokens[bearer]; !ok || svc.expired {
				testutil.WriteDetail(svc.t, w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}
			if mutate != nil {
				mutate(r)
			}
			testutil.WriteJSON(svc.t, w, http.StatusOK, svc.serverCart)
		}
	}

	r.Get("/cart/", cartHandler(nil))
	r.Post("/cart/items", cartHandler(func(r *http.Request) {
		svc.lastAdd = testutil.ReadJSON[map[string]any](svc.t, r)
		svc.serverCart = cart.Cart{
			Items: []cart.Item{{
				ID:       1,
				Quantity: int(svc.lastAdd["quantity"].(float64)),
				Product:  catalog.Product{ID: int64(svc.lastAdd["product_id"].(float64)), Name: "Oat Milk", Price: 2.49, Barcode: "7310865004703", StoreID: 3},
			}},
			TotalPrice: 2.49 * svc.lastAdd["quantity"].(float64),
		}
	}))
}

func newApp(t *testing.T, svc *identityService, slot session.CredentialStore) *app.App {
	t.Helper()
	srv := testutil.NewBackend(t, svc.router)
	a, err := app.New(
		config.Client{APIBaseURL: srv.URL},
		app.WithCredentialStore(slot),
	)
	require.NoError(t, err)
	return a
}

// TestShoppingSessionLifecycle walks the whole flow: anonymous start,
// login, authenticated cart mutation, mid-session credential expiry.
func TestShoppingSessionLifecycle(t *testing.T) {
	svc := newIdentityService(t)
	slot := session.NewInMemoryStore()
	a := newApp(t, svc, slot)
	ctx := context.Background()

	require.NoError(t, a.Bootstrap(ctx))
	assert.Equal(t, session.StateAnonymous, a.Session.State())

	// Login: credential becomes T1, durable, and identity resolves with it.
	require.NoError(t, a.Session.Login(ctx, "a@b.com", "pw"))
	assert.Equal(t, session.StateAuthenticated, a.Session.State())

	stored, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T1", stored)
	require.NotEmpty(t, svc.meBearers)
	assert.Equal(t, "T1", svc.meBearers[len(svc.meBearers)-1])

	ident, ok := a.Session.CurrentIdentity()
	require.True(t, ok)
	assert.Equal(t, "a@b.com", ident.Email)

	// Cart mutation carries the credential and mirrors the response.
	snapshot, err := a.Cart.AddItem(ctx, 42, 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"product_id": float64(42), "quantity": float64(1)}, svc.lastAdd)
	assert.Equal(t, "T1", svc.cartBearers[len(svc.cartBearers)-1])
	assert.Equal(t, svc.serverCart, snapshot)

	// The service starts rejecting the credential mid-session.
	svc.expire()
	_, err = a.Cart.Fetch(ctx)
	require.Error(t, err)
	require.True(t, a.HandleAuthFailure(err))

	assert.Equal(t, session.StateAnonymous, a.Session.State())
	_, ok = a.Session.CurrentIdentity()
	assert.False(t, ok)
	_, err = slot.Load(ctx)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, ok = a.Cart.Snapshot()
	assert.False(t, ok)
}

func TestRegisterLeavesSessionAuthenticated(t *testing.T) {
	svc := newIdentityService(t)
	a := newApp(t, svc, session.NewInMemoryStore())
	ctx := context.Background()

	require.NoError(t, a.Session.Register(ctx, "new@b.com", "secret", "New Shopper"))
	assert.Equal(t, session.StateAuthenticated, a.Session.State())
	ident, ok := a.Session.CurrentIdentity()
	require.True(t, ok)
	assert.Equal(t, "new@b.com", ident.Email)

	t.Run("duplicate registration reports conflict", func(t *testing.T) {
		err := a.Session.Register(ctx, "a@b.com", "pw", "Someone Else")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
	})
}

func TestHandleAuthFailureIgnoresOtherErrors(t *testing.T) {
	svc := newIdentityService(t)
	a := newApp(t, svc, session.NewInMemoryStore())

	assert.False(t, a.HandleAuthFailure(nil))
	assert.False(t, a.HandleAuthFailure(dErrors.New(dErrors.CodeNetwork, "dial failed")))
	assert.False(t, a.HandleAuthFailure(dErrors.New(dErrors.CodeNotFound, "no such product")))
}

func TestPendingActionReplaysAfterReauthentication(t *testing.T) {
	svc := newIdentityService(t)
	a := newApp(t, svc, session.NewInMemoryStore())
	ctx := context.Background()

	require.NoError(t, a.Session.Login(ctx, "a@b.com", "pw"))
	svc.expire()

	_, err := a.Cart.AddItem(ctx, 42, 2)
	require.Error(t, err)
	require.True(t, a.HandleAuthFailure(err))
	a.RememberPending(func(ctx context.Context) error {
		_, err := a.Cart.AddItem(ctx, 42, 2)
		return err
	})

	// The shopper signs back in; the service issues a fresh token.
	svc.mu.Lock()
	svc.expired = false
	svc.nextTok = "T2"
	svc.mu.Unlock()
	require.NoError(t, a.Session.Login(ctx, "a@b.com", "pw"))

	require.NoError(t, a.ReplayPending(ctx))
	assert.Equal(t, "T2", svc.cartBearers[len(svc.cartBearers)-1])
	held, ok := a.Cart.Snapshot()
	require.True(t, ok)
	require.Len(t, held.Items, 1)
	assert.Equal(t, 2, held.Items[0].Quantity)

	t.Run("replay is one-shot", func(t *testing.T) {
		require.NoError(t, a.ReplayPending(ctx))
	})
}
