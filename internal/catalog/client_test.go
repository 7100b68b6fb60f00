package catalog_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trolley/internal/catalog"
	"trolley/internal/gateway"
	dErrors "trolley/pkg/domain-errors"
	"trolley/pkg/testutil"
)

type anonCreds struct{}

func (anonCreds) Token() (string, bool) { return "", false }

func newCatalog(t *testing.T, baseURL string) *catalog.Client {
	t.Helper()
	gw, err := gateway.New(baseURL, anonCreds{})
	require.NoError(t, err)
	return catalog.NewClient(gw)
}

var fixtureProducts = []catalog.Product{
	{ID: 1, Name: "Oat Milk", Price: 2.49, Barcode: "7310865004703", StoreID: 3},
	{ID: 2, Name: "Rye Bread", Price: 3.10, Barcode: "7310865001122", StoreID: 3},
}

func TestStores(t *testing.T) {
	stores := []catalog.Store{
		{ID: 3, Name: "Northside Market", Location: "12 Canal St"},
		{ID: 4, Name: "Harbour Grocers", Location: "8 Pier Rd"},
	}
	srv := testutil.NewBackend(t, func(r chi.Router) {
		r.Get("/stores/", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(t, w, http.StatusOK, stores)
		})
		r.Get("/stores/{id}", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(t, w, http.StatusOK, stores[0])
		})
	})

	c := newCatalog(t, srv.URL)

	got, err := c.Stores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stores, got)

	one, err := c.Store(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, stores[0], one)
}

func TestProductsScopedToStore(t *testing.T) {
	var gotStoreID string
	srv := testutil.NewBackend(t, func(r chi.Router) {
		r.Get("/products/", func(w http.ResponseWriter, r *http.Request) {
			gotStoreID = r.URL.Query().Get("store_id")
			testutil.WriteJSON(t, w, http.StatusOK, fixtureProducts)
		})
	})

	c := newCatalog(t, srv.URL)
	got, err := c.Products(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, fixtureProducts, got)
	assert.Equal(t, "3", gotStoreID)
}

func TestSearch(t *testing.T) {
	var calls atomic.Int32
	var gotQuery, gotStoreID string
	srv := testutil.NewBackend(t, func(r chi.Router) {
		r.Get("/products/search", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			gotQuery = r.URL.Query().Get("q")
			gotStoreID = r.URL.Query().Get("store_id")
			testutil.WriteJSON(t, w, http.StatusOK, fixtureProducts[:1])
		})
	})

	c := newCatalog(t, srv.URL)

	t.Run("empty query is rejected locally with no wire call", func(t *testing.T) {
		for _, q := range []string{"", "   "} {
			_, err := c.Search(context.Background(), q, 0)
			require.Error(t, err)
			assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
		}
		assert.Zero(t, calls.Load())
	})

	t.Run("query and store scope reach the service", func(t *testing.T) {
		got, err := c.Search(context.Background(), " milk ", 3)
		require.NoError(t, err)
		assert.Equal(t, fixtureProducts[:1], got)
		assert.Equal(t, "milk", gotQuery, "query arrives trimmed")
		assert.Equal(t, "3", gotStoreID)
	})
}

func TestProductByBarcode(t *testing.T) {
	srv := testutil.NewBackend(t, func(r chi.Router) {
		r.Get("/products/barcode/{code}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "code") != fixtureProducts[0].Barcode {
				testutil.WriteDetail(t, w, http.StatusNotFound, "Product not found")
				return
			}
			testutil.WriteJSON(t, w, http.StatusOK, fixtureProducts[0])
		})
	})

	c := newCatalog(t, srv.URL)

	got, err := c.ProductByBarcode(context.Background(), fixtureProducts[0].Barcode)
	require.NoError(t, err)
	assert.Equal(t, fixtureProducts[0], got)

	t.Run("a miss is a not-found state, not a fault", func(t *testing.T) {
		_, err := c.ProductByBarcode(context.Background(), "0000000000000")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func TestStorefront(t *testing.T) {
	store := catalog.Store{ID: 3, Name: "Northside Market", Location: "12 Canal St"}
	srv := testutil.NewBackend(t, func(r chi.Router) {
		r.Get("/stores/{id}", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(t, w, http.StatusOK, store)
		})
		r.Get("/products/", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(t, w, http.StatusOK, fixtureProducts)
		})
	})

	c := newCatalog(t, srv.URL)
	view, err := c.Storefront(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, store, view.Store)
	assert.Equal(t, fixtureProducts, view.Products)
}

func TestStorefrontPropagatesFailure(t *testing.T) {
	srv := testutil.NewBackend(t, func(r chi.Router) {
		r.Get("/stores/{id}", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteDetail(t, w, http.StatusNotFound, "Store not found")
		})
		r.Get("/products/", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(t, w, http.StatusOK, fixtureProducts)
		})
	})

	c := newCatalog(t, srv.URL)
	_, err := c.Storefront(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}
