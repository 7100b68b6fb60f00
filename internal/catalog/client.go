// Package catalog is the read-only store/product surface. Everything
// here is presentational data sourced verbatim from the service; the
// client owns none of it.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	dErrors "trolley/pkg/domain-errors"
)

// Gateway is the slice of the request gateway the catalog needs.
type Gateway interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Client reads stores and products.
type Client struct {
	gw Gateway
}

func NewClient(gw Gateway) *Client {
	return &Client{gw: gw}
}

// Stores lists every store.
func (c *Client) Stores(ctx context.Context) ([]Store, error) {
	var stores []Store
	if err := c.gw.Do(ctx, http.MethodGet, "/stores/", nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// Store fetches a single store by id.
func (c *Client) Store(ctx context.Context, id int64) (Store, error) {
	var store Store
	path := fmt.Sprintf("/stores/%d", id)
	if err := c.gw.Do(ctx, http.MethodGet, path, nil, &store); err != nil {
		return Store{}, err
	}
	return store, nil
}

// Products lists products, optionally scoped to a store.
func (c *Client) Products(ctx context.Context, storeID int64) ([]Product, error) {
	path := "/products/"
	if storeID > 0 {
		query := url.Values{"store_id": {strconv.FormatInt(storeID, 10)}}
		path += "?" + query.Encode()
	}
	var products []Product
	if err := c.gw.Do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Search finds products by name. An empty query is rejected locally; the
// service would reject it anyway and the round trip buys nothing.
func (c *Client) Search(ctx context.Context, query string, storeID int64) ([]Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "search term must not be empty")
	}

	values := url.Values{"q": {query}}
	if storeID > 0 {
		values.Set("store_id", strconv.FormatInt(storeID, 10))
	}
	var products []Product
	if err := c.gw.Do(ctx, http.MethodGet, "/products/search?"+values.Encode(), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductByBarcode resolves a scanned barcode. A miss surfaces as
// CodeNotFound: a user-visible state, not a fault.
func (c *Client) ProductByBarcode(ctx context.Context, code string) (Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Product{}, dErrors.New(dErrors.CodeValidation, "barcode must not be empty")
	}
	var product Product
	if err := c.gw.Do(ctx, http.MethodGet, "/products/barcode/"+url.PathEscape(code), nil, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id int64) (Product, error) {
	var product Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.gw.Do(ctx, http.MethodGet, path, nil, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// Storefront fetches a store and its products concurrently.
func (c *Client) Storefront(ctx context.Context, storeID int64) (Storefront, error) {
	var view Storefront

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		store, err := c.Store(gctx, storeID)
		if err != nil {
			return err
		}
		view.Store = store
		return nil
	})
	g.Go(func() error {
		products, err := c.Products(gctx, storeID)
		if err != nil {
			return err
		}
		view.Products = products
		return nil
	})

	if err := g.Wait(); err != nil {
		return Storefront{}, err
	}
	return view, nil
}
