package catalog

// Store is a physical store the shopper can browse.
type Store struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	ImageURL string `json:"image_url,omitempty"`
}

// Product is an immutable catalog entity. The client never mutates it.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Barcode     string  `json:"barcode"`
	ImageURL    string  `json:"image_url,omitempty"`
	StoreID     int64   `json:"store_id"`
}

// Storefront bundles a store with its product list for the one view that
// needs both.
type Storefront struct {
	Store    Store
	Products []Product
}
