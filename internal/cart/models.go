package cart

import "trolley/internal/catalog"

// Item is one cart line. Quantity is always >= 1; removal is an explicit
// operation, never a zero-quantity update.
type Item struct {
	ID       int64           `json:"id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is the server-authoritative aggregate. The client never computes
// TotalPrice locally; every snapshot arrives whole from the service.
type Cart struct {
	Items      []Item  `json:"items"`
	TotalPrice float64 `json:"total_price"`
}
