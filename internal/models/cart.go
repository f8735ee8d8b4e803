package models

// CartEntry is a cart item joined with its product for display
type CartEntry struct {
	ProductID     int    `json:"productId"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price"`
	Quantity      int    `json:"quantity"`
	SubtotalCents int64  `json:"subtotal"`
}

// Cart is the full contents of a user's cart
type Cart struct {
	Items      []CartEntry `json:"items"`
	TotalCents int64       `json:"total"`
}

// CartItemRequest is the add/update payload for a cart item
type CartItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}
