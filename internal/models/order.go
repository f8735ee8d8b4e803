package models

import "time"

// OrderStatus is the lifecycle state of an order
type OrderStatus string

// Order status constants. Shipped and cancelled are terminal.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a placed order. Item names and unit prices are snapshots
// taken at checkout, so later catalog edits do not rewrite order history.
type Order struct {
	ID              int         `json:"id"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	ShippingAddress string      `json:"shippingAddress"`
	Status          OrderStatus `json:"status"`
	TotalCents      int64       `json:"total"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// OrderItem is one line of an order
type OrderItem struct {
	ID             int    `json:"id"`
	OrderID        int    `json:"orderId"`
	ProductID      int    `json:"productId"`
	ProductName    string `json:"productName"`
	UnitPriceCents int64  `json:"unitPrice"`
	Quantity       int    `json:"quantity"`
}

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// CreateOrderRequest is the POST /api/orders payload
type CreateOrderRequest struct {
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	ShippingAddress string             `json:"shippingAddress"`
	Items           []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest is the PUT /api/orders/{id} payload
type UpdateOrderRequest struct {
	Status OrderStatus `json:"status"`
}
