package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest one line of an order being placed.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest body for POST /api/orders.
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Items        []OrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest body for PUT /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse one line of an order.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// OrderResponse output for an order. StockMovements holds the sale/return
// ledger entries the order produced; it is filled only on the detail view.
type OrderResponse struct {
	ID             string                `json:"id"`
	CustomerName   string                `json:"customer_name"`
	Status         string                `json:"status"`
	Items          []OrderItemResponse   `json:"items"`
	Total          decimal.Decimal       `json:"total"`
	StockMovements []LedgerEntryResponse `json:"stock_movements,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// OrderListResponse paginated order list.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
