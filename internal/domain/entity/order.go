package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the declared order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is one line of an order. ProductName and UnitPrice are snapshots
// taken at placement so later catalog edits do not rewrite order history.
type OrderItem struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Order represents a customer order. Placing it records one sale ledger entry
// per item; transitioning to cancelled records the matching returns.
type Order struct {
	ID           string
	CustomerName string
	Status       string
	Items        []OrderItem
	Total        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
