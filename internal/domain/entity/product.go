package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold applies when a product is created without one.
const DefaultLowStockThreshold = 10

// Product represents a catalog product. Stock never changes through a plain
// update: every mutation goes through the stock engine and leaves a ledger entry.
type Product struct {
	ID                string
	Name              string
	Description       string
	Price             decimal.Decimal // sale price
	CategoryID        string          // optional, empty = uncategorized
	Stock             int             // current balance, >= 0 after any committed mutation
	LowStockThreshold int             // restock alert trigger, >= 0
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
