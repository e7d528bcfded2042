package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest input to create a product. InitialStock seeds the stock
// ledger with the product's first entry.
type CreateProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	CategoryID        string          `json:"category_id"`
	InitialStock      int             `json:"initial_stock"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
}

// UpdateProductRequest input to update a product. Stock is absent on purpose:
// it only moves through the inventory endpoints and orders.
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	CategoryID        *string          `json:"category_id"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
}

// ProductResponse output for a product, with derived stock flags.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	CategoryID        string          `json:"category_id,omitempty"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	OutOfStock        bool            `json:"out_of_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse paginated product list.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
