package dto

import "time"

// RestockRequest body for POST /api/inventory/restock.
type RestockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ReduceRequest body for POST /api/inventory/reduce. Reason is required so the
// ledger always explains a manual reduction.
type ReduceRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes,omitempty"`
}

// AdjustRequest body for POST /api/inventory/adjust. NewStock is the absolute
// target balance.
type AdjustRequest struct {
	ProductID string `json:"product_id"`
	NewStock  int    `json:"new_stock"`
	Reason    string `json:"reason,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// StockChangeResponse result of a manual stock mutation. The same shape serves
// restock, reduce and adjust; quantity_added is the signed delta applied.
type StockChangeResponse struct {
	ProductID     string `json:"product_id"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	Quantity      int    `json:"quantity_added"`
}

// LedgerEntryResponse one stock ledger entry.
type LedgerEntryResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	AdminID       string    `json:"admin_id,omitempty"`
	OrderID       string    `json:"order_id,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// LedgerListResponse paginated ledger projection.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
