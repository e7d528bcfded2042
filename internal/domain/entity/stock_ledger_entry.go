package entity

import "time"

// ChangeType is the closed set of stock change kinds. Free-form strings are
// rejected so typos cannot accumulate in the ledger.
type ChangeType string

const (
	ChangeInitial    ChangeType = "initial"    // first stock at product creation
	ChangeSale       ChangeType = "sale"       // order placement
	ChangeReturn     ChangeType = "return"     // order cancellation
	ChangeRestock    ChangeType = "restock"    // manual positive delta
	ChangeDamage     ChangeType = "damage"     // manual reduction due to damage
	ChangeAdjustment ChangeType = "adjustment" // any other manual correction
)

// Valid reports whether t is one of the declared change types.
func (t ChangeType) Valid() bool {
	switch t {
	case ChangeInitial, ChangeSale, ChangeReturn, ChangeRestock, ChangeDamage, ChangeAdjustment:
		return true
	}
	return false
}

// StockLedgerEntry is an immutable audit record of one stock change.
// Invariant: NewStock == PreviousStock + Quantity. Entries are append-only and
// deleted only as a cascade when the owning product is deleted.
type StockLedgerEntry struct {
	ID            string
	ProductID     string
	Type          ChangeType
	Quantity      int // signed delta
	PreviousStock int // snapshot before the change
	NewStock      int // snapshot after the change
	AdminID       string // acting admin, empty for system-originated changes
	OrderID       string // related order for sale/return entries
	Reason        string
	Notes         string
	CreatedAt     time.Time
}
