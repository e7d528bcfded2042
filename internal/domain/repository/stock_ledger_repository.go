package repository

import (
	"time"

	"github.com/netyark/mall-api/internal/domain/entity"
)

// StockLedgerRepository defines the persistence port for the append-only stock
// ledger. There is no Update: entries are create-once, read-many, and removed
// only as a cascade when the owning product is deleted.
type StockLedgerRepository interface {
	Create(entry *entity.StockLedgerEntry) error
	GetByID(id string) (*entity.StockLedgerEntry, error)
	List(changeType entity.ChangeType, from, to *time.Time, limit, offset int) ([]*entity.StockLedgerEntry, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockLedgerEntry, error)
	ListByOrder(orderID string) ([]*entity.StockLedgerEntry, error)
	DeleteByProduct(productID string) error
}
