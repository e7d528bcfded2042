package inventory

import (
	"context"

	"github.com/netyark/mall-api/internal/domain/repository"
)

// TxRunner executes a function inside one DB transaction, passing repositories
// bound to that tx. The stock balance update and its ledger entry always commit
// or roll back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
