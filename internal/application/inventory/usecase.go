package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/netyark/mall-api/internal/application/dto"
	"github.com/netyark/mall-api/internal/domain"
	"github.com/netyark/mall-api/internal/domain/entity"
	"github.com/netyark/mall-api/internal/domain/repository"
)

// StockUseCase owns every mutation of a product's stock balance. Each mutation
// runs in one transaction that locks the product row (SELECT FOR UPDATE),
// enforces the stock floor, writes the new balance and appends exactly one
// ledger entry. Concurrent mutations on the same product serialize on the row
// lock, so ledger entries always chain (entry[i].NewStock == entry[i+1].PreviousStock).
type StockUseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	ledger   repository.StockLedgerRepository
}

// NewStockUseCase builds the use case. products and ledger are pool-bound
// repositories used for read-only projections.
func NewStockUseCase(txRunner TxRunner, products repository.ProductRepository, ledger repository.StockLedgerRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, products: products, ledger: ledger}
}

// Restock adds a positive quantity to a product's stock (manual, admin-initiated).
func (uc *StockUseCase) Restock(ctx context.Context, adminID string, in dto.RestockRequest) (*dto.StockChangeResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.applyManual(ctx, in.ProductID, manualChange{
		delta:   in.Quantity,
		typ:     entity.ChangeRestock,
		adminID: adminID,
		reason:  in.Reason,
		notes:   in.Notes,
	})
}

// Reduce subtracts a positive quantity; fails with ErrInsufficientStock if the
// result would be negative. A reason is mandatory; "damage" maps to its own
// ledger change type.
func (uc *StockUseCase) Reduce(ctx context.Context, adminID string, in dto.ReduceRequest) (*dto.StockChangeResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 || strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	typ := entity.ChangeAdjustment
	if strings.EqualFold(strings.TrimSpace(in.Reason), "damage") {
		typ = entity.ChangeDamage
	}
	return uc.applyManual(ctx, in.ProductID, manualChange{
		delta:   -in.Quantity,
		typ:     typ,
		adminID: adminID,
		reason:  in.Reason,
		notes:   in.Notes,
	})
}

// Adjust sets the absolute stock balance; the ledger entry records the computed
// delta. The target must be non-negative.
func (uc *StockUseCase) Adjust(ctx context.Context, adminID string, in dto.AdjustRequest) (*dto.StockChangeResponse, error) {
	if in.ProductID == "" || in.NewStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.applyManual(ctx, in.ProductID, manualChange{
		target:  &in.NewStock,
		typ:     entity.ChangeAdjustment,
		adminID: adminID,
		reason:  in.Reason,
		notes:   in.Notes,
	})
}

// manualChange is either a signed delta or an absolute target.
type manualChange struct {
	delta   int
	target  *int
	typ     entity.ChangeType
	adminID string
	reason  string
	notes   string
}

// applyManual runs the locked read-modify-write pair plus the ledger append in
// one transaction.
func (uc *StockUseCase) applyManual(ctx context.Context, productID string, ch manualChange) (*dto.StockChangeResponse, error) {
	var out *dto.StockChangeResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
		_ repository.OrderRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		delta := ch.delta
		if ch.target != nil {
			delta = *ch.target - product.Stock
		}
		newStock := product.Stock + delta
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}
		// Ledger entry goes first: a failed append never leaves an unlogged
		// balance change.
		entry := &entity.StockLedgerEntry{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			Type:          ch.typ,
			Quantity:      delta,
			PreviousStock: product.Stock,
			NewStock:      newStock,
			AdminID:       ch.adminID,
			Reason:        ch.reason,
			Notes:         ch.notes,
			CreatedAt:     time.Now(),
		}
		if err := ledgerRepo.Create(entry); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		out = &dto.StockChangeResponse{
			ProductID:     product.ID,
			PreviousStock: entry.PreviousStock,
			NewStock:      entry.NewStock,
			Quantity:      entry.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordInitialStockInTx seeds a freshly created product's ledger with its
// opening entry (previous 0). Uses the caller's tx-bound repositories so the
// product insert and its first entry commit together.
func (uc *StockUseCase) RecordInitialStockInTx(
	ledgerRepo repository.StockLedgerRepository,
	product *entity.Product,
	adminID string,
	now time.Time,
) error {
	if product.Stock < 0 {
		return domain.ErrInvalidInput
	}
	return ledgerRepo.Create(&entity.StockLedgerEntry{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Type:          entity.ChangeInitial,
		Quantity:      product.Stock,
		PreviousStock: 0,
		NewStock:      product.Stock,
		AdminID:       adminID,
		CreatedAt:     now,
	})
}

// RecordSaleInTx decrements stock for one order line using the caller's
// tx-bound repositories (same transaction as the order insert). The row lock
// plus the floor check make oversell impossible; the caller aborts the whole
// order on the first failing line.
func (uc *StockUseCase) RecordSaleInTx(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	productID string,
	quantity int,
	adminID, orderID string,
	now time.Time,
) (*entity.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Stock < quantity {
		return nil, domain.ErrInsufficientStock
	}
	newStock := product.Stock - quantity
	entry := &entity.StockLedgerEntry{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Type:          entity.ChangeSale,
		Quantity:      -quantity,
		PreviousStock: product.Stock,
		NewStock:      newStock,
		AdminID:       adminID,
		OrderID:       orderID,
		CreatedAt:     now,
	}
	if err := ledgerRepo.Create(entry); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}
	product.Stock = newStock
	return product, nil
}

// RecordReturnInTx restores stock for one cancelled order line. A product
// deleted after order placement is skipped rather than failing the whole
// cancellation. Returns have no upper bound.
func (uc *StockUseCase) RecordReturnInTx(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	productID string,
	quantity int,
	adminID, orderID string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return nil // product removed since placement
	}
	newStock := product.Stock + quantity
	entry := &entity.StockLedgerEntry{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Type:          entity.ChangeReturn,
		Quantity:      quantity,
		PreviousStock: product.Stock,
		NewStock:      newStock,
		AdminID:       adminID,
		OrderID:       orderID,
		CreatedAt:     now,
	}
	if err := ledgerRepo.Create(entry); err != nil {
		return err
	}
	return productRepo.UpdateStock(product.ID, newStock)
}

// ListLogs returns ledger entries, optionally filtered by change type and date range.
func (uc *StockUseCase) ListLogs(ctx context.Context, changeType string, from, to *time.Time, page dto.PageRequest) (*dto.LedgerListResponse, error) {
	page.DefaultPage()
	typ := entity.ChangeType(changeType)
	if changeType != "" && !typ.Valid() {
		return nil, domain.ErrInvalidInput
	}
	entries, err := uc.ledger.List(typ, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toLedgerList(entries, page), nil
}

// GetLog returns one ledger entry by ID.
func (uc *StockUseCase) GetLog(ctx context.Context, id string) (*dto.LedgerEntryResponse, error) {
	entry, err := uc.ledger.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToLedgerEntry(entry)
	return &resp, nil
}

// ListProductLogs returns the ledger chain of one product, newest first.
func (uc *StockUseCase) ListProductLogs(ctx context.Context, productID string, page dto.PageRequest) (*dto.LedgerListResponse, error) {
	page.DefaultPage()
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.ledger.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toLedgerList(entries, page), nil
}

// ToLedgerEntry maps a ledger entity to its response shape. Exported so the
// order use case can embed an order's entries in its detail view.
func ToLedgerEntry(e *entity.StockLedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:            e.ID,
		ProductID:     e.ProductID,
		Type:          string(e.Type),
		Quantity:      e.Quantity,
		PreviousStock: e.PreviousStock,
		NewStock:      e.NewStock,
		AdminID:       e.AdminID,
		OrderID:       e.OrderID,
		Reason:        e.Reason,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}

func toLedgerList(entries []*entity.StockLedgerEntry, page dto.PageRequest) *dto.LedgerListResponse {
	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ToLedgerEntry(e))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
