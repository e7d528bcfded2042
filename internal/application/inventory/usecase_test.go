package inventory_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netyark/mall-api/internal/application/dto"
	"github.com/netyark/mall-api/internal/application/inventory"
	"github.com/netyark/mall-api/internal/domain"
	"github.com/netyark/mall-api/internal/domain/entity"
	"github.com/netyark/mall-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes. The fake TxRunner snapshots the store before running the
// callback and restores it on error, mirroring a DB rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products map[string]*entity.Product
	ledger   []*entity.StockLedgerEntry
	orders   map[string]*entity.Order
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		orders:   map[string]*entity.Order{},
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for id, p := range s.products {
		clone := *p
		cp.products[id] = &clone
	}
	cp.ledger = append([]*entity.StockLedgerEntry(nil), s.ledger...)
	for id, o := range s.orders {
		clone := *o
		clone.Items = append([]entity.OrderItem(nil), o.Items...)
		cp.orders[id] = &clone
	}
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.ledger = snap.ledger
	s.orders = snap.orders
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	clone := *p
	r.s.products[p.ID] = &clone
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) Update(p *entity.Product) error {
	clone := *p
	r.s.products[p.ID] = &clone
	return nil
}

func (r *memProductRepo) UpdateStock(id string, stock int) error {
	if p, ok := r.s.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) ListByCategory(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) ListLowStock(int, int) ([]*entity.Product, error)  { return nil, nil }
func (r *memProductRepo) ListOutOfStock(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Create(e *entity.StockLedgerEntry) error {
	clone := *e
	r.s.ledger = append(r.s.ledger, &clone)
	return nil
}

func (r *memLedgerRepo) GetByID(id string) (*entity.StockLedgerEntry, error) {
	for _, e := range r.s.ledger {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *memLedgerRepo) List(typ entity.ChangeType, from, to *time.Time, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.s.ledger {
		if typ == "" || e.Type == typ {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.s.ledger {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListByOrder(orderID string) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.s.ledger {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) DeleteByProduct(productID string) error {
	var kept []*entity.StockLedgerEntry
	for _, e := range r.s.ledger {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	r.s.ledger = kept
	return nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(o *entity.Order) error {
	clone := *o
	clone.Items = append([]entity.OrderItem(nil), o.Items...)
	r.s.orders[o.ID] = &clone
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *o
	clone.Items = append([]entity.OrderItem(nil), o.Items...)
	return &clone, nil
}

func (r *memOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.GetByID(id) }

func (r *memOrderRepo) UpdateStatus(id, status string) error {
	if o, ok := r.s.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *memOrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	orderRepo repository.OrderRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(&memProductRepo{r.s}, &memLedgerRepo{r.s}, &memOrderRepo{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

func newFixture(t *testing.T, stock, threshold int) (*memStore, *inventory.StockUseCase) {
	t.Helper()
	store := newMemStore()
	store.products["p1"] = &entity.Product{
		ID:                "p1",
		Name:              "USB-C cable",
		Stock:             stock,
		LowStockThreshold: threshold,
	}
	uc := inventory.NewStockUseCase(&memTxRunner{store}, &memProductRepo{store}, &memLedgerRepo{store})
	return store, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Manual mutations
// ──────────────────────────────────────────────────────────────────────────────

func TestRestock_AppendsLedgerEntry(t *testing.T) {
	store, uc := newFixture(t, 4, 5)

	out, err := uc.Restock(context.Background(), "admin-1", dto.RestockRequest{
		ProductID: "p1", Quantity: 6, Reason: "supplier delivery",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, out.PreviousStock)
	assert.Equal(t, 10, out.NewStock)
	assert.Equal(t, 6, out.Quantity)
	assert.Equal(t, 10, store.products["p1"].Stock)

	require.Len(t, store.ledger, 1)
	e := store.ledger[0]
	assert.Equal(t, entity.ChangeRestock, e.Type)
	assert.Equal(t, "admin-1", e.AdminID)
	assert.Equal(t, e.PreviousStock+e.Quantity, e.NewStock)
}

func TestStockChangeResponse_WireFieldNames(t *testing.T) {
	_, uc := newFixture(t, 4, 5)

	out, err := uc.Restock(context.Background(), "admin-1", dto.RestockRequest{
		ProductID: "p1", Quantity: 6,
	})
	require.NoError(t, err)

	body, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"quantity_added":6`)
	assert.Contains(t, string(body), `"previous_stock":4`)
	assert.Contains(t, string(body), `"new_stock":10`)
}

func TestRestock_RejectsNonPositiveQuantity(t *testing.T) {
	store, uc := newFixture(t, 4, 5)

	_, err := uc.Restock(context.Background(), "admin-1", dto.RestockRequest{ProductID: "p1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 4, store.products["p1"].Stock)
	assert.Empty(t, store.ledger)
}

func TestReduce_FloorGuard(t *testing.T) {
	store, uc := newFixture(t, 3, 5)

	_, err := uc.Reduce(context.Background(), "admin-1", dto.ReduceRequest{
		ProductID: "p1", Quantity: 4, Reason: "shrinkage",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, store.products["p1"].Stock, "failed reduce must not change stock")
	assert.Empty(t, store.ledger, "failed reduce must not log")
}

func TestReduce_RequiresReason(t *testing.T) {
	_, uc := newFixture(t, 3, 5)

	_, err := uc.Reduce(context.Background(), "admin-1", dto.ReduceRequest{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReduce_DamageReasonGetsOwnChangeType(t *testing.T) {
	store, uc := newFixture(t, 8, 5)

	out, err := uc.Reduce(context.Background(), "admin-1", dto.ReduceRequest{
		ProductID: "p1", Quantity: 2, Reason: "damage",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, out.NewStock)

	require.Len(t, store.ledger, 1)
	assert.Equal(t, entity.ChangeDamage, store.ledger[0].Type)
	assert.Equal(t, -2, store.ledger[0].Quantity)
}

func TestAdjust_SetToZeroFromSeven(t *testing.T) {
	store, uc := newFixture(t, 7, 5)

	out, err := uc.Adjust(context.Background(), "admin-1", dto.AdjustRequest{
		ProductID: "p1", NewStock: 0, Reason: "inventory count",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, out.PreviousStock)
	assert.Equal(t, 0, out.NewStock)
	assert.Equal(t, -7, out.Quantity)
	assert.Equal(t, 0, store.products["p1"].Stock)

	require.Len(t, store.ledger, 1)
	assert.Equal(t, entity.ChangeAdjustment, store.ledger[0].Type)
}

func TestAdjust_RejectsNegativeTarget(t *testing.T) {
	_, uc := newFixture(t, 7, 5)

	_, err := uc.Adjust(context.Background(), "admin-1", dto.AdjustRequest{ProductID: "p1", NewStock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestManualMutation_UnknownProduct(t *testing.T) {
	_, uc := newFixture(t, 7, 5)

	_, err := uc.Restock(context.Background(), "admin-1", dto.RestockRequest{ProductID: "ghost", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sale / return inside a caller transaction
// ──────────────────────────────────────────────────────────────────────────────

// Walks the full scenario: stock 10, threshold 5; sell 3, sell 5, then an
// oversell that must leave state untouched. The ledger must chain:
// entry[i].NewStock == entry[i+1].PreviousStock.
func TestRecordSale_ScenarioAndLedgerChain(t *testing.T) {
	store, uc := newFixture(t, 10, 5)
	runner := &memTxRunner{store}
	ctx := context.Background()
	now := time.Now()

	sell := func(qty int) error {
		return runner.Run(ctx, func(pr repository.ProductRepository, lr repository.StockLedgerRepository, _ repository.OrderRepository) error {
			_, err := uc.RecordSaleInTx(pr, lr, "p1", qty, "admin-1", "order-1", now)
			return err
		})
	}

	require.NoError(t, sell(3))
	assert.Equal(t, 7, store.products["p1"].Stock)

	require.NoError(t, sell(5))
	assert.Equal(t, 2, store.products["p1"].Stock)

	err := sell(5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, store.products["p1"].Stock, "failed sale must not change stock")

	require.Len(t, store.ledger, 2)
	for i, e := range store.ledger {
		assert.Equal(t, entity.ChangeSale, e.Type)
		assert.Equal(t, e.PreviousStock+e.Quantity, e.NewStock)
		if i > 0 {
			assert.Equal(t, store.ledger[i-1].NewStock, e.PreviousStock, "entries must chain")
		}
	}
	assert.Equal(t, -3, store.ledger[0].Quantity)
	assert.Equal(t, -5, store.ledger[1].Quantity)
}

func TestRecordReturn_NoUpperBound(t *testing.T) {
	store, uc := newFixture(t, 2, 5)
	runner := &memTxRunner{store}

	err := runner.Run(context.Background(), func(pr repository.ProductRepository, lr repository.StockLedgerRepository, _ repository.OrderRepository) error {
		return uc.RecordReturnInTx(pr, lr, "p1", 100, "admin-1", "order-9", time.Now())
	})
	require.NoError(t, err)

	assert.Equal(t, 102, store.products["p1"].Stock)
	require.Len(t, store.ledger, 1)
	assert.Equal(t, entity.ChangeReturn, store.ledger[0].Type)
	assert.Equal(t, 100, store.ledger[0].Quantity)
	assert.Equal(t, "order-9", store.ledger[0].OrderID)
}

func TestRecordReturn_SkipsMissingProduct(t *testing.T) {
	store, uc := newFixture(t, 2, 5)
	runner := &memTxRunner{store}

	err := runner.Run(context.Background(), func(pr repository.ProductRepository, lr repository.StockLedgerRepository, _ repository.OrderRepository) error {
		return uc.RecordReturnInTx(pr, lr, "deleted-product", 1, "admin-1", "order-9", time.Now())
	})
	require.NoError(t, err, "a product deleted after placement is skipped, not an error")
	assert.Empty(t, store.ledger)
}

// ──────────────────────────────────────────────────────────────────────────────
// Projections
// ──────────────────────────────────────────────────────────────────────────────

func TestListLogs_RejectsUnknownChangeType(t *testing.T) {
	_, uc := newFixture(t, 10, 5)

	_, err := uc.ListLogs(context.Background(), "typo", nil, nil, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetLog(t *testing.T) {
	store, uc := newFixture(t, 8, 5)

	out, err := uc.Restock(context.Background(), "admin-1", dto.RestockRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, store.ledger, 1)

	entry, err := uc.GetLog(context.Background(), store.ledger[0].ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ChangeRestock), entry.Type)
	assert.Equal(t, 2, entry.Quantity)

	_, err = uc.GetLog(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProductLogs_UnknownProduct(t *testing.T) {
	_, uc := newFixture(t, 10, 5)

	_, err := uc.ListProductLogs(context.Background(), "ghost", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
