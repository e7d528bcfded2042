package usecase_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netyark/mall-api/internal/application/dto"
	appinventory "github.com/netyark/mall-api/internal/application/inventory"
	"github.com/netyark/mall-api/internal/application/usecase"
	"github.com/netyark/mall-api/internal/domain"
	"github.com/netyark/mall-api/internal/domain/entity"
	dominventory "github.com/netyark/mall-api/internal/domain/inventory"
	"github.com/netyark/mall-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes. ListLowStock/ListOutOfStock apply the same classification
// rule the SQL adapter encodes, so the projection tests exercise the contract.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products map[string]*entity.Product
	ledger   []*entity.StockLedgerEntry
}

func newMemStore() *memStore {
	return &memStore{products: map[string]*entity.Product{}}
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

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return r.filter(func(*entity.Product) bool { return true })
}

func (r *memProductRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.CategoryID == categoryID })
}

func (r *memProductRepo) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool {
		return dominventory.IsLowStock(p.Stock, p.LowStockThreshold)
	})
}

func (r *memProductRepo) ListOutOfStock(limit, offset int) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return dominventory.IsOutOfStock(p.Stock) })
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) filter(keep func(*entity.Product) bool) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		if keep(p) {
			clone := *p
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Create(e *entity.StockLedgerEntry) error {
	clone := *e
	r.s.ledger = append(r.s.ledger, &clone)
	return nil
}

func (r *memLedgerRepo) GetByID(string) (*entity.StockLedgerEntry, error) { return nil, nil }
func (r *memLedgerRepo) List(entity.ChangeType, *time.Time, *time.Time, int, int) ([]*entity.StockLedgerEntry, error) {
	return r.s.ledger, nil
}
func (r *memLedgerRepo) ListByProduct(string, int, int) ([]*entity.StockLedgerEntry, error) {
	return nil, nil
}
func (r *memLedgerRepo) ListByOrder(string) ([]*entity.StockLedgerEntry, error) { return nil, nil }
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

type memCategoryRepo struct{}

func (memCategoryRepo) Create(*entity.Category) error              { return nil }
func (memCategoryRepo) GetByID(string) (*entity.Category, error)   { return nil, nil }
func (memCategoryRepo) GetByName(string) (*entity.Category, error) { return nil, nil }
func (memCategoryRepo) Update(*entity.Category) error              { return nil }
func (memCategoryRepo) List(int, int) ([]*entity.Category, error)  { return nil, nil }
func (memCategoryRepo) Delete(string) error                        { return nil }

type memOrderRepo struct{}

func (memOrderRepo) Create(*entity.Order) error                     { return nil }
func (memOrderRepo) GetByID(string) (*entity.Order, error)          { return nil, nil }
func (memOrderRepo) GetForUpdate(string) (*entity.Order, error)     { return nil, nil }
func (memOrderRepo) UpdateStatus(string, string) error              { return nil }
func (memOrderRepo) List(string, int, int) ([]*entity.Order, error) { return nil, nil }

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(&memProductRepo{r.s}, &memLedgerRepo{r.s}, memOrderRepo{})
}

func newFixture(t *testing.T) (*memStore, *usecase.ProductUseCase) {
	t.Helper()
	store := newMemStore()
	runner := &memTxRunner{store}
	stock := appinventory.NewStockUseCase(runner, &memProductRepo{store}, &memLedgerRepo{store})
	uc := usecase.NewProductUseCase(runner, stock, &memProductRepo{store}, memCategoryRepo{})
	return store, uc
}

func seed(store *memStore, id string, stock, threshold int) {
	store.products[id] = &entity.Product{
		ID:                id,
		Name:              id,
		Price:             decimal.NewFromInt(1),
		Stock:             stock,
		LowStockThreshold: threshold,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Projections
// ──────────────────────────────────────────────────────────────────────────────

// A product that sold out is still awaiting restock: the low-stock list uses
// the exact classifier rule, so zero stock qualifies.
func TestListLowStock_IncludesZeroStock(t *testing.T) {
	store, uc := newFixture(t)
	seed(store, "healthy", 20, 5)
	seed(store, "low", 3, 5)
	seed(store, "empty", 0, 5)

	out, err := uc.ListLowStock(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	byID := map[string]dto.ProductResponse{}
	for _, item := range out.Items {
		byID[item.ID] = item
	}
	require.Contains(t, byID, "low")
	require.Contains(t, byID, "empty")
	assert.True(t, byID["empty"].LowStock)
	assert.True(t, byID["empty"].OutOfStock)
	assert.True(t, byID["low"].LowStock)
	assert.False(t, byID["low"].OutOfStock)
}

func TestListOutOfStock_OnlyExhausted(t *testing.T) {
	store, uc := newFixture(t)
	seed(store, "low", 3, 5)
	seed(store, "empty", 0, 5)

	out, err := uc.ListOutOfStock(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "empty", out.Items[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lifecycle
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SeedsLedger(t *testing.T) {
	store, uc := newFixture(t)

	out, err := uc.Create(context.Background(), "admin-1", dto.CreateProductRequest{
		Name:         "USB-C cable",
		Price:        decimal.NewFromFloat(9.90),
		InitialStock: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, out.Stock)
	assert.Equal(t, entity.DefaultLowStockThreshold, out.LowStockThreshold)

	require.Len(t, store.ledger, 1)
	e := store.ledger[0]
	assert.Equal(t, entity.ChangeInitial, e.Type)
	assert.Equal(t, 0, e.PreviousStock)
	assert.Equal(t, 12, e.NewStock)
	assert.Equal(t, "admin-1", e.AdminID)
}

func TestDelete_CascadesLedger(t *testing.T) {
	store, uc := newFixture(t)

	created, err := uc.Create(context.Background(), "admin-1", dto.CreateProductRequest{
		Name:         "USB-C cable",
		Price:        decimal.NewFromInt(5),
		InitialStock: 3,
	})
	require.NoError(t, err)
	require.Len(t, store.ledger, 1)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.Empty(t, store.ledger)
	assert.Empty(t, store.products)
}

func TestCreate_RejectsNegativeInitialStock(t *testing.T) {
	_, uc := newFixture(t)

	_, err := uc.Create(context.Background(), "admin-1", dto.CreateProductRequest{
		Name:         "USB-C cable",
		Price:        decimal.NewFromInt(5),
		InitialStock: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
