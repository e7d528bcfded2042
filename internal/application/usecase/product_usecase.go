package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/netyark/mall-api/internal/application/dto"
	appinventory "github.com/netyark/mall-api/internal/application/inventory"
	"github.com/netyark/mall-api/internal/domain"
	"github.com/netyark/mall-api/internal/domain/entity"
	dominventory "github.com/netyark/mall-api/internal/domain/inventory"
	"github.com/netyark/mall-api/internal/domain/repository"
)

// ProductUseCase catalog CRUD. Creation seeds the stock ledger; deletion
// cascades the product's ledger entries; stock itself is never edited here.
type ProductUseCase struct {
	txRunner   appinventory.TxRunner
	stock      *appinventory.StockUseCase
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(
	txRunner appinventory.TxRunner,
	stock *appinventory.StockUseCase,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, stock: stock, products: products, categories: categories}
}

// Create persists a product and its opening ledger entry in one transaction.
func (uc *ProductUseCase) Create(ctx context.Context, adminID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.InitialStock < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	threshold := entity.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.LowStockThreshold
	}
	if in.CategoryID != "" {
		cat, err := uc.categories.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Description:       in.Description,
		Price:             in.Price,
		CategoryID:        in.CategoryID,
		Stock:             in.InitialStock,
		LowStockThreshold: threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
		_ repository.OrderRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		return uc.stock.RecordInitialStockInTx(ledgerRepo, product, adminID, now)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID returns one product with derived stock flags.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update edits catalog fields. Stock is absent from the request on purpose.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			cat, err := uc.categories.GetByID(*in.CategoryID)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, domain.ErrNotFound
			}
		}
		product.CategoryID = *in.CategoryID
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.LowStockThreshold = *in.LowStockThreshold
	}
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete removes a product and, in the same transaction, its ledger entries
// (the only permitted ledger deletion).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
		_ repository.OrderRepository,
	) error {
		if err := ledgerRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
}

// List returns products, optionally scoped to a category.
func (uc *ProductUseCase) List(ctx context.Context, categoryID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Product
		err  error
	)
	if categoryID != "" {
		list, err = uc.products.ListByCategory(categoryID, page.Limit, page.Offset)
	} else {
		list, err = uc.products.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	return toProductList(list, page), nil
}

// ListLowStock returns products at or below their restock threshold.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.ListLowStock(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductList(list, page), nil
}

// ListOutOfStock returns products with exhausted stock.
func (uc *ProductUseCase) ListOutOfStock(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.ListOutOfStock(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductList(list, page), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		CategoryID:        p.CategoryID,
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          dominventory.IsLowStock(p.Stock, p.LowStockThreshold),
		OutOfStock:        dominventory.IsOutOfStock(p.Stock),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toProductList(list []*entity.Product, page dto.PageRequest) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
