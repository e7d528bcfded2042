package repository

import "github.com/netyark/mall-api/internal/domain/entity"

// ProductRepository defines the persistence port for Product (DIP).
// Stock is never written through Update: the stock engine owns it via
// GetForUpdate + UpdateStock inside a transaction.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// GetForUpdate fetches the product and locks its row (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock writes only the stock balance (used by the stock engine).
	UpdateStock(productID string, stock int) error
	List(limit, offset int) ([]*entity.Product, error)
	ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error)
	// ListLowStock returns products with stock at or below their own threshold,
	// the same rule as inventory.IsLowStock (zero stock included).
	ListLowStock(limit, offset int) ([]*entity.Product, error)
	// ListOutOfStock returns products with zero stock.
	ListOutOfStock(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
