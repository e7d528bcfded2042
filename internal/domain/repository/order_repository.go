package repository

import "github.com/netyark/mall-api/internal/domain/entity"

// OrderRepository defines the persistence port for orders and their items.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate fetches the order and locks its row so a concurrent status
	// transition cannot re-trigger the stock reversal.
	GetForUpdate(id string) (*entity.Order, error)
	UpdateStatus(orderID, status string) error
	List(status string, limit, offset int) ([]*entity.Order, error)
}
