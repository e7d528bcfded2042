package repository

import "github.com/netyark/mall-api/internal/domain/entity"

// UserRepository defines the persistence port for admin/staff accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
