package repository

import "github.com/netyark/mall-api/internal/domain/entity"

// MessageRepository defines the persistence port for contact messages.
type MessageRepository interface {
	Create(message *entity.Message) error
	GetByID(id string) (*entity.Message, error)
	MarkRead(id string) error
	List(unreadOnly bool, limit, offset int) ([]*entity.Message, error)
	Delete(id string) error
}
