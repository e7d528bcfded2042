package usecase

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

// MessageUseCase contact-form messages: public create, admin read/delete.
type MessageUseCase struct {
	messages repository.MessageRepository
}

// NewMessageUseCase builds the use case.
func NewMessageUseCase(messages repository.MessageRepository) *MessageUseCase {
	return &MessageUseCase{messages: messages}
}

// Create stores an incoming contact message.
func (uc *MessageUseCase) Create(ctx context.Context, in dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	if in.Name == "" || in.Content == "" || !strings.Contains(in.Email, "@") {
		return nil, domain.ErrInvalidInput
	}
	msg := &entity.Message{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Content:   in.Content,
		CreatedAt: time.Now(),
	}
	if err := uc.messages.Create(msg); err != nil {
		return nil, err
	}
	return toMessageResponse(msg), nil
}

// MarkRead flags a message as handled.
func (uc *MessageUseCase) MarkRead(ctx context.Context, id string) error {
	msg, err := uc.messages.GetByID(id)
	if err != nil {
		return err
	}
	if msg == nil {
		return domain.ErrNotFound
	}
	return uc.messages.MarkRead(id)
}

// Delete removes a message.
func (uc *MessageUseCase) Delete(ctx context.Context, id string) error {
	msg, err := uc.messages.GetByID(id)
	if err != nil {
		return err
	}
	if msg == nil {
		return domain.ErrNotFound
	}
	return uc.messages.Delete(id)
}

// List returns messages, optionally unread only.
func (uc *MessageUseCase) List(ctx context.Context, unreadOnly bool, page dto.PageRequest) (*dto.MessageListResponse, error) {
	page.DefaultPage()
	list, err := uc.messages.List(unreadOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MessageResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMessageResponse(m))
	}
	return &dto.MessageListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Content:   m.Content,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}
