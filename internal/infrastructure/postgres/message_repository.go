package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/netyark/mall-api/internal/domain/entity"
	"github.com/netyark/mall-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo implementation over PostgreSQL (usable with pool or tx).
type MessageRepo struct {
	q Querier
}

// NewMessageRepository builds the adapter. Pass pool or tx (Querier).
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

// Create persists a contact message.
func (r *MessageRepo) Create(message *entity.Message) error {
	query := `
		INSERT INTO messages (id, name, email, content, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		message.ID, message.Name, message.Email, message.Content, message.Read, message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// GetByID fetches one message.
func (r *MessageRepo) GetByID(id string) (*entity.Message, error) {
	query := `SELECT id, name, email, content, read, created_at FROM messages WHERE id = $1`
	var m entity.Message
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Content, &m.Read, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &m, nil
}

// MarkRead flags a message as read.
func (r *MessageRepo) MarkRead(id string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE messages SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}

// List returns messages newest first, optionally unread only.
func (r *MessageRepo) List(unreadOnly bool, limit, offset int) ([]*entity.Message, error) {
	query := `SELECT id, name, email, content, read, created_at FROM messages`
	var args []any
	pos := 1
	if unreadOnly {
		query += ` WHERE read = false`
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete removes a message.
func (r *MessageRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
