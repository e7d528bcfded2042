package dto

import "time"

// CreateMessageRequest body for the public contact form.
type CreateMessageRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// MessageResponse output for a contact message.
type MessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageListResponse paginated message list.
type MessageListResponse struct {
	Items []MessageResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
