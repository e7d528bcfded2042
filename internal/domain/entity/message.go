package entity

import "time"

// Message is a customer contact-form message shown in the admin dashboard.
type Message struct {
	ID        string
	Name      string
	Email     string
	Content   string
	Read      bool
	CreatedAt time.Time
}
