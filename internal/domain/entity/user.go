package entity

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is an admin or staff account of the mall backoffice.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // "active" | "suspended"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
