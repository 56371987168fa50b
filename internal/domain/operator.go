package domain

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a store employee allowed to sign in to the terminal.
type Operator struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Operator roles.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)
