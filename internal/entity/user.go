package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that may submit moving requests and, with the admin
// role, manage other accounts.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
