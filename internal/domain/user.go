package domain

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Signup always assigns RoleCustomer; the seeded admin account
// is the only RoleAdmin identity.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents a registered account. PasswordHash never crosses the
// service boundary; responses carry a stripped copy.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken is a long-lived session token held in memory.
type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `json:"revoked"`
}
