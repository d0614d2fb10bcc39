package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an organizer or superadmin account. Guests never have accounts.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	LastLogin    time.Time `db:"last_login,omitempty" json:"last_login,omitempty"`
}

func (u User) IsSuperadmin() bool {
	return u.Role == RoleSuperadmin
}
