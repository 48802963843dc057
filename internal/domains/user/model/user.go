package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered library member. Email is the identity key the
// borrow ledger references; Role carries the admin capability.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
