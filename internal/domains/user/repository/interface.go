package repository

import (
	"context"

	"github.com/google/uuid"

	"hellobooks-backend/internal/domains/user/model"
)

type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *model.User) error

	// GetByID gets a user by id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail gets a user by email, the ledger's identity key.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmail reports whether an account already uses the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
