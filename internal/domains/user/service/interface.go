package service

import (
	"context"

	"hellobooks-backend/internal/domains/user/model"
)

type ServiceInterface interface {
	// Register creates a new member account.
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// GetByEmail resolves a user, used by the borrow domain for display records.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
