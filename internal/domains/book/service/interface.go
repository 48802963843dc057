package service

import (
	"context"

	"github.com/google/uuid"

	"hellobooks-backend/internal/domains/book/model"
)

type ServiceInterface interface {
	// CreateBook adds a catalog entry (admin).
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)

	// GetBook gets one book.
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// ListBooks returns a page of the catalog plus the total count.
	ListBooks(ctx context.Context, page, perPage int) ([]*model.Book, int, error)

	// UpdateBook applies a partial update (admin).
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)

	// DeleteBook removes a book (admin).
	DeleteBook(ctx context.Context, id uuid.UUID) error
}
