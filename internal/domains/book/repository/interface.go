package repository

import (
	"context"

	"github.com/google/uuid"

	"hellobooks-backend/internal/domains/book/model"
)

type BookRepository interface {
	// Create inserts a new catalog entry.
	Create(ctx context.Context, b *model.Book) error

	// GetByID gets a book by id (cached).
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// List returns a page of the catalog plus the total count.
	List(ctx context.Context, page, perPage int) ([]*model.Book, int, error)

	// Update overwrites a book's mutable fields and invalidates its cache.
	Update(ctx context.Context, b *model.Book) error

	// Delete removes a book from the catalog.
	Delete(ctx context.Context, id uuid.UUID) error
}
