package repository

import (
	"context"

	"hellobooks-backend/internal/domains/borrow/model"
)

type BorrowRepository interface {
	// GetByID gets one ledger record.
	GetByID(ctx context.Context, id int64) (*model.Record, error)

	// CountOpenByUser counts the user's records with no return date.
	CountOpenByUser(ctx context.Context, userEmail string) (int, error)

	// ListByUser returns a page of all of the user's records in insertion
	// order, plus the user's total record count.
	ListByUser(ctx context.Context, userEmail string, limit, offset int) ([]*model.Record, int, error)

	// ListOpenByUser returns all of the user's open records.
	ListOpenByUser(ctx context.Context, userEmail string) ([]*model.Record, error)

	// ListOpen returns a page of every open record system-wide ordered by
	// id ascending, plus the total open count.
	ListOpen(ctx context.Context, limit, offset int) ([]*model.Record, int, error)

	// CountAll counts every record in the ledger, open or closed.
	CountAll(ctx context.Context) (int, error)

	// CreateAndDecrementCopies inserts the record and takes one copy off
	// the shelf in a single transaction, returning the new record id.
	// Fails if the book has no copies left at commit time.
	CreateAndDecrementCopies(ctx context.Context, rec *model.Record) (int64, error)

	// CloseAndIncrementCopies sets the return date on an open record and
	// puts the copy back in a single transaction.
	CloseAndIncrementCopies(ctx context.Context, id int64, returnDate, bookID string) error
}
