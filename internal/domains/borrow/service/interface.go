package service

import (
	"context"

	"hellobooks-backend/internal/domains/borrow/model"
	"hellobooks-backend/internal/shared"
	"hellobooks-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	// BorrowBook checks the book out to the caller.
	BorrowBook(ctx context.Context, caller shared.Caller, bookID string, req model.BorrowRequest) (*model.BorrowConfirmation, error)

	// ReturnBook closes the caller's open loan.
	ReturnBook(ctx context.Context, caller shared.Caller, borrowID int64, returnDate string) (*model.ReturnConfirmation, error)

	// BorrowingHistory pages through every record of the user, open and
	// closed, in insertion order.
	BorrowingHistory(ctx context.Context, userEmail string, params pagination.Params) (*model.Listing, error)

	// BooksNotReturned lists the user's open records.
	BooksNotReturned(ctx context.Context, userEmail string) (*model.Listing, error)

	// BooksCurrentlyOut pages through all open records system-wide,
	// ordered by record id. Admin only.
	BooksCurrentlyOut(ctx context.Context, caller shared.Caller, params pagination.Params) (*model.Listing, error)
}
