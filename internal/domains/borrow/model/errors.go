package model

import (
	"errors"
	"fmt"
)

var (
	// ErrBorrowNotFound: the borrow id references nothing.
	ErrBorrowNotFound = errors.New("There is no book borrowed under this id")

	// ErrAlreadyReturned: the record is closed. Reported before any
	// ownership check, so returning someone else's closed loan still
	// says "already returned".
	ErrAlreadyReturned = errors.New("This book has been returned already")

	// ErrNotBorrower: the caller does not own the open record.
	ErrNotBorrower = errors.New("You did not borrow this book")

	// ErrInvalidDueDate: the due date is not a valid DD/MM/YYYY date.
	ErrInvalidDueDate = errors.New("Please enter a valid date")

	// ErrAdminRequired: the global outstanding listing needs the admin
	// capability.
	ErrAdminRequired = errors.New("Access denied: admin role required")

	// ErrNoRecords: the ledger holds no records at all; the admin listing
	// reports this distinctly from an ordinary empty page.
	ErrNoRecords = errors.New("No books have been borrowed yet.")

	// ErrNoCopies is the storage-level signal that the copy-count
	// decrement found nothing to take; the service wraps it with the
	// book's title.
	ErrNoCopies = errors.New("no copies available")
)

// NoCopiesError: every copy of the book is already out.
type NoCopiesError struct {
	Title string
}

func (e *NoCopiesError) Error() string {
	return fmt.Sprintf("All copies of %s have been borrowed.", e.Title)
}

// DueDateTooFarError: the due date exceeds the lending period measured
// from the evaluation-time clock.
type DueDateTooFarError struct {
	Days int
}

func (e *DueDateTooFarError) Error() string {
	return fmt.Sprintf("Please select a return date that is less than or equal to %d days.", e.Days)
}

// BorrowLimitError: the caller already has the maximum number of open loans.
type BorrowLimitError struct {
	Max int
}

func (e *BorrowLimitError) Error() string {
	return fmt.Sprintf("you have borrowed %d books. Please return 1 to be able to borrow another", e.Max)
}
