package model

import (
	bookmodel "hellobooks-backend/internal/domains/book/model"
	usermodel "hellobooks-backend/internal/domains/user/model"
)

// BorrowRequest is the payload for borrowing a copy. BorrowDate and
// ReturnDate are caller-supplied literals; ReturnDate is normally left
// empty for a fresh borrow but the contract accepts a value.
type BorrowRequest struct {
	BorrowDate string `json:"borrow_date"`
	DueDate    string `json:"due_date"`
	ReturnDate string `json:"return_date"`
}

// ReturnRequest is the payload for returning a borrowed copy.
type ReturnRequest struct {
	ReturnDate string `json:"return_date"`
}

// BorrowConfirmation is the success payload of a borrow.
type BorrowConfirmation struct {
	BorrowID int64  `json:"borrow_id"`
	Message  string `json:"message"`
}

// ReturnConfirmation is the success payload of a return.
type ReturnConfirmation struct {
	Message string `json:"message"`
}

// DisplayRecord is the denormalized view of a loan: the record joined with
// its book's title/isbn and its user's username.
type DisplayRecord struct {
	BorrowID     int64   `json:"borrow_id"`
	BookTitle    string  `json:"book_title"`
	ISBN         string  `json:"isbn"`
	Username     string  `json:"username"`
	BorrowDate   string  `json:"borrow_date"`
	DueDate      string  `json:"due_date"`
	DateReturned *string `json:"date_returned"`
}

// NewDisplayRecord expands a record into its display form. Pure; every
// listing operation goes through this one helper so the shape stays
// consistent.
func NewDisplayRecord(rec *Record, book *bookmodel.Book, user *usermodel.User) DisplayRecord {
	return DisplayRecord{
		BorrowID:     rec.ID,
		BookTitle:    book.Title,
		ISBN:         book.ISBN,
		Username:     user.Username,
		BorrowDate:   rec.BorrowDate,
		DueDate:      rec.DueDate,
		DateReturned: rec.DateReturned,
	}
}

// Listing is a page of display records plus an optional advisory note
// ("no borrow history yet", "all books returned").
type Listing struct {
	Items []DisplayRecord `json:"items"`
	Note  string          `json:"note,omitempty"`
	Total int             `json:"-"`
}
