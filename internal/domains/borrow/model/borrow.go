package model

// Record is one loan event in the ledger. It is created by a successful
// borrow, mutated exactly once by a return (DateReturned set, never unset),
// and never deleted. Dates are DD/MM/YYYY strings, the API's wire format.
type Record struct {
	ID           int64   `json:"id"`
	UserEmail    string  `json:"user_email"`
	BorrowDate   string  `json:"borrow_date"`
	DueDate      string  `json:"due_date"`
	BookID       string  `json:"book_id"`
	DateReturned *string `json:"date_returned"`
}

// Open reports whether the book is still out.
func (r *Record) Open() bool {
	return r.DateReturned == nil
}
