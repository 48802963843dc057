package model

import "errors"

var (
	ErrBookNotFound   = errors.New("book does not exist")
	ErrISBNExists     = errors.New("a book with this isbn already exists")
	ErrNegativeCopies = errors.New("copies cannot be negative")
)
