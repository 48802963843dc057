package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry. Copies is the number of physical copies on the
// shelf; borrowing decrements it and returning increments it, and either
// change touches DateModified.
type Book struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	ISBN   string    `json:"isbn"`
	Author string    `json:"author"`
	Genres []string  `json:"genres"`
	Copies int       `json:"copies"`

	DateModified time.Time `json:"date_modified"`
	CreatedAt    time.Time `json:"created_at"`
}

// Available reports whether at least one copy is on the shelf.
func (b *Book) Available() bool {
	return b.Copies > 0
}

// CacheKey is the redis key for a book; the borrow repository invalidates
// it when a borrow or return changes the copy count.
func CacheKey(id string) string {
	return fmt.Sprintf("book:%s", id)
}
