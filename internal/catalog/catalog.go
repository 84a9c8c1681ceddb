package catalog

import (
	"errors"

	"github.com/dehashizia/ReadMeMore-sub000/internal/book"
)

// Source values annotate where a resolved book came from.
const (
	SourceDatabase = "database"
	SourceProvider = "google_books"
	SourceUnknown  = "unknown"
)

// UncategorizedName is assigned when the provider reports no category.
const UncategorizedName = "uncategorized"

var (
	ErrInvalidQuery = errors.New("search query must not be empty")
	ErrNotFound     = errors.New("book not found")

	// errDuplicateISBN signals that a concurrent insert won the race for
	// an ISBN; the resolver re-fetches instead of failing.
	errDuplicateISBN = errors.New("duplicate isbn")
)

// Result is a resolved book together with its provenance.
type Result struct {
	book.Book
	Source string `json:"source"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
