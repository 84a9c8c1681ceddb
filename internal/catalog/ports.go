package catalog

import (
	"context"

	"github.com/dehashizia/ReadMeMore-sub000/internal/book"
	"github.com/dehashizia/ReadMeMore-sub000/internal/platform/googlebooks"
)

// Repository defines the storage contract for catalog resolution.
type Repository interface {
	SearchByTitle(ctx context.Context, query string) ([]book.Book, error)
	GetByISBN(ctx context.Context, isbn string) (book.Book, error)
	Insert(ctx context.Context, b *book.Book) error
	UpsertCategory(ctx context.Context, name string) (Category, error)
}

// Provider is the external book-metadata source.
type Provider interface {
	SearchVolumes(ctx context.Context, title, langRestrict string, limit int) ([]googlebooks.Volume, error)
	SearchByISBN(ctx context.Context, isbn string) ([]googlebooks.Volume, error)
}
