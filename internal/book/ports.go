package book

import (
	"context"
)

// Repository defines the contract for book storage.
type Repository interface {
	GetByID(ctx context.Context, id string) (Book, error)
	ListAvailable(ctx context.Context) ([]Book, error)
	MarkAvailable(ctx context.Context, bookID, ownerID string) (Book, error)
}
