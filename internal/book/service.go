package book

import (
	"context"
)

// Service provides book availability logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAvailable returns every book currently offered for loan, annotated
// with the lender's display name.
func (s *Service) ListAvailable(ctx context.Context) ([]Book, error) {
	return s.repo.ListAvailable(ctx)
}

// MarkAvailable offers a book for loan and records the caller as its
// lender, overwriting any previously recorded lender.
func (s *Service) MarkAvailable(ctx context.Context, bookID, ownerID string) (Book, error) {
	return s.repo.MarkAvailable(ctx, bookID, ownerID)
}
