package library

import (
	"context"
	"fmt"

	"github.com/dehashizia/ReadMeMore-sub000/internal/book"
)

const (
	StatusToRead  = "to_read"
	StatusReading = "reading"
	StatusRead    = "read"
)

func ValidateStatus(status string) error {
	switch status {
	case StatusToRead, StatusReading, StatusRead:
		return nil
	default:
		return fmt.Errorf("invalid status: %s", status)
	}
}

type Repository interface {
	UpsertEntry(ctx context.Context, userID, bookID, status string) error
	ListByStatus(ctx context.Context, userID, status string, limit, offset int) ([]book.Book, int, error)
	RemoveEntry(ctx context.Context, userID, bookID string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Upsert(ctx context.Context, userID, bookID, status string) error {
	if err := ValidateStatus(status); err != nil {
		return err
	}
	return s.repo.UpsertEntry(ctx, userID, bookID, status)
}

func (s *Service) List(ctx context.Context, userID, status string, limit, offset int) ([]book.Book, int, error) {
	if err := ValidateStatus(status); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByStatus(ctx, userID, status, limit, offset)
}

func (s *Service) Remove(ctx context.Context, userID, bookID string) error {
	return s.repo.RemoveEntry(ctx, userID, bookID)
}
