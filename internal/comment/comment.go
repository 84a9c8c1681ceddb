package comment

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("comment not found")
	ErrForbidden = errors.New("only the author may delete a comment")
)

// Comment is a review left on a book, with a 1-5 star rating.
type Comment struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	ListByBook(ctx context.Context, bookID string) ([]Comment, error)
	Delete(ctx context.Context, commentID, userID string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, bookID, userID, text string, rating int) (Comment, error) {
	c := Comment{
		BookID: bookID,
		UserID: userID,
		Text:   text,
		Rating: rating,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) ListByBook(ctx context.Context, bookID string) ([]Comment, error) {
	return s.repo.ListByBook(ctx, bookID)
}

func (s *Service) Delete(ctx context.Context, commentID, userID string) error {
	return s.repo.Delete(ctx, commentID, userID)
}
