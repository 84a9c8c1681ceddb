package message

import (
	"context"
	"errors"
	"time"
)

var ErrRecipientNotFound = errors.New("recipient not found")

// Message is a direct message between two users, optionally tied to a
// book they are discussing a loan for.
type Message struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"sender_id"`
	RecipientID    string    `json:"recipient_id"`
	BookID         *string   `json:"book_id,omitempty"`
	Text           string    `json:"text"`
	SenderUsername string    `json:"sender_username,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, m *Message) error
	ListConversation(ctx context.Context, userID, otherID string) ([]Message, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Send(ctx context.Context, senderID, recipientID, text string, bookID *string) (Message, error) {
	m := Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		BookID:      bookID,
		Text:        text,
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// ListConversation returns both directions of the exchange between two
// users, oldest first.
func (s *Service) ListConversation(ctx context.Context, userID, otherID string) ([]Message, error) {
	return s.repo.ListConversation(ctx, userID, otherID)
}
