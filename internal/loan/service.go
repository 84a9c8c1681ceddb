package loan

import (
	"context"

	"github.com/dehashizia/ReadMeMore-sub000/internal/platform/mailer"
)

type Service struct {
	repo     Repository
	notifier mailer.Notifier
}

func NewService(repo Repository, notifier mailer.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create inserts a pending loan request for an available book and then
// notifies the owner. State is persisted first; notification failure
// never fails the request.
func (s *Service) Create(ctx context.Context, bookID, requesterID string) (LoanRequest, error) {
	info, err := s.repo.Create(ctx, bookID, requesterID)
	if err != nil {
		return LoanRequest{}, err
	}

	if info.OwnerEmail != "" {
		s.notifier.LoanRequested(ctx, info.OwnerEmail, info.RequesterUsername, info.BookTitle)
	}

	return info.Request, nil
}

// Respond lets the book's owner accept or decline a pending request.
// Accepting also flips the book's availability off, atomically with the
// status write. Accepting a request whose book is no longer available
// fails with ErrUnavailable.
func (s *Service) Respond(ctx context.Context, requestID, responderID, decision string) error {
	if decision != StatusAccepted && decision != StatusDeclined {
		return ErrInvalidDecision
	}

	info, err := s.repo.Respond(ctx, requestID, responderID, decision)
	if err != nil {
		return err
	}

	if info.RequesterEmail != "" {
		s.notifier.LoanDecision(ctx, info.RequesterEmail, info.BookTitle, decision)
	}

	return nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) (Inbox, error) {
	return s.repo.ListForUser(ctx, userID)
}
