package loan

import (
	"context"
)

// CreateInfo carries the new request plus the details the notification
// side effect needs, so the service never re-reads after commit.
type CreateInfo struct {
	Request           LoanRequest
	BookTitle         string
	OwnerEmail        string
	RequesterUsername string
}

// DecisionInfo carries what the requester notification needs.
type DecisionInfo struct {
	BookTitle      string
	RequesterEmail string
}

// Repository defines the transactional storage contract for the loan
// workflow.
type Repository interface {
	Create(ctx context.Context, bookID, requesterID string) (CreateInfo, error)
	Respond(ctx context.Context, requestID, responderID, decision string) (DecisionInfo, error)
	ListForUser(ctx context.Context, userID string) (Inbox, error)
}
