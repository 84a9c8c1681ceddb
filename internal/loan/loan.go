package loan

import (
	"errors"
	"time"
)

// Loan request lifecycle: pending is the only initial state, accepted and
// declined are terminal. There is no returned state; a declined or
// accepted request never transitions again.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

var (
	ErrNotFound        = errors.New("loan request not found")
	ErrBookNotFound    = errors.New("book not found")
	ErrUnavailable     = errors.New("book is not available for loan")
	ErrForbidden       = errors.New("only the book owner may respond")
	ErrAlreadyResolved = errors.New("loan request already resolved")
	ErrInvalidDecision = errors.New("decision must be accepted or declined")
)

// LoanRequest records one user's intent to borrow one book.
type LoanRequest struct {
	ID                string    `json:"id"`
	BookID            string    `json:"book_id"`
	RequesterID       string    `json:"requester_id"`
	Status            string    `json:"status"`
	RequestDate       time.Time `json:"request_date"`
	BookTitle         string    `json:"book_title,omitempty"`
	RequesterUsername string    `json:"requester_username,omitempty"`
	OwnerUsername     string    `json:"owner_username,omitempty"`
}

// Inbox groups a user's loan requests: sent are the ones they made,
// received are requests against books they own.
type Inbox struct {
	Sent     []LoanRequest `json:"sent_requests"`
	Received []LoanRequest `json:"received_requests"`
}
