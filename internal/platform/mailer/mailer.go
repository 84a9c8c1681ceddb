package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
)

// Notifier delivers loan notifications. Delivery is best-effort: callers
// persist state first and never fail an operation because a mail could not
// be sent.
type Notifier interface {
	LoanRequested(ctx context.Context, ownerEmail, requesterName, bookTitle string)
	LoanDecision(ctx context.Context, requesterEmail, bookTitle, decision string)
}

// LogNotifier writes notifications to the application log. Used when SMTP
// is not configured, and in tests.
type LogNotifier struct{}

func (LogNotifier) LoanRequested(_ context.Context, ownerEmail, requesterName, bookTitle string) {
	log.Printf("notify loan_requested to=%s requester=%s book=%q", ownerEmail, requesterName, bookTitle)
}

func (LogNotifier) LoanDecision(_ context.Context, requesterEmail, bookTitle, decision string) {
	log.Printf("notify loan_decision to=%s book=%q decision=%s", requesterEmail, bookTitle, decision)
}

type SMTPNotifier struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPNotifier{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

func (n *SMTPNotifier) LoanRequested(_ context.Context, ownerEmail, requesterName, bookTitle string) {
	subject := "New loan request"
	body := fmt.Sprintf("%s would like to borrow %q from you.", requesterName, bookTitle)
	n.send(ownerEmail, subject, body)
}

func (n *SMTPNotifier) LoanDecision(_ context.Context, requesterEmail, bookTitle, decision string) {
	subject := "Your loan request was " + decision
	body := fmt.Sprintf("Your request to borrow %q has been %s.", bookTitle, decision)
	n.send(requesterEmail, subject, body)
}

// At-most-one attempt, no retry. Failures are logged only.
func (n *SMTPNotifier) send(to, subject, body string) {
	msg := []byte("From: " + n.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")
	if err := smtp.SendMail(n.addr, n.auth, n.from, []string{to}, msg); err != nil {
		log.Printf("mailer send failed to=%s subject=%q err=%v", to, subject, err)
	}
}
