package loan

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Create checks existence and availability and inserts the pending row in
// one transaction, locking the book row so the check stays valid until
// commit. Multiple pending requests for the same book are allowed; the
// owner's accept is the serialization point.
func (r *PostgresRepo) Create(ctx context.Context, bookID, requesterID string) (CreateInfo, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return CreateInfo{}, err
	}
	defer tx.Rollback(timeoutCtx)

	const bookSQL = `
		SELECT b.title, b.is_available_for_loan, COALESCE(u.email, '')
		FROM books b
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.id = $1
		FOR UPDATE OF b`

	var info CreateInfo
	var available bool
	err = tx.QueryRow(timeoutCtx, bookSQL, bookID).Scan(&info.BookTitle, &available, &info.OwnerEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CreateInfo{}, ErrBookNotFound
		}
		return CreateInfo{}, err
	}
	if !available {
		return CreateInfo{}, ErrUnavailable
	}

	const requesterSQL = `SELECT username FROM users WHERE id = $1`
	if err := tx.QueryRow(timeoutCtx, requesterSQL, requesterID).Scan(&info.RequesterUsername); err != nil {
		return CreateInfo{}, err
	}

	const insertSQL = `
		INSERT INTO loan_requests (id, book_id, user_id, status, request_date)
		VALUES (gen_random_uuid(), $1, $2, $3, now())
		RETURNING id, request_date`

	req := LoanRequest{
		BookID:      bookID,
		RequesterID: requesterID,
		Status:      StatusPending,
		BookTitle:   info.BookTitle,
	}
	if err := tx.QueryRow(timeoutCtx, insertSQL, bookID, requesterID, StatusPending).Scan(&req.ID, &req.RequestDate); err != nil {
		return CreateInfo{}, err
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return CreateInfo{}, err
	}

	info.Request = req
	return info, nil
}

// Respond updates the request status and, on accept, flips the book's
// availability in the same transaction: both writes commit or neither
// does.
func (r *PostgresRepo) Respond(ctx context.Context, requestID, responderID, decision string) (DecisionInfo, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return DecisionInfo{}, err
	}
	defer tx.Rollback(timeoutCtx)

	const lockSQL = `
		SELECT lr.status, b.id, b.user_id, b.is_available_for_loan, b.title, ru.email
		FROM loan_requests lr
		JOIN books b ON b.id = lr.book_id
		JOIN users ru ON ru.id = lr.user_id
		WHERE lr.id = $1
		FOR UPDATE OF lr, b`

	var (
		status    string
		bookID    string
		ownerID   *string
		available bool
		info      DecisionInfo
	)
	err = tx.QueryRow(timeoutCtx, lockSQL, requestID).Scan(
		&status, &bookID, &ownerID, &available, &info.BookTitle, &info.RequesterEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DecisionInfo{}, ErrNotFound
		}
		return DecisionInfo{}, err
	}

	if ownerID == nil || *ownerID != responderID {
		return DecisionInfo{}, ErrForbidden
	}
	if status != StatusPending {
		return DecisionInfo{}, ErrAlreadyResolved
	}
	if decision == StatusAccepted && !available {
		return DecisionInfo{}, ErrUnavailable
	}

	const updateSQL = `UPDATE loan_requests SET status = $2 WHERE id = $1`
	if _, err := tx.Exec(timeoutCtx, updateSQL, requestID, decision); err != nil {
		return DecisionInfo{}, err
	}

	if decision == StatusAccepted {
		const flipSQL = `
			UPDATE books
			SET is_available_for_loan = false, updated_at = now()
			WHERE id = $1`
		if _, err := tx.Exec(timeoutCtx, flipSQL, bookID); err != nil {
			return DecisionInfo{}, err
		}
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return DecisionInfo{}, err
	}
	return info, nil
}

func (r *PostgresRepo) ListForUser(ctx context.Context, userID string) (Inbox, error) {
	const sentSQL = `
		SELECT lr.id, lr.book_id, lr.user_id, lr.status, lr.request_date,
		       b.title, COALESCE(ou.username, 'unknown user')
		FROM loan_requests lr
		JOIN books b ON b.id = lr.book_id
		LEFT JOIN users ou ON ou.id = b.user_id
		WHERE lr.user_id = $1
		ORDER BY lr.request_date DESC`

	const receivedSQL = `
		SELECT lr.id, lr.book_id, lr.user_id, lr.status, lr.request_date,
		       b.title, ru.username
		FROM loan_requests lr
		JOIN books b ON b.id = lr.book_id
		JOIN users ru ON ru.id = lr.user_id
		WHERE b.user_id = $1
		ORDER BY lr.request_date DESC`

	var inbox Inbox

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sentSQL, userID)
	if err != nil {
		return Inbox{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var lr LoanRequest
		if err := rows.Scan(&lr.ID, &lr.BookID, &lr.RequesterID, &lr.Status, &lr.RequestDate,
			&lr.BookTitle, &lr.OwnerUsername); err != nil {
			return Inbox{}, err
		}
		inbox.Sent = append(inbox.Sent, lr)
	}
	if err := rows.Err(); err != nil {
		return Inbox{}, err
	}

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows2, err := r.db.Query(timeoutCtx2, receivedSQL, userID)
	if err != nil {
		return Inbox{}, err
	}
	defer rows2.Close()
	for rows2.Next() {
		var lr LoanRequest
		if err := rows2.Scan(&lr.ID, &lr.BookID, &lr.RequesterID, &lr.Status, &lr.RequestDate,
			&lr.BookTitle, &lr.RequesterUsername); err != nil {
			return Inbox{}, err
		}
		inbox.Received = append(inbox.Received, lr)
	}
	return inbox, rows2.Err()
}
