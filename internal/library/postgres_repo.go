package library

import (
	"context"
	"errors"
	"time"

	"github.com/dehashizia/ReadMeMore-sub000/internal/book"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

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

func (r *PostgresRepo) UpsertEntry(ctx context.Context, userID, bookID, status string) error {
	const upsertSQL = `
		INSERT INTO library_books (user_id, book_id, status, created_at, updated_at)
		SELECT $1, b.id, $3, now(), now()
		FROM books b
		WHERE b.id = $2
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = now()`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	commandTag, err := r.db.Exec(timeoutCtx, upsertSQL, userID, bookID, status)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) ListByStatus(ctx context.Context, userID, status string, limit, offset int) ([]book.Book, int, error) {
	const countSQL = `
		SELECT COUNT(*)
		FROM library_books lb
		JOIN books b ON b.id = lb.book_id
		WHERE lb.user_id = $1 AND lb.status = $2`

	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, userID, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	const dataSQL = `
		SELECT b.id, b.title, b.authors, b.category_id, c.name,
		       b.published_date, b.description, b.language, b.thumbnail_url, b.page_count,
		       b.isbn, b.barcode, b.is_available_for_loan, b.user_id,
		       b.created_at, b.updated_at
		FROM library_books lb
		JOIN books b ON b.id = lb.book_id
		JOIN categories c ON c.id = b.category_id
		WHERE lb.user_id = $1 AND lb.status = $2
		ORDER BY b.title ASC
		LIMIT $3 OFFSET $4`

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, userID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Authors, &b.CategoryID, &b.CategoryName,
			&b.PublishedDate, &b.Description, &b.Language, &b.ThumbnailURL, &b.PageCount,
			&b.ISBN, &b.Barcode, &b.IsAvailableForLoan, &b.OwnerID,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, total, rows.Err()
}

func (r *PostgresRepo) RemoveEntry(ctx context.Context, userID, bookID string) error {
	const deleteSQL = `DELETE FROM library_books WHERE user_id = $1 AND book_id = $2`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	commandTag, err := r.db.Exec(timeoutCtx, deleteSQL, userID, bookID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
