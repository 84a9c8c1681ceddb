package book

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

const bookColumns = `
	b.id, b.title, b.authors, b.category_id, c.name,
	b.published_date, b.description, b.language, b.thumbnail_url, b.page_count,
	b.isbn, b.barcode, b.is_available_for_loan, b.user_id,
	b.created_at, b.updated_at`

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Authors, &b.CategoryID, &b.CategoryName,
		&b.PublishedDate, &b.Description, &b.Language, &b.ThumbnailURL, &b.PageCount,
		&b.ISBN, &b.Barcode, &b.IsAvailableForLoan, &b.OwnerID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1
		LIMIT 1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) ListAvailable(ctx context.Context) ([]Book, error) {
	query := `
		SELECT ` + bookColumns + `,
		       COALESCE(u.username, '` + UnknownOwner + `')
		FROM books b
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.is_available_for_loan = true
		ORDER BY b.title ASC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Authors, &b.CategoryID, &b.CategoryName,
			&b.PublishedDate, &b.Description, &b.Language, &b.ThumbnailURL, &b.PageCount,
			&b.ISBN, &b.Barcode, &b.IsAvailableForLoan, &b.OwnerID,
			&b.CreatedAt, &b.UpdatedAt,
			&b.OwnerUsername,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) MarkAvailable(ctx context.Context, bookID, ownerID string) (Book, error) {
	const updateSQL = `
		UPDATE books
		SET is_available_for_loan = true, user_id = $2, updated_at = now()
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, updateSQL, bookID, ownerID)
	if err != nil {
		return Book{}, err
	}
	if tag.RowsAffected() == 0 {
		return Book{}, ErrNotFound
	}
	return r.GetByID(ctx, bookID)
}
