package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/dehashizia/ReadMeMore-sub000/internal/book"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const selectColumns = `
	b.id, b.title, b.authors, b.category_id, c.name,
	b.published_date, b.description, b.language, b.thumbnail_url, b.page_count,
	b.isbn, b.barcode, b.is_available_for_loan, b.user_id,
	b.created_at, b.updated_at`

func (r *PostgresRepo) SearchByTitle(ctx context.Context, query string) ([]book.Book, error) {
	sql := `
		SELECT ` + selectColumns + `
		FROM books b
		JOIN categories c ON c.id = b.category_id
		WHERE b.title ILIKE '%' || $1 || '%'
		ORDER BY b.title ASC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sql, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []book.Book
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Authors, &b.CategoryID, &b.CategoryName,
			&b.PublishedDate, &b.Description, &b.Language, &b.ThumbnailURL, &b.PageCount,
			&b.ISBN, &b.Barcode, &b.IsAvailableForLoan, &b.OwnerID,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (book.Book, error) {
	sql := `
		SELECT ` + selectColumns + `
		FROM books b
		JOIN categories c ON c.id = b.category_id
		WHERE b.isbn = $1
		LIMIT 1`

	var b book.Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, sql, isbn).Scan(
		&b.ID, &b.Title, &b.Authors, &b.CategoryID, &b.CategoryName,
		&b.PublishedDate, &b.Description, &b.Language, &b.ThumbnailURL, &b.PageCount,
		&b.ISBN, &b.Barcode, &b.IsAvailableForLoan, &b.OwnerID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, b *book.Book) error {
	const sql = `
		INSERT INTO books (id, title, authors, category_id, published_date, description,
		                   language, thumbnail_url, page_count, isbn, barcode,
		                   is_available_for_loan, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false, now(), now())
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, sql,
		b.Title, b.Authors, b.CategoryID, b.PublishedDate, b.Description,
		b.Language, b.ThumbnailURL, b.PageCount, b.ISBN, b.Barcode,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errDuplicateISBN
		}
		return err
	}
	return nil
}

// UpsertCategory is an insert-or-ignore keyed by the unique name; the
// first writer wins and every caller reads the surviving row back.
func (r *PostgresRepo) UpsertCategory(ctx context.Context, name string) (Category, error) {
	const sql = `
		WITH ins AS (
			INSERT INTO categories (id, name)
			VALUES (gen_random_uuid(), $1)
			ON CONFLICT (name) DO NOTHING
			RETURNING id, name
		)
		SELECT id, name FROM ins
		UNION ALL
		SELECT id, name FROM categories WHERE name = $1
		LIMIT 1`

	var c Category
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, sql, name).Scan(&c.ID, &c.Name); err != nil {
		return Category{}, err
	}
	return c, nil
}
