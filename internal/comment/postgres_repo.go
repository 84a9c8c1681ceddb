package comment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
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

func (r *PostgresRepo) Create(ctx context.Context, c *Comment) error {
	const sql = `
		INSERT INTO comments (id, book_id, user_id, text, rating, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, now())
		RETURNING id, created_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, sql, c.BookID, c.UserID, c.Text, c.Rating).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) ListByBook(ctx context.Context, bookID string) ([]Comment, error) {
	const sql = `
		SELECT cm.id, cm.book_id, cm.user_id, u.username, cm.text, cm.rating, cm.created_at
		FROM comments cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.book_id = $1
		ORDER BY cm.created_at DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sql, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.BookID, &c.UserID, &c.Username, &c.Text, &c.Rating, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Delete(ctx context.Context, commentID, userID string) error {
	const existsSQL = `SELECT user_id FROM comments WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var authorID string
	if err := r.db.QueryRow(timeoutCtx, existsSQL, commentID).Scan(&authorID); err != nil {
		return ErrNotFound
	}
	if authorID != userID {
		return ErrForbidden
	}

	const deleteSQL = `DELETE FROM comments WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(timeoutCtx, deleteSQL, commentID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
