package repository

import (
	"context"
	"errors"
	"time"

	"github.com/7Pranavv/Evenoo/internal/database"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// store is embedded by every repository: a connection plus the per-call timeout.
type store struct {
	db      database.DBTX
	timeout time.Duration
}

func newStore(db database.DBTX, timeout time.Duration) store {
	return store{db: db, timeout: timeout}
}

func (s store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return database.WithTimeout(ctx, s.timeout)
}

// wrapErr maps pgx.ErrNoRows to notFound (when given) and anything else to a StoreError.
func wrapErr(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return apperrors.NewStoreError(op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// collect drains rows with scan, closing them.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
