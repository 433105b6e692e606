package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

func newID() string {
	return uuid.NewString()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func insert(ctx context.Context, db *sqlx.DB, query string, row interface{}) error {
	_, err := db.NamedExecContext(ctx, query, row)
	return err
}

// get returns notFound when no row matches.
func get(ctx context.Context, db *sqlx.DB, dest interface{}, notFound error, query string, args ...interface{}) error {
	if err := db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound
		}
		return errors.Wrap(err, "getting row")
	}
	return nil
}

func selectAll[R, T any](ctx context.Context, db *sqlx.DB, conv func(R) T, query string, args ...interface{}) ([]T, error) {
	var rows []R
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting rows")
	}
	items := make([]T, 0, len(rows))
	for _, r := range rows {
		items = append(items, conv(r))
	}
	return items, nil
}

// getByID maps ids that are not UUIDs to notFound.
func getByID(ctx context.Context, db *sqlx.DB, dest interface{}, notFound error, query, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound
	}
	return get(ctx, db, dest, notFound, query, id)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "rows affected")
}
