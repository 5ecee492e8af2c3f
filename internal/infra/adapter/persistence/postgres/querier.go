package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"news-portal/internal/observability/metrics"
)

// Querier is the subset of *sql.DB the repositories use.
// *sql.DB and *circuitbreaker.DBCircuitBreaker both satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// uniqueViolation is the SQLSTATE PostgreSQL returns for a unique index conflict.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// observe records the duration of a query under operation.
func observe(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}
