package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker"
)

// DBCircuitBreaker guards a connection pool. It satisfies the Querier
// interface the PostgreSQL repositories depend on.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig returns configuration for the database circuit breaker.
// Opens after 5 consecutive infrastructure failures, 30 second timeout.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3, // half-open で許可する試行数
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
		IsSuccessful:     IsHealthyDBResult,
	}
}

// IsHealthyDBResult reports whether err says nothing about database health.
// Missing rows, cancelled requests and constraint or syntax errors reported by
// the server are caller problems and do not count toward tripping the circuit.
// Connection errors (class 08), resource exhaustion (53), operator
// intervention (57) and system errors (58) do.
func IsHealthyDBResult(err error) bool {
	if err == nil || errors.Is(err, sql.ErrNoRows) || errors.Is(err, context.Canceled) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, class := range []string{"08", "53", "57", "58"} {
			if strings.HasPrefix(pgErr.Code, class) {
				return false
			}
		}
		return true
	}
	return false
}

// NewDBCircuitBreaker wraps db with DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig wraps db with a custom configuration.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{
		cb: New(cfg),
		db: db,
	}
}

// QueryContext executes a query with circuit breaker protection.
// If the circuit is open, it returns gobreaker.ErrOpenState without hitting the database.
func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// ExecContext executes a statement with circuit breaker protection.
func (dcb *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}

// QueryRowContext executes a query that returns at most one row.
// *sql.Row defers its error to Scan, so the breaker cannot count the outcome.
// While the circuit is open the query runs on an already cancelled context
// and Scan reports context.Canceled without a round trip.
func (dcb *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	if dcb.cb.IsOpen() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		return dcb.db.QueryRowContext(cancelled, query, args...)
	}
	return dcb.db.QueryRowContext(ctx, query, args...)
}

// PingContext checks the connection without going through the breaker so a
// health probe can observe recovery while the circuit is open.
func (dcb *DBCircuitBreaker) PingContext(ctx context.Context) error {
	return dcb.db.PingContext(ctx)
}

// State returns the current state of the circuit breaker.
func (dcb *DBCircuitBreaker) State() gobreaker.State {
	return dcb.cb.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (dcb *DBCircuitBreaker) IsOpen() bool {
	return dcb.cb.IsOpen()
}

// DB returns the underlying pool for migrations and pool statistics.
func (dcb *DBCircuitBreaker) DB() *sql.DB {
	return dcb.db
}
