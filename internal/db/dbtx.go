package db

import (
	"context"
	"database/sql"
)

// DBTX is what the catalog repository runs its statements against. Reads
// take the *sql.DB; a reindex passes the *sql.Tx of its unit of work so
// the clear-and-insert of every table commits or rolls back together.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
