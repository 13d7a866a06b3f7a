package store

import (
	"context"
	"database/sql"
)

// DBTX is the database handle the user, contact and address stores run
// their queries against. Both *sql.DB and *sql.Tx satisfy it, so a store
// created on the pool can be rebound to a transaction via WithTx without
// changing any query code.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
