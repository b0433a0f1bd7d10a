package repository

import (
	"context"
	"database/sql"

	"github.com/tugu-digital/dots/internal/infrastructure/persistence/sqlite"
)

// getExecutor returns the transaction carried by ctx when one is in flight,
// falling back to the connection pool. The key lives in the sqlite package
// so repositories and the transaction manager cannot disagree on it.
func getExecutor(ctx context.Context, db *sql.DB) executor {
	if tx, ok := sqlite.TxFromContext(ctx); ok {
		return tx
	}
	return db
}

// executor interface covers both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
