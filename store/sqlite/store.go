package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/xraph/enqueue/job"
)

// Ensure Driver implements the driver contract at compile time.
var (
	_ job.Driver[*sql.Tx] = (*Driver)(nil)
	_ job.Executor        = (*Executor)(nil)
)

// ErrJobNotFound is returned by JobGet for an unknown or invisible ID.
var ErrJobNotFound = errors.New("enqueue/sqlite: job not found")

// Driver is a SQLite job driver.
// The caller owns the *sql.DB lifecycle; Driver never closes it.
type Driver struct {
	db *sql.DB
}

// New creates a new SQLite driver.
func New(db *sql.DB) *Driver {
	return &Driver{db: db}
}

// GetExecutor returns an executor running on the database handle.
func (d *Driver) GetExecutor() job.Executor {
	return &Executor{db: d.db}
}

// UnwrapExecutor returns an executor bound to tx.
func (d *Driver) UnwrapExecutor(tx *sql.Tx) job.Executor {
	return d.Executor(tx)
}

// Executor returns a concrete executor bound to tx, or to the database
// handle when tx is nil. It exposes reads that aren't part of the driver
// contract.
func (d *Driver) Executor(tx *sql.Tx) *Executor {
	if tx == nil {
		return &Executor{db: d.db}
	}
	return &Executor{db: tx}
}

// DB returns the underlying *sql.DB for advanced usage.
func (d *Driver) DB() *sql.DB {
	return d.db
}

// Ping checks database connectivity.
func (d *Driver) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// dbtx is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type dbtx interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// isNoRows returns true when err indicates no rows were found.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isDuplicateKey checks if a SQLite error is a unique or primary key
// constraint violation.
func isDuplicateKey(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
