package bunstore

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/xraph/enqueue/job"
)

// Ensure Driver implements the driver contract at compile time.
var (
	_ job.Driver[bun.Tx] = (*Driver)(nil)
	_ job.Executor       = (*Executor)(nil)
)

// Driver is a Bun ORM job driver using the PostgreSQL dialect.
// The caller owns the *bun.DB lifecycle; Driver never closes it.
type Driver struct {
	db *bun.DB
}

// New creates a new Bun driver.
func New(db *bun.DB) *Driver {
	return &Driver{db: db}
}

// GetExecutor returns an executor running on the database handle.
func (d *Driver) GetExecutor() job.Executor {
	return &Executor{db: d.db}
}

// UnwrapExecutor returns an executor bound to tx.
func (d *Driver) UnwrapExecutor(tx bun.Tx) job.Executor {
	return &Executor{db: tx}
}

// Executor returns a concrete executor on any bun.IDB. It exposes reads
// that aren't part of the driver contract.
func (d *Driver) Executor(db bun.IDB) *Executor {
	if db == nil {
		db = d.db
	}
	return &Executor{db: db}
}

// DB returns the underlying *bun.DB for advanced usage.
func (d *Driver) DB() *bun.DB {
	return d.db
}

// Ping checks database connectivity.
func (d *Driver) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}
