package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xraph/enqueue/job"
)

// DefaultTable is the table jobs are inserted into unless WithTable is used.
const DefaultTable = "enqueue_job"

// Ensure Driver implements the driver contract at compile time.
var (
	_ job.Driver[pgx.Tx] = (*Driver)(nil)
	_ job.Executor       = (*Executor)(nil)
)

// Driver is a PostgreSQL job driver using pgx/v5.
// The caller owns the pool's lifecycle; Driver never closes it.
type Driver struct {
	pool  *pgxpool.Pool
	table string
}

// Option configures the Driver.
type Option func(*Driver)

// WithTable sets the job table. A schema-qualified name such as
// "jobs.enqueue_job" is quoted part by part.
func WithTable(name string) Option {
	return func(d *Driver) {
		d.table = name
	}
}

// New creates a driver backed by pool.
func New(pool *pgxpool.Pool, opts ...Option) *Driver {
	d := &Driver{
		pool:  pool,
		table: DefaultTable,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GetExecutor returns an executor that runs each insert on the pool in its
// own implicit transaction.
func (d *Driver) GetExecutor() job.Executor {
	return d.newExecutor(d.pool)
}

// UnwrapExecutor returns an executor bound to tx.
func (d *Driver) UnwrapExecutor(tx pgx.Tx) job.Executor {
	return d.newExecutor(tx)
}

// Executor returns a concrete executor bound to tx, or to the pool when tx
// is nil. It exposes reads that aren't part of the driver contract.
func (d *Driver) Executor(tx pgx.Tx) *Executor {
	if tx == nil {
		return d.newExecutor(d.pool)
	}
	return d.newExecutor(tx)
}

// Ping checks database connectivity.
func (d *Driver) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Pool returns the underlying pgxpool.Pool for advanced usage.
func (d *Driver) Pool() *pgxpool.Pool {
	return d.pool
}

func (d *Driver) newExecutor(db dbtx) *Executor {
	return &Executor{
		db:    db,
		table: quoteTable(d.table),
	}
}

// dbtx is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func quoteTable(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
