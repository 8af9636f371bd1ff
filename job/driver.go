package job

import (
	"context"
	"time"
)

// Executor writes jobs through one database handle: a pool, a connection, or
// a transaction supplied by the caller. Executors never begin, commit, or roll
// back transactions.
type Executor interface {
	// JobInsert persists draft and returns the row as stored, including the
	// generated ID and any values the backend normalised. Backend errors are
	// returned wrapped with %w so callers can inspect them.
	JobInsert(ctx context.Context, draft *InsertDraft) (*Record, error)
}

// Driver adapts a storage backend to the client. TTx is the backend's
// transaction type, which callers pass to Client.InsertTx.
type Driver[TTx any] interface {
	// GetExecutor returns an executor outside of any caller transaction.
	GetExecutor() Executor

	// UnwrapExecutor returns an executor bound to tx.
	UnwrapExecutor(tx TTx) Executor
}

// Record is the backend-agnostic shape of a stored job row. Drivers convert
// their native models into a Record; ToRow turns it into a Row.
type Record struct {
	ID          int64
	Args        []byte
	Attempt     int
	AttemptedAt *time.Time
	AttemptedBy []string
	CreatedAt   time.Time
	// Errors holds one JSON-encoded AttemptError per element.
	Errors      [][]byte
	FinalizedAt *time.Time
	Kind        string
	MaxAttempts int
	Priority    int
	Queue       string
	ScheduledAt time.Time
	State       string
	Tags        []string
}
