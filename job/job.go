package job

import "time"

// State represents the lifecycle state of a job.
type State string

const (
	// StateAvailable means the job can be claimed by a worker immediately.
	StateAvailable State = "available"
	// StateCancelled means the job was explicitly cancelled.
	StateCancelled State = "cancelled"
	// StateCompleted means the job finished successfully.
	StateCompleted State = "completed"
	// StateDiscarded means the job errored too many times and will not be retried.
	StateDiscarded State = "discarded"
	// StateRetryable means the job failed and is waiting for its next attempt.
	StateRetryable State = "retryable"
	// StateRunning means a worker is currently executing the job.
	StateRunning State = "running"
	// StateScheduled means the job becomes available at its ScheduledAt time.
	StateScheduled State = "scheduled"
)

// Valid reports whether s is one of the known job states.
func (s State) Valid() bool {
	switch s {
	case StateAvailable, StateCancelled, StateCompleted, StateDiscarded,
		StateRetryable, StateRunning, StateScheduled:
		return true
	}
	return false
}

// Finalized reports whether s is a terminal state.
func (s State) Finalized() bool {
	return s == StateCancelled || s == StateCompleted || s == StateDiscarded
}

// Row is a job as persisted in storage. The client returns a Row from every
// insert; rows are owned by the caller once returned.
type Row struct {
	// ID is assigned by storage and never changes.
	ID int64

	// Args is the job's decoded JSON payload.
	Args map[string]any

	// EncodedArgs is the payload as stored.
	EncodedArgs []byte

	// Attempt is the number of times the job has been worked. Jobs are
	// inserted at 0.
	Attempt int

	// AttemptedAt is the last time the job was worked. Nil on insert.
	AttemptedAt *time.Time

	// AttemptedBy lists the worker IDs that have worked the job.
	AttemptedBy []string

	// CreatedAt is when the job was inserted.
	CreatedAt time.Time

	// Errors holds one entry per failed attempt, oldest first.
	Errors []AttemptError

	// FinalizedAt is when the job reached a terminal state.
	FinalizedAt *time.Time

	// Kind identifies the type of job and which worker runs it.
	Kind string

	// MaxAttempts is how many times the job may be tried before it's
	// discarded.
	MaxAttempts int

	// Priority orders fetching, 1 being the highest and 4 the lowest.
	Priority int

	// Queue is the name of the queue the job is worked from.
	Queue string

	// ScheduledAt is the earliest time the job may be worked.
	ScheduledAt time.Time

	// State is the job's current state.
	State State

	// Tags are user-supplied labels. Never nil on a decoded row.
	Tags []string
}

// AttemptError is an error from a single failed job attempt. Attempt errors
// are written by workers; this package only decodes them.
type AttemptError struct {
	// At is when the error occurred.
	At time.Time `json:"at"`

	// Attempt is the attempt number the error occurred on.
	Attempt int `json:"attempt"`

	// Error is the stringified error or panic value.
	Error string `json:"error"`

	// Trace is a stack trace when the attempt panicked.
	Trace string `json:"trace"`
}
