package job

import "time"

// InsertDraft is a fully resolved job ready to be written by an Executor.
// Drivers must not retain a draft beyond the JobInsert call.
type InsertDraft struct {
	EncodedArgs []byte
	Kind        string
	Attempt     int
	MaxAttempts int
	Priority    int
	Queue       string
	State       State
	Tags        []string
	ScheduledAt time.Time
	CreatedAt   time.Time
}

// InitialState returns the state a job starts in. A job scheduled at or
// before now is available immediately.
func InitialState(scheduledAt, now time.Time) State {
	if scheduledAt.After(now) {
		return StateScheduled
	}
	return StateAvailable
}

// BuildDraft assembles the row to insert from encoded args and resolved
// options. It's deterministic for a given now.
func BuildDraft(kind string, encodedArgs []byte, opts EffectiveOpts, now time.Time) *InsertDraft {
	return &InsertDraft{
		EncodedArgs: encodedArgs,
		Kind:        kind,
		Attempt:     0,
		MaxAttempts: opts.MaxAttempts,
		Priority:    opts.Priority,
		Queue:       opts.Queue,
		State:       InitialState(opts.ScheduledAt, now),
		Tags:        opts.Tags,
		ScheduledAt: opts.ScheduledAt.UTC(),
		CreatedAt:   now.UTC(),
	}
}
