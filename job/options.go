package job

import (
	"strings"
	"time"
	"unicode"
)

const (
	// MaxAttemptsDefault is the max attempts of a job when no option sets it.
	MaxAttemptsDefault = 25

	// PriorityDefault is the priority of a job when no option sets it.
	PriorityDefault = 1

	// PriorityMin and PriorityMax bound job priority. 1 is fetched first.
	PriorityMin = 1
	PriorityMax = 4

	// QueueDefault is the queue a job is inserted into when no option sets it.
	QueueDefault = "default"

	queueNameMaxLength = 128
	tagMaxLength       = 255
)

// InsertOpts are optional overrides for a single insert. The zero value of
// every field means "no opinion": the value falls through to the next layer.
// A nil Tags is unset, while a non-nil empty Tags explicitly clears tags.
type InsertOpts struct {
	// MaxAttempts is how many times the job may be tried before it's discarded.
	MaxAttempts int

	// Priority of the job, between 1 (highest) and 4 (lowest).
	Priority int

	// Queue is the name of the queue to insert into.
	Queue string

	// Tags are arbitrary labels for grouping and finding jobs.
	Tags []string

	// ScheduledAt delays the job until the given time. Zero means now.
	ScheduledAt time.Time
}

// EffectiveOpts are insert options after every layer has been applied. All
// fields are set.
type EffectiveOpts struct {
	MaxAttempts int
	Priority    int
	Queue       string
	Tags        []string
	ScheduledAt time.Time
}

// ResolveOpts merges call-level options, args-level options and library
// defaults, field by field in that order of precedence. Either layer may be
// nil. now is used when no layer sets ScheduledAt.
func ResolveOpts(now time.Time, callOpts, argOpts *InsertOpts) EffectiveOpts {
	var call, arg InsertOpts
	if callOpts != nil {
		call = *callOpts
	}
	if argOpts != nil {
		arg = *argOpts
	}

	tags := call.Tags
	if tags == nil {
		tags = arg.Tags
	}

	scheduledAt := call.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = arg.ScheduledAt
	}
	if scheduledAt.IsZero() {
		scheduledAt = now
	}

	return EffectiveOpts{
		MaxAttempts: firstSet(call.MaxAttempts, arg.MaxAttempts, MaxAttemptsDefault),
		Priority:    firstSet(call.Priority, arg.Priority, PriorityDefault),
		Queue:       firstSet(call.Queue, arg.Queue, QueueDefault),
		Tags:        append([]string{}, tags...),
		ScheduledAt: scheduledAt,
	}
}

// Validate checks the resolved options against the ranges storage accepts.
func (o EffectiveOpts) Validate() error {
	if o.Priority < PriorityMin || o.Priority > PriorityMax {
		return &InsertOptsError{Field: "priority", Err: ErrInvalidPriority}
	}
	if o.MaxAttempts < 1 {
		return &InsertOptsError{Field: "max_attempts", Err: ErrInvalidMaxAttempts}
	}
	if o.Queue == "" || len(o.Queue) > queueNameMaxLength || strings.IndexFunc(o.Queue, unicode.IsSpace) >= 0 {
		return &InsertOptsError{Field: "queue", Err: ErrInvalidQueue}
	}
	seen := make(map[string]struct{}, len(o.Tags))
	for _, tag := range o.Tags {
		if tag == "" || len(tag) > tagMaxLength || strings.Contains(tag, ",") {
			return &InsertOptsError{Field: "tags", Err: ErrInvalidTag}
		}
		if _, dup := seen[tag]; dup {
			return &InsertOptsError{Field: "tags", Err: ErrDuplicateTag}
		}
		seen[tag] = struct{}{}
	}
	return nil
}

// firstSet returns the first non-zero value.
func firstSet[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}
