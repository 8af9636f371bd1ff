package job

import (
	"errors"
	"fmt"
)

var (
	// Args errors.
	ErrMissingKind    = errors.New("enqueue: job kind is empty")
	ErrInvalidPayload = errors.New("enqueue: job args must encode to a JSON object")

	// Insert option errors.
	ErrInvalidPriority    = errors.New("enqueue: priority must be between 1 and 4")
	ErrInvalidMaxAttempts = errors.New("enqueue: max attempts must be at least 1")
	ErrInvalidQueue       = errors.New("enqueue: invalid queue name")
	ErrInvalidTag         = errors.New("enqueue: invalid tag")
	ErrDuplicateTag       = errors.New("enqueue: duplicate tag")

	// Storage errors.
	ErrJobAlreadyExists = errors.New("enqueue: job already exists")
)

// ArgsError reports job args that cannot be inserted. It is returned before
// any storage call is made.
type ArgsError struct {
	// Kind is the args' kind, empty when the kind itself is missing.
	Kind string
	Err  error
}

func (e *ArgsError) Error() string {
	if e.Kind == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (kind %q)", e.Err, e.Kind)
}

func (e *ArgsError) Unwrap() error { return e.Err }

// InsertOptsError reports an effective insert option outside its valid range.
type InsertOptsError struct {
	Field string
	Err   error
}

func (e *InsertOptsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Field)
}

func (e *InsertOptsError) Unwrap() error { return e.Err }

// DecodeError reports a stored record whose contents don't have the expected
// shape. It indicates corrupted data or a schema mismatch.
type DecodeError struct {
	// Field is the stored column that failed to decode.
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("enqueue: decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
