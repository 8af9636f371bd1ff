package enqueue

import (
	"errors"

	"github.com/xraph/enqueue/job"
)

var (
	// Configuration errors.
	ErrNoDriver       = errors.New("enqueue: no driver configured")
	ErrNilTimeNowFunc = errors.New("enqueue: time now func is nil")
	ErrNilClientID    = errors.New("enqueue: client id is nil")

	// ErrNoRecord is returned when the insert chain reports success without
	// a stored record, which only a misbehaving middleware can cause.
	ErrNoRecord = errors.New("enqueue: insert returned no record")

	// ErrJobAlreadyExists is returned, wrapped, when storage rejects an insert
	// as a duplicate.
	ErrJobAlreadyExists = job.ErrJobAlreadyExists
)
