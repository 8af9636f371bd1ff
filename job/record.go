package job

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var errNotObject = errors.New("not a JSON object")

// ToRow decodes a stored record into a Row.
//
// Attempt error timestamps are truncated to whole seconds, matching the
// precision they're stored with by workers. A missing tags value decodes to
// an empty slice; any other malformed column is a *DecodeError.
func ToRow(rec *Record) (*Row, error) {
	var args map[string]any
	if err := json.Unmarshal(rec.Args, &args); err != nil {
		return nil, &DecodeError{Field: "args", Err: err}
	}
	if args == nil {
		return nil, &DecodeError{Field: "args", Err: errNotObject}
	}

	var attemptErrs []AttemptError
	if len(rec.Errors) > 0 {
		attemptErrs = make([]AttemptError, len(rec.Errors))
		for i, raw := range rec.Errors {
			if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				return nil, &DecodeError{Field: "errors", Err: fmt.Errorf("element %d: %w", i, errNotObject)}
			}
			if err := json.Unmarshal(raw, &attemptErrs[i]); err != nil {
				return nil, &DecodeError{Field: "errors", Err: fmt.Errorf("element %d: %w", i, err)}
			}
			attemptErrs[i].At = attemptErrs[i].At.Truncate(time.Second)
		}
	}

	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Row{
		ID:          rec.ID,
		Args:        args,
		EncodedArgs: rec.Args,
		Attempt:     rec.Attempt,
		AttemptedAt: rec.AttemptedAt,
		AttemptedBy: rec.AttemptedBy,
		CreatedAt:   rec.CreatedAt,
		Errors:      attemptErrs,
		FinalizedAt: rec.FinalizedAt,
		Kind:        rec.Kind,
		MaxAttempts: rec.MaxAttempts,
		Priority:    rec.Priority,
		Queue:       rec.Queue,
		ScheduledAt: rec.ScheduledAt,
		State:       State(rec.State),
		Tags:        tags,
	}, nil
}
