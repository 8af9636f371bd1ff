package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/xraph/enqueue/job"
)

// ── Job model ─────────────────────────────────────────────────────

// jobModel mirrors an enqueue_job row. Array columns hold JSON text.
type jobModel struct {
	ID          int64
	Args        string
	Attempt     int
	AttemptedAt nullTime
	AttemptedBy sql.NullString
	CreatedAt   nullTime
	Errors      sql.NullString
	FinalizedAt nullTime
	Kind        string
	MaxAttempts int
	Priority    int
	Queue       string
	ScheduledAt nullTime
	State       string
	Tags        sql.NullString
}

func (m *jobModel) scanDest() []any {
	return []any{
		&m.ID, &m.Args, &m.Attempt, &m.AttemptedAt, &m.AttemptedBy,
		&m.CreatedAt, &m.Errors, &m.FinalizedAt, &m.Kind,
		&m.MaxAttempts, &m.Priority, &m.Queue, &m.ScheduledAt,
		&m.State, &m.Tags,
	}
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func fromJobModel(m *jobModel) (*job.Record, error) {
	rec := &job.Record{
		ID:          m.ID,
		Args:        []byte(m.Args),
		Attempt:     m.Attempt,
		CreatedAt:   m.CreatedAt.Time.UTC(),
		Kind:        m.Kind,
		MaxAttempts: m.MaxAttempts,
		Priority:    m.Priority,
		Queue:       m.Queue,
		ScheduledAt: m.ScheduledAt.Time.UTC(),
		State:       m.State,
	}

	if m.AttemptedAt.Valid {
		t := m.AttemptedAt.Time.UTC()
		rec.AttemptedAt = &t
	}
	if m.FinalizedAt.Valid {
		t := m.FinalizedAt.Time.UTC()
		rec.FinalizedAt = &t
	}

	if m.AttemptedBy.Valid {
		if err := json.Unmarshal([]byte(m.AttemptedBy.String), &rec.AttemptedBy); err != nil {
			return nil, fmt.Errorf("attempted_by: %w", err)
		}
	}
	if m.Tags.Valid {
		if err := json.Unmarshal([]byte(m.Tags.String), &rec.Tags); err != nil {
			return nil, fmt.Errorf("tags: %w", err)
		}
	}
	if m.Errors.Valid {
		var raw []json.RawMessage
		if err := json.Unmarshal([]byte(m.Errors.String), &raw); err != nil {
			return nil, fmt.Errorf("errors: %w", err)
		}
		rec.Errors = make([][]byte, len(raw))
		for i, e := range raw {
			rec.Errors[i] = []byte(e)
		}
	}

	return rec, nil
}

// nullTime scans a timestamp column. go-sqlite3 returns time.Time for
// columns declared TIMESTAMP and text otherwise, so both are accepted.
type nullTime struct {
	Time  time.Time
	Valid bool
}

var _ sql.Scanner = (*nullTime)(nil)

// Scan implements sql.Scanner.
func (nt *nullTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*nt = nullTime{}
		return nil
	case time.Time:
		*nt = nullTime{Time: v, Valid: true}
		return nil
	case string:
		return nt.parse(v)
	case []byte:
		return nt.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", value)
	}
}

func (nt *nullTime) parse(s string) error {
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*nt = nullTime{Time: t, Valid: true}
			return nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*nt = nullTime{Time: t, Valid: true}
		return nil
	}
	return fmt.Errorf("parse timestamp %q", s)
}

