package bunstore

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"

	"github.com/xraph/enqueue/job"
)

// ── Job model ─────────────────────────────────────────────────────

type jobModel struct {
	bun.BaseModel `bun:"table:enqueue_job"`

	ID          int64           `bun:"id,pk,autoincrement"`
	Args        json.RawMessage `bun:"args,notnull,type:jsonb"`
	Attempt     int             `bun:"attempt,notnull"`
	AttemptedAt *time.Time      `bun:"attempted_at"`
	AttemptedBy []string        `bun:"attempted_by,array"`
	CreatedAt   time.Time       `bun:"created_at,notnull"`
	Errors      []string        `bun:"errors,array,type:jsonb[]"`
	FinalizedAt *time.Time      `bun:"finalized_at"`
	Kind        string          `bun:"kind,notnull"`
	MaxAttempts int             `bun:"max_attempts,notnull"`
	Priority    int             `bun:"priority,notnull"`
	Queue       string          `bun:"queue,notnull"`
	ScheduledAt time.Time       `bun:"scheduled_at,notnull"`
	State       string          `bun:"state,notnull"`
	Tags        []string        `bun:"tags,array,notnull"`
}

func toJobModel(d *job.InsertDraft) *jobModel {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &jobModel{
		Args:        json.RawMessage(d.EncodedArgs),
		Attempt:     d.Attempt,
		CreatedAt:   d.CreatedAt,
		Kind:        d.Kind,
		MaxAttempts: d.MaxAttempts,
		Priority:    d.Priority,
		Queue:       d.Queue,
		ScheduledAt: d.ScheduledAt,
		State:       string(d.State),
		Tags:        tags,
	}
}

func fromJobModel(m *jobModel) *job.Record {
	var attemptErrs [][]byte
	if m.Errors != nil {
		attemptErrs = make([][]byte, len(m.Errors))
		for i, e := range m.Errors {
			attemptErrs[i] = []byte(e)
		}
	}

	return &job.Record{
		ID:          m.ID,
		Args:        []byte(m.Args),
		Attempt:     m.Attempt,
		AttemptedAt: utcPtr(m.AttemptedAt),
		AttemptedBy: m.AttemptedBy,
		CreatedAt:   m.CreatedAt.UTC(),
		Errors:      attemptErrs,
		FinalizedAt: utcPtr(m.FinalizedAt),
		Kind:        m.Kind,
		MaxAttempts: m.MaxAttempts,
		Priority:    m.Priority,
		Queue:       m.Queue,
		ScheduledAt: m.ScheduledAt.UTC(),
		State:       m.State,
		Tags:        m.Tags,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
