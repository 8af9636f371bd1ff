package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xraph/enqueue/job"
)

const jobColumns = `
	id, args, attempt, attempted_at, attempted_by, created_at, errors,
	finalized_at, kind, max_attempts, priority, queue, scheduled_at,
	state, tags`

// Executor runs job statements on a *sql.DB or a caller's *sql.Tx.
type Executor struct {
	db dbtx
}

// JobInsert persists draft and returns the stored row.
func (e *Executor) JobInsert(ctx context.Context, draft *job.InsertDraft) (*job.Record, error) {
	tags, err := encodeTags(draft.Tags)
	if err != nil {
		return nil, fmt.Errorf("enqueue/sqlite: insert job: encode tags: %w", err)
	}

	row := e.db.QueryRowContext(ctx, `
		INSERT INTO enqueue_job (
			args, kind, attempt, max_attempts, priority, queue,
			state, tags, scheduled_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING`+jobColumns,
		string(draft.EncodedArgs), draft.Kind, draft.Attempt, draft.MaxAttempts,
		draft.Priority, draft.Queue, string(draft.State), tags,
		draft.ScheduledAt.UTC(), draft.CreatedAt.UTC(),
	)

	rec, err := scanRecord(row)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("enqueue/sqlite: insert job: %w: %w", job.ErrJobAlreadyExists, err)
		}
		return nil, fmt.Errorf("enqueue/sqlite: insert job: %w", err)
	}
	return rec, nil
}

// JobGet retrieves a job by ID.
func (e *Executor) JobGet(ctx context.Context, jobID int64) (*job.Record, error) {
	row := e.db.QueryRowContext(ctx, `SELECT`+jobColumns+` FROM enqueue_job WHERE id = ?`, jobID)

	rec, err := scanRecord(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("enqueue/sqlite: get job: %w", err)
	}
	return rec, nil
}

// JobListByKind returns jobs of the given kind ordered by ID.
func (e *Executor) JobListByKind(ctx context.Context, kind string) ([]*job.Record, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT`+jobColumns+` FROM enqueue_job WHERE kind = ? ORDER BY id`, kind)
	if err != nil {
		return nil, fmt.Errorf("enqueue/sqlite: list jobs: %w", err)
	}
	defer rows.Close()

	var recs []*job.Record
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("enqueue/sqlite: scan job row: %w", scanErr)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("enqueue/sqlite: iterate job rows: %w", err)
	}
	return recs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

var _ scanner = (*sql.Row)(nil)

func scanRecord(s scanner) (*job.Record, error) {
	var m jobModel
	if err := s.Scan(m.scanDest()...); err != nil {
		return nil, err
	}
	rec, err := fromJobModel(&m)
	if err != nil {
		return nil, fmt.Errorf("decode job %d: %w", m.ID, err)
	}
	return rec, nil
}
