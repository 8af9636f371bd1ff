package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xraph/enqueue/job"
)

const jobColumns = `
	id, args, attempt, attempted_at, attempted_by, created_at, errors,
	finalized_at, kind, max_attempts, priority, queue, scheduled_at,
	state, tags`

// Executor runs job statements on a pool or a caller's transaction.
type Executor struct {
	db    dbtx
	table string
}

// JobInsert persists draft and returns the stored row.
func (e *Executor) JobInsert(ctx context.Context, draft *job.InsertDraft) (*job.Record, error) {
	row := e.db.QueryRow(ctx, `
		INSERT INTO `+e.table+` (
			args, kind, attempt, max_attempts, priority, queue,
			state, tags, scheduled_at, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10
		)
		RETURNING`+jobColumns,
		draft.EncodedArgs, draft.Kind, draft.Attempt, draft.MaxAttempts,
		draft.Priority, draft.Queue, string(draft.State), draft.Tags,
		draft.ScheduledAt, draft.CreatedAt,
	)

	rec, err := scanRecord(row)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("enqueue/postgres: insert job: %w: %w", job.ErrJobAlreadyExists, err)
		}
		return nil, fmt.Errorf("enqueue/postgres: insert job: %w", err)
	}
	return rec, nil
}

// JobGet retrieves a job by ID.
func (e *Executor) JobGet(ctx context.Context, jobID int64) (*job.Record, error) {
	row := e.db.QueryRow(ctx, `SELECT`+jobColumns+` FROM `+e.table+` WHERE id = $1`, jobID)

	rec, err := scanRecord(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("enqueue/postgres: get job: %w", err)
	}
	return rec, nil
}

// JobListByKind returns jobs of the given kind ordered by ID.
func (e *Executor) JobListByKind(ctx context.Context, kind string) ([]*job.Record, error) {
	rows, err := e.db.Query(ctx, `SELECT`+jobColumns+` FROM `+e.table+` WHERE kind = $1 ORDER BY id`, kind)
	if err != nil {
		return nil, fmt.Errorf("enqueue/postgres: list jobs: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func scanRecord(row pgx.Row) (*job.Record, error) {
	var rec job.Record
	err := row.Scan(
		&rec.ID, &rec.Args, &rec.Attempt, &rec.AttemptedAt, &rec.AttemptedBy,
		&rec.CreatedAt, &rec.Errors, &rec.FinalizedAt, &rec.Kind,
		&rec.MaxAttempts, &rec.Priority, &rec.Queue, &rec.ScheduledAt,
		&rec.State, &rec.Tags,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.ScheduledAt = rec.ScheduledAt.UTC()
	if rec.AttemptedAt != nil {
		t := rec.AttemptedAt.UTC()
		rec.AttemptedAt = &t
	}
	if rec.FinalizedAt != nil {
		t := rec.FinalizedAt.UTC()
		rec.FinalizedAt = &t
	}
	return &rec, nil
}

func collectRecords(rows pgx.Rows) ([]*job.Record, error) {
	var recs []*job.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("enqueue/postgres: scan job row: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("enqueue/postgres: iterate job rows: %w", err)
	}
	return recs, nil
}
