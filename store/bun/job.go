package bunstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/xraph/enqueue/job"
)

// Executor runs job statements on a *bun.DB, bun.Conn or bun.Tx.
type Executor struct {
	db bun.IDB
}

// JobInsert persists draft and returns the stored row.
func (e *Executor) JobInsert(ctx context.Context, draft *job.InsertDraft) (*job.Record, error) {
	m := toJobModel(draft)
	_, err := e.db.NewInsert().
		Model(m).
		ExcludeColumn("attempted_at", "attempted_by", "errors", "finalized_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("enqueue/bun: insert job: %w: %w", job.ErrJobAlreadyExists, err)
		}
		return nil, fmt.Errorf("enqueue/bun: insert job: %w", err)
	}
	return fromJobModel(m), nil
}

// JobGet retrieves a job by ID.
func (e *Executor) JobGet(ctx context.Context, jobID int64) (*job.Record, error) {
	m := new(jobModel)
	err := e.db.NewSelect().Model(m).Where("id = ?", jobID).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("enqueue/bun: get job: %w", err)
	}
	return fromJobModel(m), nil
}

// JobListByKind returns jobs of the given kind ordered by ID.
func (e *Executor) JobListByKind(ctx context.Context, kind string) ([]*job.Record, error) {
	var models []jobModel
	err := e.db.NewSelect().Model(&models).Where("kind = ?", kind).OrderExpr("id ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("enqueue/bun: list jobs: %w", err)
	}

	recs := make([]*job.Record, 0, len(models))
	for i := range models {
		recs = append(recs, fromJobModel(&models[i]))
	}
	return recs, nil
}
