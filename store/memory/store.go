package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/xraph/enqueue/job"
)

// Ensure Driver implements the driver contract at compile time.
var (
	_ job.Driver[*Tx] = (*Driver)(nil)
	_ job.Executor    = (*Driver)(nil)
	_ job.Executor    = (*Tx)(nil)
)

var (
	// ErrJobNotFound is returned by JobGet for an unknown or invisible ID.
	ErrJobNotFound = errors.New("enqueue/memory: job not found")

	// ErrTxDone is returned when a transaction is used after Commit or Rollback.
	ErrTxDone = errors.New("enqueue/memory: transaction has already been committed or rolled back")
)

// Driver is a fully in-memory job driver.
// Safe for concurrent access. Intended for unit testing and development.
type Driver struct {
	mu sync.RWMutex

	jobs   map[int64]*job.Record
	lastID int64
}

// New returns a new empty Driver.
func New() *Driver {
	return &Driver{
		jobs: make(map[int64]*job.Record),
	}
}

// GetExecutor returns the driver itself. Inserts through it are visible
// immediately.
func (d *Driver) GetExecutor() job.Executor { return d }

// UnwrapExecutor returns tx, whose inserts stay private until it commits.
func (d *Driver) UnwrapExecutor(tx *Tx) job.Executor { return tx }

// Begin starts a transaction.
func (d *Driver) Begin() *Tx {
	return &Tx{
		driver:  d,
		pending: make(map[int64]*job.Record),
	}
}

// JobInsert stores a new job and returns it with its assigned ID.
func (d *Driver) JobInsert(ctx context.Context, draft *job.InsertDraft) (*job.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	rec := recordFromDraft(d.nextIDLocked(), draft)
	d.jobs[rec.ID] = rec
	return cloneRecord(rec), nil
}

// JobGet returns the committed job with the given ID.
func (d *Driver) JobGet(_ context.Context, jobID int64) (*job.Record, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.jobs[jobID]
	if !ok {
		return nil, ErrJobNotFound
	}
	return cloneRecord(rec), nil
}

// JobList returns every committed job ordered by ID.
func (d *Driver) JobList(_ context.Context) ([]*job.Record, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	recs := make([]*job.Record, 0, len(d.jobs))
	for _, rec := range d.jobs {
		recs = append(recs, cloneRecord(rec))
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

// nextIDLocked allocates an ID. Like a database sequence, an allocated ID is
// never reused, even if the transaction that took it rolls back.
func (d *Driver) nextIDLocked() int64 {
	d.lastID++
	return d.lastID
}

// Tx buffers inserts until Commit. A Tx is safe for concurrent use, though
// callers normally use it from one goroutine.
type Tx struct {
	driver *Driver

	mu      sync.Mutex
	pending map[int64]*job.Record
	done    bool
}

// JobInsert stores a job in the transaction's private buffer.
func (tx *Tx) JobInsert(ctx context.Context, draft *job.InsertDraft) (*job.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx.mu.Lock()
	defer tx.mu.Unlock()

	if tx.done {
		return nil, ErrTxDone
	}

	tx.driver.mu.Lock()
	jobID := tx.driver.nextIDLocked()
	tx.driver.mu.Unlock()

	rec := recordFromDraft(jobID, draft)
	tx.pending[rec.ID] = rec
	return cloneRecord(rec), nil
}

// JobGet returns a job visible to the transaction: its own uncommitted
// inserts as well as committed jobs.
func (tx *Tx) JobGet(ctx context.Context, jobID int64) (*job.Record, error) {
	tx.mu.Lock()
	if tx.done {
		tx.mu.Unlock()
		return nil, ErrTxDone
	}
	rec, ok := tx.pending[jobID]
	tx.mu.Unlock()

	if ok {
		return cloneRecord(rec), nil
	}
	return tx.driver.JobGet(ctx, jobID)
}

// Commit makes the transaction's inserts visible in the driver.
func (tx *Tx) Commit(_ context.Context) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	if tx.done {
		return ErrTxDone
	}
	tx.done = true

	tx.driver.mu.Lock()
	defer tx.driver.mu.Unlock()
	for jobID, rec := range tx.pending {
		tx.driver.jobs[jobID] = rec
	}
	tx.pending = nil
	return nil
}

// Rollback discards the transaction's inserts.
func (tx *Tx) Rollback(_ context.Context) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	tx.pending = nil
	return nil
}

func recordFromDraft(jobID int64, draft *job.InsertDraft) *job.Record {
	return &job.Record{
		ID:          jobID,
		Args:        append([]byte(nil), draft.EncodedArgs...),
		Attempt:     draft.Attempt,
		CreatedAt:   draft.CreatedAt,
		Kind:        draft.Kind,
		MaxAttempts: draft.MaxAttempts,
		Priority:    draft.Priority,
		Queue:       draft.Queue,
		ScheduledAt: draft.ScheduledAt,
		State:       string(draft.State),
		Tags:        append([]string{}, draft.Tags...),
	}
}

func cloneRecord(rec *job.Record) *job.Record {
	cp := *rec
	cp.Args = append([]byte(nil), rec.Args...)
	cp.Tags = append([]string{}, rec.Tags...)
	if rec.AttemptedBy != nil {
		cp.AttemptedBy = append([]string(nil), rec.AttemptedBy...)
	}
	if rec.Errors != nil {
		cp.Errors = make([][]byte, len(rec.Errors))
		for i, e := range rec.Errors {
			cp.Errors[i] = append([]byte(nil), e...)
		}
	}
	return &cp
}
