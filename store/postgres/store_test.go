//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	"github.com/xraph/enqueue"
	"github.com/xraph/enqueue/job"
	"github.com/xraph/enqueue/store/postgres"
)

const schema = `
	CREATE TABLE enqueue_job (
		id           BIGSERIAL PRIMARY KEY,
		args         JSONB NOT NULL DEFAULT '{}',
		attempt      SMALLINT NOT NULL DEFAULT 0,
		attempted_at TIMESTAMPTZ,
		attempted_by TEXT[],
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		errors       JSONB[],
		finalized_at TIMESTAMPTZ,
		kind         TEXT NOT NULL,
		max_attempts SMALLINT NOT NULL,
		priority     SMALLINT NOT NULL DEFAULT 1,
		queue        TEXT NOT NULL DEFAULT 'default',
		scheduled_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		state        TEXT NOT NULL DEFAULT 'available',
		tags         VARCHAR(255)[] NOT NULL DEFAULT '{}',
		CONSTRAINT priority_in_range CHECK (priority >= 1 AND priority <= 4),
		CONSTRAINT max_attempts_positive CHECK (max_attempts > 0)
	)`

type simpleArgs struct {
	JobNum int `json:"job_num"`
}

func (simpleArgs) Kind() string { return "simple" }

// setupTestDriver creates a Postgres container and returns a driver on a
// fresh enqueue_job table.
func setupTestDriver(t *testing.T) *postgres.Driver {
	t.Helper()

	ctx := context.Background()

	container, err := pgmodule.Run(ctx,
		"postgres:16-alpine",
		pgmodule.WithDatabase("enqueue_test"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if termErr := container.Terminate(ctx); termErr != nil {
			t.Logf("terminate container: %v", termErr)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	return postgres.New(pool)
}

func TestDriver_Ping(t *testing.T) {
	d := setupTestDriver(t)
	if err := d.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestInsert_Defaults(t *testing.T) {
	d := setupTestDriver(t)
	ctx := context.Background()

	client, err := enqueue.NewClient[pgx.Tx](d)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	before := time.Now().Add(-time.Second)
	row, err := client.Insert(ctx, simpleArgs{JobNum: 1}, nil)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if row.ID <= 0 {
		t.Fatalf("expected generated ID, got %d", row.ID)
	}
	if row.Kind != "simple" || row.Args["job_num"] != float64(1) {
		t.Fatalf("unexpected kind/args: %q %v", row.Kind, row.Args)
	}
	if row.Attempt != 0 || row.State != job.StateAvailable {
		t.Fatalf("unexpected attempt/state: %d %q", row.Attempt, row.State)
	}
	if row.Priority != 1 || row.Queue != "default" || row.MaxAttempts != 25 {
		t.Fatalf("expected defaults, got priority=%d queue=%q max_attempts=%d", row.Priority, row.Queue, row.MaxAttempts)
	}
	if row.Tags == nil || len(row.Tags) != 0 {
		t.Fatalf("expected empty tags, got %#v", row.Tags)
	}
	if row.ScheduledAt.Before(before) || row.ScheduledAt.After(time.Now().Add(time.Second)) {
		t.Fatalf("scheduled_at %v not near now", row.ScheduledAt)
	}
	if row.AttemptedAt != nil || row.AttemptedBy != nil || row.FinalizedAt != nil || row.Errors != nil {
		t.Fatalf("expected no attempt history, got %+v", row)
	}
}

func TestInsert_Options(t *testing.T) {
	d := setupTestDriver(t)
	ctx := context.Background()

	client, err := enqueue.NewClient[pgx.Tx](d)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	scheduledAt := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)
	row, err := client.Insert(ctx, simpleArgs{JobNum: 2}, &job.InsertOpts{
		Priority:    3,
		Queue:       "my_queue",
		Tags:        []string{"custom", "other"},
		MaxAttempts: 17,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if row.Priority != 3 || row.Queue != "my_queue" || row.MaxAttempts != 17 {
		t.Fatalf("options not stored: %+v", row)
	}
	if len(row.Tags) != 2 || row.Tags[0] != "custom" || row.Tags[1] != "other" {
		t.Fatalf("expected tags [custom other], got %v", row.Tags)
	}
	if row.State != job.StateScheduled {
		t.Fatalf("expected scheduled state, got %q", row.State)
	}
	if !row.ScheduledAt.Equal(scheduledAt) {
		t.Fatalf("expected scheduled_at %v, got %v", scheduledAt, row.ScheduledAt)
	}
}

func TestInsertTx_Rollback(t *testing.T) {
	d := setupTestDriver(t)
	ctx := context.Background()

	client, err := enqueue.NewClient[pgx.Tx](d)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	tx, err := d.Pool().Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	row, err := client.InsertTx(ctx, tx, simpleArgs{JobNum: 3}, nil)
	if err != nil {
		t.Fatalf("insert tx: %v", err)
	}
	if _, err := d.Executor(tx).JobGet(ctx, row.ID); err != nil {
		t.Fatalf("expected job visible inside tx: %v", err)
	}

	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	if _, err := d.Executor(nil).JobGet(ctx, row.ID); !errors.Is(err, postgres.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound after rollback, got %v", err)
	}
}

func TestInsertTx_Commit(t *testing.T) {
	d := setupTestDriver(t)
	ctx := context.Background()

	client, err := enqueue.NewClient[pgx.Tx](d)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	tx, err := d.Pool().Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	row, err := client.InsertTx(ctx, tx, simpleArgs{JobNum: 4}, nil)
	if err != nil {
		t.Fatalf("insert tx: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, err := d.Executor(nil).JobGet(ctx, row.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Kind != "simple" {
		t.Fatalf("expected kind simple, got %q", got.Kind)
	}
}

func TestJobGet_AttemptErrors(t *testing.T) {
	d := setupTestDriver(t)
	ctx := context.Background()

	client, err := enqueue.NewClient[pgx.Tx](d)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	row, err := client.Insert(ctx, simpleArgs{JobNum: 5}, nil)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Simulate a worker recording a failed attempt.
	_, err = d.Pool().Exec(ctx, `
		UPDATE enqueue_job
		SET attempt = 1, attempted_at = NOW(), attempted_by = ARRAY['worker_1'],
			errors = ARRAY[$2::jsonb], state = 'retryable'
		WHERE id = $1`,
		row.ID, `{"at":"2024-01-02T03:04:05.678901Z","attempt":1,"error":"boom","trace":"stack"}`,
	)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	rec, err := d.Executor(nil).JobGet(ctx, row.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got, err := job.ToRow(rec)
	if err != nil {
		t.Fatalf("to row: %v", err)
	}

	if len(got.Errors) != 1 {
		t.Fatalf("expected 1 attempt error, got %d", len(got.Errors))
	}
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if !got.Errors[0].At.Equal(want) {
		t.Fatalf("expected at %v, got %v", want, got.Errors[0].At)
	}
	if got.Errors[0].Error != "boom" || got.Errors[0].Attempt != 1 {
		t.Fatalf("unexpected attempt error: %+v", got.Errors[0])
	}
	if len(got.AttemptedBy) != 1 || got.AttemptedBy[0] != "worker_1" || got.AttemptedAt == nil {
		t.Fatalf("unexpected attempt fields: %+v", got)
	}
	if got.State != job.StateRetryable {
		t.Fatalf("expected retryable, got %q", got.State)
	}
}

func TestInsert_DuplicateKey(t *testing.T) {
	d := setupTestDriver(t)
	ctx := context.Background()

	if _, err := d.Pool().Exec(ctx, `CREATE UNIQUE INDEX enqueue_job_kind_args ON enqueue_job (kind, args)`); err != nil {
		t.Fatalf("create index: %v", err)
	}

	client, err := enqueue.NewClient[pgx.Tx](d)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Insert(ctx, simpleArgs{JobNum: 6}, nil); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	_, err = client.Insert(ctx, simpleArgs{JobNum: 6}, nil)
	if !errors.Is(err, job.ErrJobAlreadyExists) {
		t.Fatalf("expected ErrJobAlreadyExists, got %v", err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatalf("expected native *pgconn.PgError in chain, got %T", err)
	}
}

func TestInsert_StorageConstraint(t *testing.T) {
	d := setupTestDriver(t)
	ctx := context.Background()

	// Bypass the client's validation to reach the table's check constraint.
	_, err := d.GetExecutor().JobInsert(ctx, &job.InsertDraft{
		EncodedArgs: []byte(`{}`),
		Kind:        "simple",
		MaxAttempts: 1,
		Priority:    9,
		Queue:       "default",
		State:       job.StateAvailable,
		Tags:        []string{},
		ScheduledAt: time.Now(),
		CreatedAt:   time.Now(),
	})
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23514" {
		t.Fatalf("expected check violation, got %v", err)
	}
}

func TestInsert_Concurrent(t *testing.T) {
	d := setupTestDriver(t)

	client, err := enqueue.NewClient[pgx.Tx](d)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	g, ctx := errgroup.WithContext(context.Background())
	for i := range 20 {
		g.Go(func() error {
			_, err := client.Insert(ctx, simpleArgs{JobNum: i}, nil)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent insert: %v", err)
	}

	recs, err := d.Executor(nil).JobListByKind(context.Background(), "simple")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 20 {
		t.Fatalf("expected 20 jobs, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].ID <= recs[i-1].ID {
			t.Fatalf("expected strictly increasing IDs, got %d after %d", recs[i].ID, recs[i-1].ID)
		}
	}
}
