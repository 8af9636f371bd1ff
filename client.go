package enqueue

import (
	"context"

	"github.com/xraph/enqueue/id"
	"github.com/xraph/enqueue/job"
	"github.com/xraph/enqueue/middleware"
)

// Client inserts jobs through a Driver. TTx is the driver's transaction type.
//
// A Client is immutable once created and safe for concurrent use. It never
// begins, commits, or rolls back transactions, and it doesn't retry.
type Client[TTx any] struct {
	config config
	driver job.Driver[TTx]
	chain  middleware.Middleware
}

// NewClient creates a Client backed by driver.
func NewClient[TTx any](driver job.Driver[TTx], opts ...Option) (*Client[TTx], error) {
	if driver == nil {
		return nil, ErrNoDriver
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.id.IsNil() {
		cfg.id = id.NewClientID()
	}

	return &Client[TTx]{
		config: cfg,
		driver: driver,
		chain:  middleware.Chain(cfg.middleware...),
	}, nil
}

// ID returns the client's identifier.
func (c *Client[TTx]) ID() ClientID { return c.config.id }

// Driver returns the driver the client inserts through.
func (c *Client[TTx]) Driver() job.Driver[TTx] { return c.driver }

// Insert inserts a job outside of any caller transaction. opts may be nil.
//
// Options resolve field by field: opts first, then the args' own InsertOpts
// if args implements job.ArgsWithInsertOpts, then library defaults.
func (c *Client[TTx]) Insert(ctx context.Context, args job.Args, opts *job.InsertOpts) (*job.Row, error) {
	return c.insert(ctx, c.driver.GetExecutor(), args, opts)
}

// InsertTx inserts a job inside tx. The job becomes visible to workers only
// when the caller commits tx, and vanishes if tx rolls back.
func (c *Client[TTx]) InsertTx(ctx context.Context, tx TTx, args job.Args, opts *job.InsertOpts) (*job.Row, error) {
	return c.insert(ctx, c.driver.UnwrapExecutor(tx), args, opts)
}

func (c *Client[TTx]) insert(ctx context.Context, exec job.Executor, args job.Args, opts *job.InsertOpts) (*job.Row, error) {
	encoded, err := job.EncodeArgs(args)
	if err != nil {
		return nil, err
	}

	var argOpts *job.InsertOpts
	if withOpts, ok := args.(job.ArgsWithInsertOpts); ok {
		o := withOpts.InsertOpts()
		argOpts = &o
	}

	now := c.config.timeNow()
	effective := job.ResolveOpts(now, opts, argOpts)
	if err := effective.Validate(); err != nil {
		return nil, err
	}

	draft := job.BuildDraft(args.Kind(), encoded, effective, now)

	ctx = middleware.WithClientID(ctx, c.config.id.String())
	rec, err := c.chain(ctx, draft, func(ctx context.Context) (*job.Record, error) {
		return exec.JobInsert(ctx, draft)
	})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNoRecord
	}

	return job.ToRow(rec)
}
