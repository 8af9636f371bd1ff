// Package enqueue inserts jobs into a durable, relationally stored job queue
// that's worked by a separate process.
//
// A job is described by a value implementing [job.Args]: its Kind names the
// work and its JSON encoding is the payload. Inserting it produces a stored
// [job.Row] with a storage-assigned ID.
//
// # Quick Start
//
//	client, err := enqueue.NewClient[pgx.Tx](postgres.New(pool))
//	if err != nil {
//	    return err
//	}
//
//	row, err := client.Insert(ctx, SendEmailArgs{To: "ada@example.com"}, nil)
//
// # Transactional Inserts
//
// [Client.InsertTx] writes the job through the caller's transaction. The job
// commits or rolls back together with the caller's other changes:
//
//	tx, err := pool.Begin(ctx)
//	...
//	row, err := client.InsertTx(ctx, tx, args, &job.InsertOpts{Queue: "mail"})
//	...
//	err = tx.Commit(ctx)
//
// # Options
//
// Each insert option resolves independently: the per-call [job.InsertOpts]
// first, then the options returned by args implementing
// [job.ArgsWithInsertOpts], then library defaults (max attempts 25,
// priority 1, queue "default", no tags, scheduled now). A job scheduled in
// the future starts as scheduled; otherwise it's available immediately.
//
// # Drivers
//
// Storage backends live under store/: memory, postgres (pgx), bun, and
// sqlite. Each implements [job.Driver] for its own transaction type.
package enqueue
