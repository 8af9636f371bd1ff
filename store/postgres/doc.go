// Package postgres implements the job driver for PostgreSQL using pgx/v5
// with raw SQL.
//
// Jobs are written to the enqueue_job table (configurable with [WithTable])
// with a single INSERT ... RETURNING statement, either on the driver's pool
// or on a pgx.Tx the caller owns:
//
//	driver := postgres.New(pool)
//	client, err := enqueue.NewClient[pgx.Tx](driver)
//
// Unique violations are reported as job.ErrJobAlreadyExists, wrapping the
// native *pgconn.PgError.
package postgres
