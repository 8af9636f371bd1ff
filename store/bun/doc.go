// Package bunstore implements the job driver using the Bun ORM with the
// PostgreSQL dialect. Suitable for teams already using Bun for the rest of
// their data access.
//
// The caller owns the *bun.DB lifecycle; bunstore never closes it. Inserts
// run on any bun.IDB, so a bun.Tx from db.BeginTx or db.RunInTx works as
// the transaction handle:
//
//	import (
//	    "github.com/uptrace/bun"
//	    "github.com/uptrace/bun/dialect/pgdialect"
//	    "github.com/uptrace/bun/driver/pgdriver"
//	    bunstore "github.com/xraph/enqueue/store/bun"
//	)
//
//	sqldb := sql.OpenDB(pgdriver.NewConnector(...))
//	db := bun.NewDB(sqldb, pgdialect.New())
//	client, err := enqueue.NewClient[bun.Tx](bunstore.New(db))
package bunstore
