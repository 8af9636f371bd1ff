// Package memory provides an in-memory job driver for tests and development.
//
// Jobs inserted through [Driver.GetExecutor] are visible at once. Jobs
// inserted through a [Tx] from [Driver.Begin] become visible only after
// [Tx.Commit]; [Tx.Rollback] discards them. IDs come from a single counter
// and are not reused after a rollback.
package memory
