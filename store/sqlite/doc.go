// Package sqlite implements the job driver for SQLite using database/sql
// and mattn/go-sqlite3. Suitable for embedded/edge deployments, CLI tools,
// and standalone applications.
//
// The caller owns the *sql.DB lifecycle -- sqlite never closes it. Pass the
// db handle through the constructor:
//
//	import (
//	    "database/sql"
//
//	    _ "github.com/mattn/go-sqlite3"
//	    "github.com/xraph/enqueue/store/sqlite"
//	)
//
//	db, _ := sql.Open("sqlite3", "jobs.db?_journal_mode=WAL")
//	client, err := enqueue.NewClient[*sql.Tx](sqlite.New(db))
//
// SQLite has no array type, so tags, attempted_by, and errors are stored
// as JSON text.
package sqlite
