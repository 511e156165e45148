// Package kv is the persistent key-value store underneath every ArcheData
// collection.
//
// # Data Model
//
// Each key holds one serialized collection (users, entries, chat rooms, the
// current session) together with a version number. Writes replace the whole
// value and must name the version they read; a mismatch is reported as
// common.ErrVersionConflict instead of silently overwriting a concurrent
// writer. Version 0 means "the key does not exist yet".
//
// # Concurrency
//
// SQLiteRepository works over dbx.DBTX, so the same code runs against
// *sql.DB or inside a transaction. Services combine several reads and writes
// in one dbx.WithTx call.
//
// Typical Usage
//
//	repo := kv.NewSQLiteRepository(db)
//	value, version, _ := repo.Get(ctx, "archedata_entries")
//	version, err := repo.Set(ctx, "archedata_entries", newValue, version)
package kv
