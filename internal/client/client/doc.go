// Package client bootstraps the local ArcheData store: it opens the SQLite
// database file, applies the embedded goose migrations, and hands back a
// *sql.DB for the repositories and services.
//
// Typical Usage
//
//	db, err := client.OpenDatabase(ctx, cfg.DatabasePath)
//	if err != nil { ... }
//	defer db.Close()
package client
