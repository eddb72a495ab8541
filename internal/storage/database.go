// Package storage keeps the sync run history in SQLite.
package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys on every pooled connection and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sync_runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			files_processed INTEGER NOT NULL,
			files_unchanged INTEGER NOT NULL DEFAULT 0,
			chunks_indexed INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sync_runs_started_at ON sync_runs (started_at);`,
		`CREATE TABLE IF NOT EXISTS sync_run_failures (
			run_id TEXT NOT NULL,
			document_id TEXT NOT NULL,
			filename TEXT NOT NULL,
			error TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES sync_runs(id) ON DELETE CASCADE
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
