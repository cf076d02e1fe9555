package db

import (
	"database/sql"
	"fmt"
)

const scansTableDDL = `
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    root_path TEXT NOT NULL,
    scanned_at INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    total_size INTEGER NOT NULL,
    entry_count INTEGER NOT NULL
);
`

const scanEntriesTableDDL = `
CREATE TABLE IF NOT EXISTS scan_entries (
    scan_id INTEGER NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    path TEXT NOT NULL,
    name TEXT NOT NULL,
    size INTEGER NOT NULL,
    kind INTEGER NOT NULL,
    PRIMARY KEY (scan_id, position)
);
`

const scansRootIndexDDL = `CREATE INDEX IF NOT EXISTS idx_scans_root ON scans(root_path, scanned_at DESC);`

// InitSchema creates all tables in the database.
func InitSchema(db *sql.DB) error {
	ddls := []string{
		scansTableDDL,
		scanEntriesTableDDL,
		scansRootIndexDDL,
	}

	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	return nil
}

// ApplyWritePragmas configures SQLite for saving scans.
func ApplyWritePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	return nil
}

// ApplyReadPragmas configures SQLite for read-only history queries.
func ApplyReadPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA query_only = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	return nil
}
