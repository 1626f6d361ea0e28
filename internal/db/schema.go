package db

import "database/sql"

const schemaSQL = `
-- Referenceable users
CREATE TABLE IF NOT EXISTS directory_entries (
  handle TEXT PRIMARY KEY,             -- e.g., "olly" (no whitespace)
  display_name TEXT NOT NULL,          -- e.g., "Oliver Young"
  avatar_ref TEXT NOT NULL DEFAULT '', -- avatar URL or glyph
  updated_at INTEGER NOT NULL          -- unix timestamp of last import
);

CREATE INDEX IF NOT EXISTS idx_directory_entries_name ON directory_entries(display_name);

-- Store metadata
CREATE TABLE IF NOT EXISTS directory_meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`

// DBTX represents shared methods across sql.DB and sql.Tx.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// InitSchema creates the directory tables if they are missing.
func InitSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(schemaSQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SchemaExists reports whether the directory schema is present.
func SchemaExists(db *sql.DB) (bool, error) {
	row := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name = 'directory_entries'
	`)
	var name string
	if err := row.Scan(&name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
