package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/olivermillard/mention/internal/types"
)

// UpsertEntries inserts or replaces entries keyed by handle in one transaction.
// Entries with an empty or whitespace-containing handle are rejected.
func UpsertEntries(db *sql.DB, entries []types.DirectoryEntry) (int, error) {
	for _, entry := range entries {
		if err := validateHandle(entry.Handle); err != nil {
			return 0, err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO directory_entries (handle, display_name, avatar_ref, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(handle) DO UPDATE SET
		  display_name = excluded.display_name,
		  avatar_ref = excluded.avatar_ref,
		  updated_at = excluded.updated_at
	`)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, entry := range entries {
		if _, err := stmt.Exec(entry.Handle, entry.DisplayName, entry.AvatarRef, now); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("upsert %s: %w", entry.Handle, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// ListEntries returns every stored entry ordered by display name.
func ListEntries(db DBTX) ([]types.DirectoryEntry, error) {
	rows, err := db.Query(`
		SELECT handle, display_name, avatar_ref
		FROM directory_entries
		ORDER BY display_name, handle
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []types.DirectoryEntry{}
	for rows.Next() {
		var entry types.DirectoryEntry
		if err := rows.Scan(&entry.Handle, &entry.DisplayName, &entry.AvatarRef); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry returns the entry for handle, or nil if it does not exist.
func GetEntry(db DBTX, handle string) (*types.DirectoryEntry, error) {
	row := db.QueryRow(`
		SELECT handle, display_name, avatar_ref
		FROM directory_entries WHERE handle = ?
	`, handle)
	var entry types.DirectoryEntry
	if err := row.Scan(&entry.Handle, &entry.DisplayName, &entry.AvatarRef); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes the entry for handle and reports whether it existed.
func DeleteEntry(db DBTX, handle string) (bool, error) {
	result, err := db.Exec("DELETE FROM directory_entries WHERE handle = ?", handle)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CountEntries returns the number of stored entries.
func CountEntries(db DBTX) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM directory_entries").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetMeta returns a metadata value, or "" if unset.
func GetMeta(db DBTX, key string) (string, error) {
	row := db.QueryRow("SELECT value FROM directory_meta WHERE key = ?", key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetMeta sets a metadata value.
func SetMeta(db DBTX, key, value string) error {
	_, err := db.Exec("INSERT OR REPLACE INTO directory_meta (key, value) VALUES (?, ?)", key, value)
	return err
}

func validateHandle(handle string) error {
	if handle == "" {
		return fmt.Errorf("directory entry has empty handle")
	}
	if strings.ContainsFunc(handle, isSpace) {
		return fmt.Errorf("handle %q contains whitespace", handle)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
