package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "directory.db")
	db, err := OpenDatabase(path)
	require.NoError(t, err, "open sqlite")
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, InitSchema(db), "init schema")
	return db
}
