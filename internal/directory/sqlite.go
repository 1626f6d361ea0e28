package directory

import (
	"context"
	"database/sql"

	"github.com/olivermillard/mention/internal/db"
	"github.com/olivermillard/mention/internal/types"
)

// SQLiteProvider reads the directory from an imported SQLite store.
type SQLiteProvider struct {
	DB *sql.DB
}

// FetchDirectory lists all stored entries.
func (p *SQLiteProvider) FetchDirectory(ctx context.Context) ([]types.DirectoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return db.ListEntries(p.DB)
}
