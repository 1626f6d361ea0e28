// Package directory supplies the set of users a mention can refer to.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/olivermillard/mention/internal/types"
)

// Provider fetches the directory as an unordered batch.
type Provider interface {
	FetchDirectory(ctx context.Context) ([]types.DirectoryEntry, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]types.DirectoryEntry, error)

// FetchDirectory calls f.
func (f ProviderFunc) FetchDirectory(ctx context.Context) ([]types.DirectoryEntry, error) {
	return f(ctx)
}

// StaticProvider serves a fixed set of entries.
type StaticProvider struct {
	Entries []types.DirectoryEntry
}

// FetchDirectory returns a copy of the entries.
func (p StaticProvider) FetchDirectory(ctx context.Context) ([]types.DirectoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(p.Entries), nil
}

// ParseEntries decodes a JSON array of {username, name, avatar_url} records.
// Records without a username are dropped; surrounding whitespace is trimmed.
func ParseEntries(data []byte) ([]types.DirectoryEntry, error) {
	var raw []types.DirectoryEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode directory: %w", err)
	}
	entries := make([]types.DirectoryEntry, 0, len(raw))
	for _, entry := range raw {
		entry.Handle = strings.TrimSpace(entry.Handle)
		entry.DisplayName = strings.TrimSpace(entry.DisplayName)
		entry.AvatarRef = strings.TrimSpace(entry.AvatarRef)
		if entry.Handle == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
