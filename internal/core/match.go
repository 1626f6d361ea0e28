package core

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/olivermillard/mention/internal/types"
)

// FilterDirectory returns the entries whose handle, or display name with spaces
// removed, contains the query (trigger stripped, case-insensitive). A query of
// just the trigger returns the whole directory. Directory order is preserved.
func FilterDirectory(query string, directory []types.DirectoryEntry) []types.DirectoryEntry {
	if utf8.RuneCountInString(query) <= 1 {
		return slices.Clone(directory)
	}

	normalized := normalizeQuery(query)
	matches := make([]types.DirectoryEntry, 0, len(directory))
	for _, entry := range directory {
		if entryMatches(entry, normalized) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// SortDirectory returns a copy of entries sorted by display name in codepoint
// order. Entries with equal names keep their relative order.
func SortDirectory(entries []types.DirectoryEntry) []types.DirectoryEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b types.DirectoryEntry) int {
		return strings.Compare(a.DisplayName, b.DisplayName)
	})
	return sorted
}

// FindByHandle returns the entry with the given handle, ignoring a leading
// trigger and case.
func FindByHandle(directory []types.DirectoryEntry, handle string) (types.DirectoryEntry, bool) {
	handle = strings.TrimPrefix(handle, string(types.Trigger))
	for _, entry := range directory {
		if strings.EqualFold(entry.Handle, handle) {
			return entry, true
		}
	}
	return types.DirectoryEntry{}, false
}

func normalizeQuery(query string) string {
	_, size := utf8.DecodeRuneInString(query)
	return strings.ToLower(query[size:])
}

func entryMatches(entry types.DirectoryEntry, normalized string) bool {
	if strings.Contains(strings.ToLower(entry.Handle), normalized) {
		return true
	}
	name := strings.ReplaceAll(strings.ToLower(entry.DisplayName), " ", "")
	return strings.Contains(name, normalized)
}
