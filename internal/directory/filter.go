package directory

import (
	"context"
	"fmt"

	"github.com/gobwas/glob"
	"github.com/olivermillard/mention/internal/types"
)

// FilteredProvider hides entries whose handle matches an exclude pattern.
type FilteredProvider struct {
	source   Provider
	patterns []glob.Glob
}

// NewFilteredProvider compiles the glob patterns (e.g. "bot-*") and wraps source.
func NewFilteredProvider(source Provider, exclude []string) (*FilteredProvider, error) {
	patterns := make([]glob.Glob, 0, len(exclude))
	for _, pattern := range exclude {
		matcher, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		patterns = append(patterns, matcher)
	}
	return &FilteredProvider{source: source, patterns: patterns}, nil
}

// FetchDirectory fetches from the wrapped source and drops excluded handles.
func (p *FilteredProvider) FetchDirectory(ctx context.Context) ([]types.DirectoryEntry, error) {
	entries, err := p.source.FetchDirectory(ctx)
	if err != nil {
		return nil, err
	}
	if len(p.patterns) == 0 {
		return entries, nil
	}
	kept := entries[:0:0]
	for _, entry := range entries {
		if p.excluded(entry.Handle) {
			continue
		}
		kept = append(kept, entry)
	}
	return kept, nil
}

func (p *FilteredProvider) excluded(handle string) bool {
	for _, pattern := range p.patterns {
		if pattern.Match(handle) {
			return true
		}
	}
	return false
}
