package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/olivermillard/mention/internal/types"
	"golang.org/x/sync/errgroup"
)

// MultiProvider fetches several sources concurrently and merges them by
// handle. Earlier sources win on conflicts. A failing source is skipped as
// long as at least one source succeeds.
type MultiProvider struct {
	Sources []Provider
	// OnSourceError, if set, is told about each failing source.
	OnSourceError func(index int, err error)
}

// FetchDirectory fetches every source and merges the results.
func (p *MultiProvider) FetchDirectory(ctx context.Context) ([]types.DirectoryEntry, error) {
	if len(p.Sources) == 1 {
		return p.Sources[0].FetchDirectory(ctx)
	}

	results := make([][]types.DirectoryEntry, len(p.Sources))
	errs := make([]error, len(p.Sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, source := range p.Sources {
		g.Go(func() error {
			entries, err := source.FetchDirectory(gctx)
			if err != nil {
				errs[i] = fmt.Errorf("source %d: %w", i, err)
				return nil
			}
			results[i] = entries
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		if p.OnSourceError != nil {
			p.OnSourceError(i, err)
		}
	}
	if len(p.Sources) > 0 && failed == len(p.Sources) {
		return nil, errors.Join(errs...)
	}

	seen := make(map[string]struct{})
	merged := make([]types.DirectoryEntry, 0)
	for _, entries := range results {
		for _, entry := range entries {
			if _, ok := seen[entry.Handle]; ok {
				continue
			}
			seen[entry.Handle] = struct{}{}
			merged = append(merged, entry)
		}
	}
	return merged, nil
}
