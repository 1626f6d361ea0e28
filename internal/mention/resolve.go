package mention

import (
	"context"
	"errors"
	"fmt"

	"github.com/olivermillard/mention/internal/core"
	"github.com/olivermillard/mention/internal/directory"
	"github.com/olivermillard/mention/internal/types"
)

var (
	// ErrNoQuery is returned when the caret is not inside a mention query.
	ErrNoQuery = errors.New("no mention query at caret")
	// ErrUnknownHandle is returned when a completion names a handle that is not in the directory.
	ErrUnknownHandle = errors.New("unknown handle")
)

// Resolution describes the query at a caret and the entries it matches.
type Resolution struct {
	Buffer     string                 `json:"buffer"`
	Caret      int                    `json:"caret"`
	Span       types.QuerySpan        `json:"span"`
	Query      string                 `json:"query"`
	Candidates []types.DirectoryEntry `json:"candidates"`
}

// Active reports whether a query is open at the caret.
func (r Resolution) Active() bool {
	return r.Span.IsActive()
}

// Resolve locates the query at caret and matches it against the directory.
// The provider is only consulted when a query is open. A negative caret means
// the end of the buffer.
func Resolve(ctx context.Context, provider directory.Provider, buffer string, caret int) (Resolution, error) {
	caret = normalizeCaret(buffer, caret)
	span := core.LocateSpan(buffer, caret)
	res := Resolution{
		Buffer:     buffer,
		Caret:      caret,
		Span:       span,
		Candidates: []types.DirectoryEntry{},
	}
	if !span.IsActive() {
		return res, nil
	}
	res.Query = core.QueryText(buffer, span)

	entries, err := fetchSorted(ctx, provider)
	if err != nil {
		return res, err
	}
	res.Candidates = core.FilterDirectory(res.Query, entries)
	return res, nil
}

// Complete replaces the query at caret with the display name of handle.
func Complete(ctx context.Context, provider directory.Provider, buffer string, caret int, handle string) (types.Edit, error) {
	caret = normalizeCaret(buffer, caret)
	span := core.LocateSpan(buffer, caret)
	if !span.IsActive() {
		return types.Edit{}, ErrNoQuery
	}

	entries, err := fetchSorted(ctx, provider)
	if err != nil {
		return types.Edit{}, err
	}
	entry, ok := core.FindByHandle(entries, handle)
	if !ok {
		return types.Edit{}, fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}
	return core.ReplaceSpan(buffer, span, entry.DisplayName)
}

func fetchSorted(ctx context.Context, provider directory.Provider) ([]types.DirectoryEntry, error) {
	if provider == nil {
		return nil, nil
	}
	entries, err := provider.FetchDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch directory: %w", err)
	}
	return core.SortDirectory(entries), nil
}

func normalizeCaret(buffer string, caret int) int {
	length := len([]rune(buffer))
	if caret < 0 {
		return length
	}
	return clamp(caret, length)
}
