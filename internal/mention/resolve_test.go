package mention

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/olivermillard/mention/internal/directory"
	"github.com/olivermillard/mention/internal/types"
)

func TestResolve(t *testing.T) {
	provider := directory.StaticProvider{Entries: users}
	tests := []struct {
		name    string
		buffer  string
		caret   int
		span    types.QuerySpan
		query   string
		handles []string
	}{
		{name: "query at end", buffer: "hi @ol", caret: -1, span: types.QuerySpan{Start: 3, End: 6}, query: "@ol", handles: []string{"olly"}},
		{name: "trigger only", buffer: "@", caret: 1, span: types.QuerySpan{Start: 0, End: 1}, query: "@", handles: []string{"annlee", "bob_k", "olly", "zoe"}},
		{name: "email", buffer: "oliver@gmail.com", caret: -1, span: types.NoSpan, handles: []string{}},
		{name: "caret after space", buffer: "@ol ", caret: 4, span: types.NoSpan, handles: []string{}},
		{name: "caret past end", buffer: "@zo", caret: 99, span: types.QuerySpan{Start: 0, End: 3}, query: "@zo", handles: []string{"zoe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(context.Background(), provider, tt.buffer, tt.caret)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if res.Span != tt.span {
				t.Fatalf("span: got %+v want %+v", res.Span, tt.span)
			}
			if res.Query != tt.query {
				t.Fatalf("query: got %q want %q", res.Query, tt.query)
			}
			if diff := cmp.Diff(tt.handles, entryHandles(res.Candidates)); diff != "" {
				t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveSkipsFetchWithoutQuery(t *testing.T) {
	provider := directory.ProviderFunc(func(context.Context) ([]types.DirectoryEntry, error) {
		t.Fatal("provider should not be called")
		return nil, nil
	})
	res, err := Resolve(context.Background(), provider, "plain text", -1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Active() {
		t.Fatalf("expected no query, got %+v", res.Span)
	}
}

func TestResolveFetchError(t *testing.T) {
	boom := errors.New("boom")
	provider := directory.ProviderFunc(func(context.Context) ([]types.DirectoryEntry, error) {
		return nil, boom
	})
	_, err := Resolve(context.Background(), provider, "@a", -1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	provider := directory.StaticProvider{Entries: users}

	edit, err := Complete(context.Background(), provider, "hi @oliver there", 10, "@OLLY")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	want := types.Edit{Buffer: "hi Oliver Young there", Caret: 15}
	if edit != want {
		t.Fatalf("edit: got %+v want %+v", edit, want)
	}
}

func TestCompleteErrors(t *testing.T) {
	provider := directory.StaticProvider{Entries: users}

	if _, err := Complete(context.Background(), provider, "no query", -1, "olly"); !errors.Is(err, ErrNoQuery) {
		t.Fatalf("expected ErrNoQuery, got %v", err)
	}
	if _, err := Complete(context.Background(), provider, "@ol", -1, "nobody"); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("expected ErrUnknownHandle, got %v", err)
	}
}
