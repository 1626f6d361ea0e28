package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/olivermillard/mention/internal/directory"
	"github.com/olivermillard/mention/internal/mention"
	"github.com/olivermillard/mention/internal/types"
	"go.uber.org/zap"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q, got %q", want, buf.String())
}

func TestRunWatchFollowsFile(t *testing.T) {
	setupTestEnv(t)
	draft := filepath.Join(t.TempDir(), "draft.txt")
	if err := os.WriteFile(draft, []byte("hello @ol\n"), 0o644); err != nil {
		t.Fatalf("write draft: %v", err)
	}

	out := &syncBuffer{}
	entries := []types.DirectoryEntry{
		{Handle: "olly", DisplayName: "Oliver Young"},
		{Handle: "zoe", DisplayName: "Zoe Saldana"},
	}
	controller := mention.New(directory.StaticProvider{Entries: entries},
		mention.WithPresenter(&watchPresenter{out: out}),
		mention.WithQuiet(5*time.Millisecond),
	)
	defer controller.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, draft, -1, controller, zap.NewNop())
	}()

	waitForOutput(t, out, "Oliver Young")

	if err := os.WriteFile(draft, []byte("hello @zo"), 0o644); err != nil {
		t.Fatalf("rewrite draft: %v", err)
	}
	waitForOutput(t, out, "Zoe Saldana")

	if err := os.WriteFile(draft, []byte("hello there"), 0o644); err != nil {
		t.Fatalf("rewrite draft: %v", err)
	}
	waitForOutput(t, out, "(no query)")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runWatch: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runWatch did not stop")
	}
}

func TestWatchPresenterOutput(t *testing.T) {
	setupTestEnv(t)
	tests := []struct {
		name string
		set  types.CandidateSet
		want string
	}{
		{name: "hidden", set: types.CandidateSet{}, want: "(no query)\n"},
		{name: "collecting", set: types.CandidateSet{Visible: true, Collecting: true, Query: "@o"}, want: "@o\n  Collecting User Data\n"},
		{name: "empty", set: types.CandidateSet{Visible: true, Query: "@q", Entries: []types.DirectoryEntry{}}, want: "@q\n  No Users Found\n"},
		{
			name: "entries",
			set: types.CandidateSet{Visible: true, Query: "@o", Entries: []types.DirectoryEntry{
				{Handle: "olly", DisplayName: "Oliver Young", AvatarRef: "olly.png"},
			}},
			want: "@o\n  Oliver Young  @olly  olly.png\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			presenter := &watchPresenter{out: &buf}
			presenter.ShowCandidates(tt.set)
			if buf.String() != tt.want {
				t.Fatalf("output: got %q want %q", buf.String(), tt.want)
			}
		})
	}
}
