package core

import (
	"strings"
	"testing"

	"github.com/olivermillard/mention/internal/types"
)

func TestLocateSpan(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		caret  int
		want   types.QuerySpan
	}{
		{
			name:   "empty buffer",
			buffer: "",
			caret:  0,
			want:   types.NoSpan,
		},
		{
			name:   "lone trigger",
			buffer: "@",
			caret:  1,
			want:   types.QuerySpan{Start: 0, End: 1},
		},
		{
			name:   "lone trigger caret before it",
			buffer: "@",
			caret:  0,
			want:   types.NoSpan,
		},
		{
			name:   "single non trigger",
			buffer: "a",
			caret:  1,
			want:   types.NoSpan,
		},
		{
			name:   "query at end",
			buffer: "hi @ol",
			caret:  6,
			want:   types.QuerySpan{Start: 3, End: 6},
		},
		{
			name:   "query at start of buffer",
			buffer: "@oliver hello",
			caret:  4,
			want:   types.QuerySpan{Start: 0, End: 7},
		},
		{
			name:   "caret mid token extends to word end",
			buffer: "hi @oliver there",
			caret:  6,
			want:   types.QuerySpan{Start: 3, End: 10},
		},
		{
			name:   "caret right after trigger",
			buffer: "hi @oliver",
			caret:  4,
			want:   types.QuerySpan{Start: 3, End: 10},
		},
		{
			name:   "caret on the trigger itself",
			buffer: "hi @oliver",
			caret:  3,
			want:   types.NoSpan,
		},
		{
			name:   "email address",
			buffer: "oliver@gmail.com",
			caret:  len("oliver@gmail.com"),
			want:   types.NoSpan,
		},
		{
			name:   "space typed after query",
			buffer: "hi @ol ",
			caret:  7,
			want:   types.NoSpan,
		},
		{
			name:   "caret in a plain word after a query",
			buffer: "@ol there",
			caret:  9,
			want:   types.NoSpan,
		},
		{
			name:   "binds to the word under the caret",
			buffer: "@ann and @bo",
			caret:  12,
			want:   types.QuerySpan{Start: 9, End: 12},
		},
		{
			name:   "earlier query when caret is inside it",
			buffer: "@ann and @bo",
			caret:  2,
			want:   types.QuerySpan{Start: 0, End: 4},
		},
		{
			name:   "double trigger",
			buffer: "hi @@ol",
			caret:  7,
			want:   types.QuerySpan{Start: 3, End: 7},
		},
		{
			name:   "glued trigger is skipped",
			buffer: "@ol@x",
			caret:  5,
			want:   types.QuerySpan{Start: 0, End: 5},
		},
		{
			name:   "glued trigger inside a query",
			buffer: "hi @a@b",
			caret:  7,
			want:   types.QuerySpan{Start: 3, End: 7},
		},
		{
			name:   "email with query before it",
			buffer: "@ann:ann@host",
			caret:  13,
			want:   types.QuerySpan{Start: 0, End: 13},
		},
		{
			name:   "newline is not a word boundary",
			buffer: "hi\n@ol",
			caret:  6,
			want:   types.NoSpan,
		},
		{
			name:   "tab is not a word boundary",
			buffer: "hi\t@ol",
			caret:  6,
			want:   types.NoSpan,
		},
		{
			name:   "query runs across a newline",
			buffer: "hi @ol\nthere",
			caret:  5,
			want:   types.QuerySpan{Start: 3, End: 12},
		},
		{
			name:   "multibyte runes before query",
			buffer: "héllo @zoë",
			caret:  10,
			want:   types.QuerySpan{Start: 6, End: 10},
		},
		{
			name:   "caret past end is clamped",
			buffer: "hi @ol",
			caret:  99,
			want:   types.QuerySpan{Start: 3, End: 6},
		},
		{
			name:   "negative caret is clamped",
			buffer: "@ol",
			caret:  -4,
			want:   types.NoSpan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocateSpan(tt.buffer, tt.caret)
			if got != tt.want {
				t.Fatalf("LocateSpan(%q, %d): got %+v want %+v", tt.buffer, tt.caret, got, tt.want)
			}
		})
	}
}

func TestLocateSpanProperties(t *testing.T) {
	buffers := []string{
		"hi @ol",
		"oliver@gmail.com",
		"@",
		"@a @b c@d @e",
		"  @@  @x\t@y\n@z",
		"hi @oliver there",
		"a@b @c@d @",
		"hi @@ol x@y@z",
	}

	for _, buffer := range buffers {
		runes := []rune(buffer)
		for caret := 0; caret <= len(runes); caret++ {
			span := LocateSpan(buffer, caret)
			if !span.IsActive() {
				if span != types.NoSpan {
					t.Fatalf("%q caret %d: inactive span %+v is not the sentinel", buffer, caret, span)
				}
				continue
			}
			if span.End > len(runes) {
				t.Fatalf("%q caret %d: span %+v out of range", buffer, caret, span)
			}
			if runes[span.Start] != '@' {
				t.Fatalf("%q caret %d: span %+v does not start at a trigger", buffer, caret, span)
			}
			if span.Start > 0 && runes[span.Start-1] != ' ' {
				t.Fatalf("%q caret %d: span %+v starts mid-word", buffer, caret, span)
			}
			if token := string(runes[span.Start:span.End]); strings.ContainsRune(token, ' ') {
				t.Fatalf("%q caret %d: token %q contains a space", buffer, caret, token)
			}
			if caret <= span.Start || caret > span.End {
				t.Fatalf("%q caret %d: caret is outside span %+v", buffer, caret, span)
			}
		}
	}
}

func TestQueryText(t *testing.T) {
	if got := QueryText("hi @ol", types.QuerySpan{Start: 3, End: 6}); got != "@ol" {
		t.Fatalf("query: got %q want %q", got, "@ol")
	}
	if got := QueryText("héllo @zoë", types.QuerySpan{Start: 6, End: 10}); got != "@zoë" {
		t.Fatalf("query: got %q want %q", got, "@zoë")
	}
	if got := QueryText("hi @ol", types.NoSpan); got != "" {
		t.Fatalf("sentinel query: got %q want empty", got)
	}
	if got := QueryText("hi", types.QuerySpan{Start: 0, End: 5}); got != "" {
		t.Fatalf("out of range query: got %q want empty", got)
	}
}

func TestSpanTracker(t *testing.T) {
	tracker := NewSpanTracker()
	if tracker.Previous() != types.NoSpan {
		t.Fatalf("new tracker should be idle, got %+v", tracker.Previous())
	}

	span, changed := tracker.Track("hi @o", 5)
	if !changed || span != (types.QuerySpan{Start: 3, End: 5}) {
		t.Fatalf("open query: got %+v changed=%v", span, changed)
	}

	span, changed = tracker.Track("hi @o", 5)
	if changed {
		t.Fatalf("same input should not report a change, got %+v", span)
	}

	span, changed = tracker.Track("hi @ol", 6)
	if !changed || span.End != 6 {
		t.Fatalf("extended query: got %+v changed=%v", span, changed)
	}

	span, changed = tracker.Track("hi @ol ", 7)
	if !changed || span != types.NoSpan {
		t.Fatalf("closed query: got %+v changed=%v", span, changed)
	}

	tracker.Track("@x", 2)
	tracker.Reset()
	if tracker.Previous() != types.NoSpan {
		t.Fatalf("reset tracker should be idle, got %+v", tracker.Previous())
	}
}
