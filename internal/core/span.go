package core

import (
	"github.com/olivermillard/mention/internal/types"
)

// LocateSpan returns the span of the mention query the caret is inside, or
// types.NoSpan. Offsets are rune offsets. Words are separated by the space
// character only. Scanning backward from the caret, the first trigger that
// starts a word opens the query; a trigger glued to a preceding character is
// skipped and the scan goes on.
func LocateSpan(buffer string, caret int) types.QuerySpan {
	runes := []rune(buffer)
	if len(runes) == 0 {
		return types.NoSpan
	}
	caret = clampCaret(caret, len(runes))

	for i := caret - 1; i >= 0; i-- {
		if isBoundary(runes[i]) {
			return types.NoSpan
		}
		if runes[i] != types.Trigger {
			continue
		}
		// An @ in the middle of a word (user@host) never starts a mention.
		if i > 0 && !isBoundary(runes[i-1]) {
			continue
		}
		return types.QuerySpan{Start: i, End: tokenEnd(runes, i)}
	}
	return types.NoSpan
}

// QueryText returns buffer[span.Start:span.End] in runes, or "" for an
// inactive or out-of-range span.
func QueryText(buffer string, span types.QuerySpan) string {
	runes := []rune(buffer)
	if !validSpan(runes, span) {
		return ""
	}
	return string(runes[span.Start:span.End])
}

// SpanTracker remembers the previous span so callers can tell when the open
// query moved, appeared or closed.
type SpanTracker struct {
	previous types.QuerySpan
}

// NewSpanTracker returns a tracker in the idle state.
func NewSpanTracker() *SpanTracker {
	return &SpanTracker{previous: types.NoSpan}
}

// Track locates the span for buffer and caret and reports whether it differs
// from the span returned by the previous call.
func (t *SpanTracker) Track(buffer string, caret int) (types.QuerySpan, bool) {
	span := LocateSpan(buffer, caret)
	changed := span != t.previous
	t.previous = span
	return span, changed
}

// Previous returns the last tracked span.
func (t *SpanTracker) Previous() types.QuerySpan {
	return t.previous
}

// Reset returns the tracker to the idle state.
func (t *SpanTracker) Reset() {
	t.previous = types.NoSpan
}

func tokenEnd(runes []rune, start int) int {
	for j := start; j < len(runes); j++ {
		if isBoundary(runes[j]) {
			return j
		}
	}
	return len(runes)
}

func isBoundary(r rune) bool {
	return r == ' '
}

func clampCaret(caret, length int) int {
	if caret < 0 {
		return 0
	}
	if caret > length {
		return length
	}
	return caret
}

func validSpan(runes []rune, span types.QuerySpan) bool {
	if !span.IsActive() || span.End > len(runes) {
		return false
	}
	return runes[span.Start] == types.Trigger
}
