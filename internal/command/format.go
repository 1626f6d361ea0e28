package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/olivermillard/mention/internal/mention"
	"github.com/olivermillard/mention/internal/types"
)

const nameColumnMax = 24

var (
	spanColor   = color.New(color.FgCyan, color.Bold)
	handleColor = color.New(color.FgGreen)
	dimColor    = color.New(color.Faint)
)

// highlightSpan renders buffer with the query span colored.
func highlightSpan(buffer string, span types.QuerySpan) string {
	if !span.IsActive() {
		return buffer
	}
	runes := []rune(buffer)
	if span.End > len(runes) {
		return buffer
	}
	return string(runes[:span.Start]) + spanColor.Sprint(string(runes[span.Start:span.End])) + string(runes[span.End:])
}

func writeResolution(out io.Writer, res mention.Resolution, limit int) {
	fmt.Fprintln(out, highlightSpan(res.Buffer, res.Span))
	if !res.Active() {
		fmt.Fprintln(out, dimColor.Sprint("no mention query at caret"))
		return
	}
	fmt.Fprintf(out, "query: %s  span: [%d,%d)\n", res.Query, res.Span.Start, res.Span.End)
	if len(res.Candidates) == 0 {
		fmt.Fprintln(out, "  No Users Found")
		return
	}
	writeEntries(out, res.Candidates, limit)
}

func writeEntries(out io.Writer, entries []types.DirectoryEntry, limit int) {
	shown := entries
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	nameWidth := 0
	for _, entry := range shown {
		nameWidth = max(nameWidth, runewidth.StringWidth(entry.DisplayName))
	}
	nameWidth = min(nameWidth, nameColumnMax)

	for _, entry := range shown {
		name := runewidth.FillRight(runewidth.Truncate(entry.DisplayName, nameWidth, "…"), nameWidth)
		line := "  " + name + "  " + handleColor.Sprint("@"+entry.Handle)
		if entry.AvatarRef != "" {
			line += "  " + dimColor.Sprint(entry.AvatarRef)
		}
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
	if hidden := len(entries) - len(shown); hidden > 0 {
		fmt.Fprintf(out, "  … %d more\n", hidden)
	}
}
