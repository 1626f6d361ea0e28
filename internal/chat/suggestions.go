package chat

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/olivermillard/mention/internal/core"
	"github.com/olivermillard/mention/internal/types"
)

const (
	collectingMessage = "Collecting User Data"
	noMatchesMessage  = "No Users Found"
	nameColumnMax     = 24
)

// handleCandidates adopts a candidate set from the controller.
func (m *Model) handleCandidates(set types.CandidateSet) {
	// A set computed for a query the user has already moved past is dropped.
	if set.Visible && set.Query != m.controller.Query() {
		return
	}
	if set.Query != m.candidates.Query || !set.Visible {
		m.suggestionIndex = -1
	}
	if set.Query != m.dismissedQuery {
		m.dismissedQuery = ""
	}
	m.candidates = set
	if m.suggestionIndex >= len(m.visibleSuggestions()) {
		m.suggestionIndex = -1
	}
	m.resize()
}

func (m *Model) suggestionsOpen() bool {
	return m.candidates.Visible && m.dismissedQuery == ""
}

// visibleSuggestions returns the rows shown in the list, capped at the limit.
func (m *Model) visibleSuggestions() []types.DirectoryEntry {
	if !m.suggestionsOpen() {
		return nil
	}
	entries := m.candidates.Entries
	if m.limit > 0 && len(entries) > m.limit {
		entries = entries[:m.limit]
	}
	return entries
}

func (m *Model) dismissSuggestions() {
	m.dismissedQuery = m.candidates.Query
	m.suggestionIndex = -1
}

func (m *Model) clearSuggestions() {
	m.candidates = types.CandidateSet{}
	m.suggestionIndex = -1
	m.dismissedQuery = ""
}

func (m *Model) suggestionHeight() int {
	if !m.suggestionsOpen() {
		return 0
	}
	return lipgloss.Height(m.renderSuggestions())
}

func (m *Model) renderSuggestions() string {
	if !m.suggestionsOpen() {
		return ""
	}
	normalStyle := lipgloss.NewStyle().Foreground(metaColor)
	selectedStyle := lipgloss.NewStyle().Foreground(selectColor).Background(selectBg).Bold(true)

	if m.candidates.Collecting {
		return normalStyle.Render("  " + collectingMessage)
	}
	entries := m.visibleSuggestions()
	if len(entries) == 0 {
		return normalStyle.Render("  " + noMatchesMessage)
	}

	nameWidth := 0
	for _, entry := range entries {
		nameWidth = max(nameWidth, runewidth.StringWidth(entry.DisplayName))
	}
	nameWidth = min(nameWidth, nameColumnMax)

	lines := make([]string, 0, len(entries)+1)
	for i, entry := range entries {
		prefix := "  "
		style := normalStyle
		if i == m.suggestionIndex {
			prefix = "> "
			style = selectedStyle
		}
		line := prefix + formatCandidate(entry, nameWidth)
		if width := m.mainWidth(); width > 3 {
			line = ansi.Truncate(line, width-2, "…")
		}
		row := renderAvatar(entry) + " " + style.Render(line)
		lines = append(lines, m.zoneManager.Mark(candidateZoneID(i), row))
	}
	if hidden := len(m.candidates.Entries) - len(entries); hidden > 0 {
		lines = append(lines, normalStyle.Render(fmt.Sprintf("  … %d more", hidden)))
	}
	return strings.Join(lines, "\n")
}

// formatCandidate lays out one row: display name padded to the name column,
// the @handle, then the avatar reference.
func formatCandidate(entry types.DirectoryEntry, nameWidth int) string {
	name := runewidth.Truncate(entry.DisplayName, nameWidth, "…")
	name = runewidth.FillRight(name, nameWidth)
	line := name + "  " + string(types.Trigger) + entry.Handle
	if entry.AvatarRef != "" {
		line += "  " + path.Base(entry.AvatarRef)
	}
	return line
}

func renderAvatar(entry types.DirectoryEntry) string {
	return lipgloss.NewStyle().
		Foreground(colorForHandle(entry.Handle)).
		Render(core.AvatarGlyph(entry))
}

func candidateZoneID(index int) string {
	return fmt.Sprintf("candidate-%d", index)
}

// applySuggestion hands the chosen entry to the controller and adopts the
// resulting buffer and caret.
func (m *Model) applySuggestion(entry types.DirectoryEntry) bool {
	edit, ok := m.controller.OnSelect(entry)
	if !ok {
		return false
	}
	m.setInput(edit.Buffer, edit.Caret)
	m.clearSuggestions()
	m.resize()
	return true
}
