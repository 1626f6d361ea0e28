package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) View() string {
	statusLine := lipgloss.NewStyle().Foreground(statusColor).Render(m.statusLine())

	lines := []string{m.viewport.View()}
	if suggestions := m.renderSuggestions(); suggestions != "" {
		lines = append(lines, suggestions)
	}
	lines = append(lines, "", m.renderInput(), statusLine)

	output := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return m.zoneManager.Scan(output)
}

func (m *Model) renderInput() string {
	style := lipgloss.NewStyle().Background(inputBg).Padding(0, inputPadding, 0, 0)
	if width := m.mainWidth(); width > 0 {
		style = style.Width(width)
	}
	blank := style.Render("")
	return strings.Join([]string{blank, style.Render(m.input.View()), blank}, "\n")
}

func (m *Model) statusLine() string {
	left := m.status
	if query := m.controller.Query(); query != "" {
		left = m.queryStatus(query)
	}
	right := "enter to post · ctrl+c to quit"
	if m.suggestionsOpen() {
		right = "tab to pick · esc to dismiss"
	}
	return alignStatusLine(left, right, m.mainWidth())
}

func (m *Model) queryStatus(query string) string {
	switch {
	case !m.candidates.Visible || m.candidates.Query != query:
		return query
	case m.candidates.Collecting:
		return query + " · loading"
	case len(m.candidates.Entries) == 1:
		return query + " · 1 match"
	default:
		return fmt.Sprintf("%s · %d matches", query, len(m.candidates.Entries))
	}
}

func alignStatusLine(left, right string, width int) string {
	if width <= 0 || right == "" {
		return left
	}
	leftWidth := ansi.StringWidth(left)
	rightWidth := ansi.StringWidth(right)
	if leftWidth+rightWidth+1 > width {
		return left
	}
	spaces := width - leftWidth - rightWidth
	return left + strings.Repeat(" ", spaces) + right
}
