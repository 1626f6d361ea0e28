package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.handleSuggestionKeys(msg); handled {
		return m, cmd
	}
	if msg.Type == tea.KeyCtrlJ {
		m.insertInputText("\n")
		return m, nil
	}
	if msg.Type == tea.KeyRunes && strings.ContainsAny(string(msg.Runes), "\r\n") {
		m.insertInputText(normalizeNewlines(string(msg.Runes)))
		return m, nil
	}
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() != "" {
			m.resetInput()
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.resetInput()
		if value == "" {
			return m, nil
		}
		m.postComment(value)
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	cmd := m.safeInputUpdate(msg)
	m.syncEdit()
	m.resize()
	return m, cmd
}

func (m *Model) resetInput() {
	m.input.Reset()
	m.clearSuggestions()
	m.syncEdit()
	m.resize()
}

func (m *Model) postComment(body string) {
	m.comments = append(m.comments, comment{Author: m.username, Body: body, At: now()})
	m.status = ""
	m.logger.Debug("comment posted", zap.Int("length", len(body)))
	m.refreshViewport(true)
}
