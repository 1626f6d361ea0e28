package chat

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if m.handleCandidateClick(msg) {
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleCandidateClick(msg tea.MouseMsg) bool {
	for i, entry := range m.visibleSuggestions() {
		if m.zoneManager.Get(candidateZoneID(i)).InBounds(msg) {
			m.suggestionIndex = i
			return m.applySuggestion(entry)
		}
	}
	return false
}
