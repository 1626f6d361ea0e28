package chat

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) handleSuggestionKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !m.suggestionsOpen() {
		return false, nil
	}
	entries := m.visibleSuggestions()
	switch msg.Type {
	case tea.KeyEsc:
		m.dismissSuggestions()
		m.resize()
		return true, nil
	case tea.KeyUp:
		if len(entries) == 0 {
			return true, nil
		}
		if m.suggestionIndex < 0 {
			// First navigation - start from bottom
			m.suggestionIndex = len(entries) - 1
		} else {
			m.suggestionIndex--
			if m.suggestionIndex < 0 {
				m.suggestionIndex = len(entries) - 1
			}
		}
		return true, nil
	case tea.KeyDown:
		if len(entries) == 0 {
			return true, nil
		}
		if m.suggestionIndex < 0 {
			m.suggestionIndex = 0
		} else {
			m.suggestionIndex++
			if m.suggestionIndex >= len(entries) {
				m.suggestionIndex = 0
			}
		}
		return true, nil
	case tea.KeyTab:
		// Tab selects first if none selected, then applies
		if len(entries) == 0 {
			return true, nil
		}
		if m.suggestionIndex < 0 {
			m.suggestionIndex = 0
		}
		m.applySuggestion(entries[m.suggestionIndex])
		return true, nil
	case tea.KeyEnter:
		// Without a highlighted row Enter falls through and posts.
		if m.suggestionIndex >= 0 && m.suggestionIndex < len(entries) {
			m.applySuggestion(entries[m.suggestionIndex])
			return true, nil
		}
		return false, nil
	}
	return false, nil
}
