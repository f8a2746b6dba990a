package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// handleSearchKey focuses the query input.
func (m Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.focusSearch) {
		m.status = ""
		return m, m.searchInput.Focus()
	}
	return m, nil
}

// handleSearchInputKey edits the query; the visible list follows every keystroke.
func (m Model) handleSearchInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.nextScreen):
		return m.switchScreen(screen((int(m.screen) + 1) % int(screenCount)))
	case key.Matches(msg, m.keys.prevScreen):
		return m.switchScreen(screen((int(m.screen) + int(screenCount) - 1) % int(screenCount)))
	}
	switch msg.String() {
	case "esc", "enter":
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.filter.SetQuery(m.searchInput.Value())
	return m, cmd
}

// renderSearch renders the query input and matching items.
func (m Model) renderSearch() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	lines := []string{titleStyle.Render("Search"), m.searchInput.View(), ""}
	visible := m.filter.Visible()
	if len(visible) == 0 {
		lines = append(lines, mutedStyle.Render("no matches"))
		return strings.Join(lines, "\n")
	}
	for _, item := range visible {
		lines = append(lines, "• "+item)
	}
	return strings.Join(lines, "\n")
}
