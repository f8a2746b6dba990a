package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func (m Model) handleToggleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.flip) {
		m.toggle.Flip()
	}
	return m, nil
}

// renderToggle renders the switch as a pill plus its label.
func (m Model) renderToggle() string {
	pill := lipgloss.NewStyle().
		Padding(0, 2).
		Bold(true).
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("239"))
	if m.toggle.On() {
		pill = pill.Background(lipgloss.Color("35"))
	}
	return pill.Render(m.toggle.Label()) + "\n\nThe switch is " + m.toggle.Label()
}
