package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

// clipboardWriteAll is swapped in tests.
var clipboardWriteAll = clipboard.WriteAll

// clipboardMsg reports the outcome of one copy.
type clipboardMsg struct {
	label string
	err   error
}

// copyToClipboard writes text off the update loop.
func copyToClipboard(label, text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return func() tea.Msg {
		return clipboardMsg{label: label, err: clipboardWriteAll(text)}
	}
}
